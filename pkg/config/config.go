// Package config loads campcal settings from .campcal.yaml, the environment
// and command line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/display"
)

const (
	KeyBaseURL     = "base_url"
	KeyTimeout     = "timeout"
	KeyWeekStart   = "week_start"
	KeyPxPerColumn = "px_per_column"
	KeyLoadMode    = "load_mode"
	KeyLoadOnStart = "load_on_start"
	KeyLogFile     = "log_file"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// PathEnv names a directory searched for .campcal.yaml before the defaults.
const PathEnv = "CAMPCAL_CONFIG_PATH"

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	WeekStart   time.Weekday
	PxPerColumn int
	LoadMode    string
	LoadOnStart bool
	LogFile     string
	LogLevel    string
	LogFormat   string
}

// New returns a viper instance with campcal's defaults and search paths.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseURL, "http://localhost:8080")
	v.SetDefault(KeyTimeout, "15s")
	v.SetDefault(KeyWeekStart, "monday")
	v.SetDefault(KeyPxPerColumn, display.DefaultPixelsPerColumn)
	v.SetDefault(KeyLoadMode, "batch")
	v.SetDefault(KeyLoadOnStart, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetConfigName(".campcal") // .yaml is implicit
	v.SetEnvPrefix("CAMPCAL")
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// BindFlags lets any of fs's flags named after a config key override it.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) {
			return
		}
		if e := v.BindPFlag(key, f); e != nil && err == nil {
			err = e
		}
	})
	return err
}

func isKey(key string) bool {
	switch key {
	case KeyBaseURL, KeyTimeout, KeyWeekStart, KeyPxPerColumn, KeyLoadMode,
		KeyLoadOnStart, KeyLogFile, KeyLogLevel, KeyLogFormat:
		return true
	}
	return false
}

// Load reads the config file, if any, and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Decode(v)
}

// Decode validates the values held by v without touching the filesystem.
func Decode(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyTimeout, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyTimeout, timeout)
	}
	weekStart := calendar.ParseWeekStart(strings.ToLower(v.GetString(KeyWeekStart)))
	px := v.GetInt(KeyPxPerColumn)
	if px <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", KeyPxPerColumn, px)
	}
	mode := strings.ToLower(v.GetString(KeyLoadMode))
	if mode != "batch" && mode != "range" {
		return nil, fmt.Errorf("%s must be batch or range, got %q", KeyLoadMode, mode)
	}
	logFile := v.GetString(KeyLogFile)
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyLogFile, err)
		}
	}

	return &Config{
		BaseURL:     v.GetString(KeyBaseURL),
		Timeout:     timeout,
		WeekStart:   weekStart,
		PxPerColumn: px,
		LoadMode:    mode,
		LoadOnStart: v.GetBool(KeyLoadOnStart),
		LogFile:     logFile,
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
	}, nil
}
