package commands

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/campcal/pkg/campapi"
	"tableflip.dev/campcal/pkg/config"
	"tableflip.dev/campcal/pkg/display"
	"tableflip.dev/campcal/pkg/logging"
)

const fallbackWidth = 80

// env is what every command needs once flags and config are merged.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	client *campapi.Client
	close  func() error
}

func setup(cmd *cobra.Command, tui bool) (*env, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	lo := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Format: cfg.LogFormat}
	build := logging.ForCommand
	if tui {
		build = logging.ForTUI
	}
	log, closer, err := build(lo)
	if err != nil {
		return nil, err
	}

	client, err := campapi.New(cfg.BaseURL,
		campapi.WithTimeout(cfg.Timeout),
		campapi.WithUserAgent(campapi.DefaultUserAgent+"/"+version),
		campapi.WithLogger(log),
	)
	if err != nil {
		_ = closer()
		return nil, err
	}
	log.Debug("configured", "base_url", cfg.BaseURL, "timeout", cfg.Timeout, "load_mode", cfg.LoadMode)
	return &env{cfg: cfg, log: log, client: client, close: closer}, nil
}

func interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// width is the terminal width in columns, or fallbackWidth when stdout is not
// a terminal.
func width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

func (e *env) mode(columns int) display.Mode {
	return display.ModeForColumns(columns, e.cfg.PxPerColumn)
}
