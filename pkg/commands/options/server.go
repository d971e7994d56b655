package options

import (
	"time"

	"github.com/spf13/cobra"
)

// ServerOptions are the persistent flags that override config file values.
type ServerOptions struct {
	BaseURL string
	Timeout time.Duration
}

func AddServerArgs(cmd *cobra.Command, o *ServerOptions) {
	cmd.PersistentFlags().StringVar(&o.BaseURL, "base-url", "",
		"Base URL of the availability backend.")
	cmd.PersistentFlags().DurationVar(&o.Timeout, "timeout", 0,
		"Per request timeout.")
}
