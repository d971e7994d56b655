package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/campcal/pkg/commands/options"
)

func New() *cobra.Command {
	so := &options.ServerOptions{}

	cmd := &cobra.Command{
		Use:   "campcal",
		Short: base.Wrap80("Campsite availability on a month calendar."),
		Long: base.Wrap80("campcal shows a month calendar with the number of free " +
			"campsites per category for every day. Settings are read from " +
			".campcal.yaml and CAMPCAL_* environment variables; flags win."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddServerArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addMonth(topLevel)
	addDay(topLevel)
	addExport(topLevel)
	addVersion(topLevel)
}
