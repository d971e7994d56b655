package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campcal/pkg/commands/options"
	"tableflip.dev/campcal/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	lo := &options.LoadOptions{}
	path := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the dates with free sites as an iCalendar file",
		Example: `
campcal export --on 2025-11 -o november.ics
campcal export --range > month.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := on.GetMonth(time.Now())
			if err != nil {
				return err
			}
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			r := export.Export{
				Source: e.client,
				Log:    e.log,
				Month:  m,
				Range:  lo.Range || e.cfg.LoadMode == "range",
				Path:   path,
			}
			return r.Do(cmd.Context())
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddLoadArgs(cmd, lo)
	cmd.Flags().StringVarP(&path, "output", "o", "-", "File to write, - for stdout.")

	topLevel.AddCommand(cmd)
}
