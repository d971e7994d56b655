package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campcal/pkg/commands/options"
	"tableflip.dev/campcal/pkg/runner/month"
)

func addMonth(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	lo := &options.LoadOptions{}
	oo := &options.OutputOptions{}
	table := false

	cmd := &cobra.Command{
		Use:   "month",
		Short: "print a month of availability",
		Example: `
campcal month
campcal month --on 2025-11 --range
campcal month --on "November 2025" --table
campcal month --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := on.GetMonth(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := setup(cmd, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			w := width()
			r := month.Month{
				Source:    e.client,
				Log:       e.log,
				Month:     m,
				WeekStart: e.cfg.WeekStart,
				Mode:      e.mode(w),
				Width:     w,
				Range:     lo.Range || e.cfg.LoadMode == "range",
				Table:     table,
				JSON:      oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddLoadArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&table, "table", false, "Print one row per date instead of a calendar grid.")

	topLevel.AddCommand(cmd)
}
