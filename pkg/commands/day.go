package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/commands/options"
	"tableflip.dev/campcal/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "day DATE",
		Short: "print availability for one date",
		Example: `
campcal day 2025-11-03
campcal day 2025-11-03 --json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one date, got %d", len(args))
			}
			if _, err := calendar.ParseDate(args[0]); err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			r := day.Day{
				Source: e.client,
				Date:   args[0],
				Mode:   e.mode(width()),
				JSON:   oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
