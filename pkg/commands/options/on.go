package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campcal/pkg/calendar"
)

// OnOptions selects the month to work on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a month, example: --on="2025-11" or --on="November 2025". Defaults to this month.`)
}

// GetMonth parses --on, falling back to the month containing now.
func (o *OnOptions) GetMonth(now time.Time) (calendar.Month, error) {
	if o.OnString == "" {
		return calendar.MonthOf(now), nil
	}
	return calendar.ParseMonth(o.OnString)
}
