package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/commands/options"
	"tableflip.dev/campcal/pkg/loader"
	"tableflip.dev/campcal/pkg/runner/month"
	"tableflip.dev/campcal/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive month calendar",
		Example: `
campcal ui
campcal ui --on 2025-11
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := on.GetMonth(time.Now())
			if err != nil {
				return err
			}

			tui := interactive()
			e, err := setup(cmd, tui)
			if err != nil {
				return err
			}
			defer e.close()

			if !tui {
				// Piped output gets the plain grid instead of an alt screen.
				r := month.Month{
					Source:    e.client,
					Log:       e.log,
					Month:     m,
					WeekStart: e.cfg.WeekStart,
					Mode:      e.mode(fallbackWidth),
					Width:     fallbackWidth,
					Range:     e.cfg.LoadMode == string(app.LoadRange),
				}
				return r.Do(cmd.Context())
			}

			b := board.New()
			return app.Run(app.Options{
				Loader:      loader.New(e.client, b, e.log),
				Board:       b,
				Start:       m,
				WeekStart:   e.cfg.WeekStart,
				PxPerColumn: e.cfg.PxPerColumn,
				LoadMode:    app.LoadMode(e.cfg.LoadMode),
				LoadOnStart: e.cfg.LoadOnStart,
			})
		},
	}
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
