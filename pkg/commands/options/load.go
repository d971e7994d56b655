package options

import "github.com/spf13/cobra"

// LoadOptions picks how a month is fetched.
type LoadOptions struct {
	Range bool
}

func AddLoadArgs(cmd *cobra.Command, o *LoadOptions) {
	cmd.Flags().BoolVar(&o.Range, "range", false,
		"Fetch the whole month with one range request instead of per-date batches.")
}
