package day

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/campcal/pkg/category"
	"tableflip.dev/campcal/pkg/display"
	"tableflip.dev/campcal/pkg/loader"
	"tableflip.dev/campcal/pkg/printers"
)

type Day struct {
	Source loader.Source
	Date   string
	Mode   display.Mode
	JSON   bool
	Out    io.Writer
}

func (n *Day) Do(ctx context.Context) error {
	counts, err := n.Source.Day(ctx, n.Date)
	if err != nil {
		return fmt.Errorf("loading %s: %w", n.Date, err)
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		normalized := make(map[string]int, len(counts))
		for _, c := range category.Counts(counts) {
			normalized[c.Category.Label] = c.Value
		}
		b, err := json.Marshal(map[string]interface{}{"date": n.Date, "counts": normalized})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out, Mode: n.Mode}
	pp.Day(n.Date, counts)
	return nil
}
