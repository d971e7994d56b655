package month

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/category"
	"tableflip.dev/campcal/pkg/display"
	"tableflip.dev/campcal/pkg/loader"
	"tableflip.dev/campcal/pkg/printers"
)

type Month struct {
	Source    loader.Source
	Log       *slog.Logger
	Month     calendar.Month
	WeekStart time.Weekday
	Mode      display.Mode
	Width     int
	Range     bool
	Table     bool
	JSON      bool
	Out       io.Writer
}

// Load fills a fresh board with the month using either loader and returns
// its cells in date order.
func Load(ctx context.Context, src loader.Source, log *slog.Logger, m calendar.Month, useRange bool) ([]board.Cell, error) {
	b := board.New()
	gen := b.Reset(m)
	l := loader.New(src, b, log)
	if useRange {
		if _, err := l.Range(ctx, gen, m, nil); err != nil {
			return nil, err
		}
	} else if _, err := l.Batch(ctx, gen, m.Dates(), nil); err != nil {
		return nil, err
	}
	return b.Cells(), nil
}

func (n *Month) Do(ctx context.Context) error {
	cells, err := Load(ctx, n.Source, n.Log, n.Month, n.Range)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		return WriteJSON(out, n.Month, cells)
	}

	pp := printers.PrettyPrint{Out: out, Mode: n.Mode}
	if n.Table {
		pp.Title(n.Month.Title())
		pp.Table(cells)
		return nil
	}
	pp.Month(calendar.Build(n.Month, n.WeekStart), cells, n.Width)
	return nil
}

type jsonMonth struct {
	Month string     `json:"month"`
	Days  []jsonCell `json:"days"`
}

type jsonCell struct {
	Date   string         `json:"date"`
	State  string         `json:"state"`
	Counts map[string]int `json:"counts,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// WriteJSON writes the cells as one indented JSON document.
func WriteJSON(w io.Writer, m calendar.Month, cells []board.Cell) error {
	doc := jsonMonth{Month: m.String(), Days: make([]jsonCell, 0, len(cells))}
	for _, c := range cells {
		jc := jsonCell{Date: c.Date, State: c.State.String()}
		if c.State == board.Loaded {
			jc.Counts = make(map[string]int, len(c.Counts))
			for _, cc := range category.Counts(c.Counts) {
				jc.Counts[cc.Category.Label] = cc.Value
			}
		}
		if c.Err != nil {
			jc.Error = c.Err.Error()
		}
		doc.Days = append(doc.Days, jc)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
