package printers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/display"
)

const minColumn = 8

// Month prints the grid with each day's categories under its number. width
// is the terminal width in columns.
func (pp *PrettyPrint) Month(grid calendar.Grid, cells []board.Cell, width int) {
	col := width / 7
	if col < minColumn {
		col = minColumn
	}

	byDate := make(map[string]board.Cell, len(cells))
	for _, c := range cells {
		byDate[c.Date] = c
	}

	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)
	m := grid.Month.Title()
	mid := (col*7 - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)

	header := make([]string, 0, 7)
	for _, h := range grid.Header() {
		header = append(header, pad(h, col))
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(header, ""), " "))

	day := color.New(color.Bold, color.FgHiWhite)
	for _, week := range grid.Rows {
		rows := make([][]string, 5)
		for _, c := range week {
			if c.Blank() {
				for i := range rows {
					rows[i] = append(rows[i], pad("", col))
				}
				continue
			}
			content := pp.cellContent(byDate[c.ID], col-1)
			rows[0] = append(rows[0], pad(day.Sprint(strconv.Itoa(c.Day)), col))
			for i := 1; i < len(rows); i++ {
				text := ""
				if i-1 < len(content) {
					text = content[i-1]
				}
				rows[i] = append(rows[i], pad(text, col))
			}
		}
		for _, r := range rows {
			_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(r, ""), " "))
		}
	}
	_, _ = fmt.Fprintln(w)
}

func (pp *PrettyPrint) cellContent(c board.Cell, width int) []string {
	fit := func(s string) string { return truncate.StringWithTail(s, uint(width), "…") }
	switch c.State {
	case board.Pending:
		return []string{pendingColor.Sprint("·")}
	case board.Loading:
		return []string{pendingColor.Sprint(fit("loading…"))}
	case board.Failed:
		return []string{errorColor.Sprint(display.ErrorMarker)}
	}
	lines := display.Lines(c.Counts, pp.Mode)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, statusColor(l.Status).Sprint(fit(l.Text)))
	}
	return out
}

func pad(s string, width int) string {
	n := ansi.PrintableRuneWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
