package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/category"
	"tableflip.dev/campcal/pkg/display"
)

// PrettyPrint writes availability to a terminal without the interactive UI.
type PrettyPrint struct {
	Out  io.Writer
	Mode display.Mode
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

var (
	availableColor   = color.New(color.FgGreen, color.Bold)
	unavailableColor = color.New(color.Faint)
	errorColor       = color.New(color.FgRed, color.Bold)
	pendingColor     = color.New(color.Faint, color.Italic)
	titleColor       = color.New(color.Bold, color.Underline)
)

func statusColor(s category.Status) *color.Color {
	switch s {
	case category.Available:
		return availableColor
	case category.Error:
		return errorColor
	}
	return unavailableColor
}

// Title prints an underlined heading.
func (pp *PrettyPrint) Title(title string) {
	_, _ = titleColor.Fprintln(pp.out(), title)
}

// Day prints one date's categories as a table.
func (pp *PrettyPrint) Day(date string, counts map[string]int) {
	pp.Title(date)

	lines := display.Lines(counts, pp.Mode)
	if len(lines) == 0 {
		_, _ = pendingColor.Fprintln(pp.out(), " no data")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Category", "Count", "Status")
	for _, l := range lines {
		value := strconv.Itoa(l.Count)
		if l.Status == category.Error {
			value = display.ErrorMarker
		}
		c := statusColor(l.Status)
		tbl.AddRow(l.Category.Label, c.Sprint(value), c.Sprint(l.Status.String()))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Table prints one row per date with a column per category.
func (pp *PrettyPrint) Table(cells []board.Cell) {
	tbl := uitable.New()
	tbl.Separator = "  "

	header := []interface{}{"Date"}
	for _, c := range category.All() {
		header = append(header, c.Label)
	}
	tbl.AddRow(header...)

	for _, cell := range cells {
		row := []interface{}{cell.Date}
		for _, c := range category.All() {
			row = append(row, pp.tableValue(cell, c))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) tableValue(cell board.Cell, c category.Category) string {
	switch cell.State {
	case board.Failed:
		return errorColor.Sprint(display.ErrorMarker)
	case board.Pending, board.Loading:
		return pendingColor.Sprint("·")
	}
	v, ok := cell.Counts[c.Label]
	if !ok {
		return pendingColor.Sprint("-")
	}
	v = category.Normalize(v)
	s := category.StatusOf(v)
	if s == category.Error {
		return errorColor.Sprint(display.ErrorMarker)
	}
	return statusColor(s).Sprint(strconv.Itoa(v))
}
