// Package display chooses how verbose availability labels are for a given
// screen width and renders a category to count mapping into lines.
package display

import (
	"strconv"

	"tableflip.dev/campcal/pkg/category"
)

// Mode is a rendering mode selected from the available width.
type Mode int

const (
	Desktop Mode = iota
	Tablet
	Mobile
)

// Width thresholds, in pixels.
const (
	MobileMaxWidth = 480
	TabletMaxWidth = 768
)

// DefaultPixelsPerColumn approximates the pixel width of one terminal column.
const DefaultPixelsPerColumn = 8

// ErrorMarker replaces the count of a category that failed to load, and is
// the whole content of a cell whose request failed.
const ErrorMarker = "X"

func (m Mode) String() string {
	switch m {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	}
	return "desktop"
}

// ModeFor selects the mode for a width in pixels.
func ModeFor(width int) Mode {
	switch {
	case width <= MobileMaxWidth:
		return Mobile
	case width <= TabletMaxWidth:
		return Tablet
	default:
		return Desktop
	}
}

// ModeForColumns selects the mode for a terminal width in columns.
func ModeForColumns(columns, pxPerColumn int) Mode {
	if pxPerColumn <= 0 {
		pxPerColumn = DefaultPixelsPerColumn
	}
	return ModeFor(columns * pxPerColumn)
}

// Colon reports whether the label is followed by a colon.
func (m Mode) Colon() bool { return m != Mobile }

// Line is one rendered category of a cell.
type Line struct {
	Category category.Category
	Count    int
	Status   category.Status
	Text     string
}

// Format renders "label: value" (or "label value" on mobile). Error counts
// render as the error marker.
func Format(c category.Category, count int, mode Mode) string {
	value := strconv.Itoa(count)
	if category.StatusOf(count) == category.Error {
		value = ErrorMarker
	}
	sep := " "
	if mode.Colon() {
		sep = ": "
	}
	return c.Label + sep + value
}

// Lines renders every recognised category of raw in display order.
func Lines(raw map[string]int, mode Mode) []Line {
	counts := category.Counts(raw)
	out := make([]Line, 0, len(counts))
	for _, c := range counts {
		out = append(out, Line{
			Category: c.Category,
			Count:    c.Value,
			Status:   c.Status(),
			Text:     Format(c.Category, c.Value, mode),
		})
	}
	return out
}
