// Package calendar builds month grids whose day cells are identified by ISO
// dates.
package calendar

import "time"

// Cell is one slot of the grid. Blank cells have Day 0 and no ID.
type Cell struct {
	Day int
	ID  string
}

// Blank reports whether the cell lies outside the month.
func (c Cell) Blank() bool { return c.ID == "" }

// Week is one row of seven cells.
type Week [7]Cell

// Grid is a month laid out in weeks.
type Grid struct {
	Month     Month
	WeekStart time.Weekday
	Rows      []Week
}

// FirstWeekday returns how many blank cells precede day 1 when weeks start on
// weekStart.
func FirstWeekday(m Month, weekStart time.Weekday) int {
	return (int(m.First().Weekday()) - int(weekStart) + 7) % 7
}

// Build lays out the month in at most six weeks. Rows stop after the week
// holding the last day.
func Build(m Month, weekStart time.Weekday) Grid {
	offset := FirstWeekday(m, weekStart)
	days := m.Days()
	rows := (offset + days + 6) / 7

	g := Grid{Month: m, WeekStart: weekStart, Rows: make([]Week, 0, rows)}
	for row := 0; row < rows; row++ {
		var w Week
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				continue
			}
			w[col] = Cell{Day: day, ID: m.Date(day)}
		}
		g.Rows = append(g.Rows, w)
	}
	return g
}

// Cells returns the non-blank cells in date order.
func (g Grid) Cells() []Cell {
	out := make([]Cell, 0, 31)
	for _, w := range g.Rows {
		for _, c := range w {
			if !c.Blank() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Header returns two-letter weekday labels starting at the grid's week start.
func (g Grid) Header() []string {
	return WeekdayLabels(g.WeekStart)
}

// WeekdayLabels returns two-letter weekday labels starting at weekStart.
func WeekdayLabels(weekStart time.Weekday) []string {
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = (time.Weekday((int(weekStart) + i) % 7)).String()[:2]
	}
	return labels
}

// ParseWeekStart maps "monday" or "sunday" to a weekday. Anything else
// yields Monday.
func ParseWeekStart(s string) time.Weekday {
	switch s {
	case "sunday", "Sunday", "sun", "su":
		return time.Sunday
	}
	return time.Monday
}
