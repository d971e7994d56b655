// Package export writes loaded availability as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/category"
	"tableflip.dev/campcal/pkg/display"
)

const productID = "-//tableflip.dev//campcal//EN"

// ICS writes one all-day event per loaded date with at least one available
// category and returns the number of events written. Dates that are pending,
// failed or fully booked are skipped.
func ICS(w io.Writer, cells []board.Cell, stamp time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	n := 0
	for _, c := range cells {
		if c.State != board.Loaded || !category.HasAvailability(c.Counts) {
			continue
		}
		day, err := calendar.ParseDate(c.Date)
		if err != nil {
			return 0, fmt.Errorf("cell %q: %w", c.Date, err)
		}
		cal.Children = append(cal.Children, event(c, day, stamp).Component)
		n++
	}
	if n == 0 {
		// An empty VCALENDAR is invalid, so emit nothing at all.
		return 0, nil
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("encoding calendar: %w", err)
	}
	return n, nil
}

func event(c board.Cell, day, stamp time.Time) *ical.Event {
	e := ical.NewEvent()
	e.Props.SetText(ical.PropUID, c.Date+"@campcal")
	e.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	e.Props.SetDate(ical.PropDateTimeStart, day)
	e.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))

	var open, all []string
	for _, l := range display.Lines(c.Counts, display.Desktop) {
		all = append(all, l.Text)
		if l.Status == category.Available {
			open = append(open, l.Text)
		}
	}
	e.Props.SetText(ical.PropSummary, "Campsites open: "+strings.Join(open, ", "))
	e.Props.SetText(ical.PropDescription, strings.Join(all, "\n"))
	e.Props.SetText(ical.PropTransparency, "TRANSPARENT")
	return e
}
