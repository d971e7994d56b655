package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO layout used for cell identifiers and API dates.
const DateLayout = "2006-01-02"

// Month is a normalised (year, month) pair.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the month for year/month, rolling months outside 1..12
// into the year.
func NewMonth(year, month int) Month {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return Month{Year: year, Month: time.Month(m + 1)}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves the month by delta months, carrying into the year.
func (m Month) Add(delta int) Month {
	return NewMonth(m.Year, int(m.Month)+delta)
}

// First returns midnight UTC on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns midnight UTC on the last day of the month.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Last().Day()
}

// Date returns the ISO identifier for day of the month.
func (m Month) Date(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

// Dates lists every ISO date of the month in order.
func (m Month) Dates() []string {
	n := m.Days()
	out := make([]string, 0, n)
	for d := 1; d <= n; d++ {
		out = append(out, m.Date(d))
	}
	return out
}

// Contains reports whether the ISO date falls inside the month.
func (m Month) Contains(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Year() == m.Year && t.Month() == m.Month
}

// Title renders "January 2006".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ParseMonth accepts "2006-01", "2006-1" or "January 2006".
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month{}, fmt.Errorf("empty month")
	}
	if t, err := time.Parse("January 2006", s); err == nil {
		return MonthOf(t), nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	mo, err := strconv.Atoi(parts[1])
	if err != nil || mo < 1 || mo > 12 {
		return Month{}, fmt.Errorf("invalid month in %q", s)
	}
	return Month{Year: y, Month: time.Month(mo)}, nil
}

// ParseDate parses an ISO date identifier.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
