package calendar

import (
	"testing"
	"time"
)

func TestBuildNovember2025(t *testing.T) {
	g := Build(NewMonth(2025, 11), time.Monday)
	if len(g.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(g.Rows))
	}
	for col := 0; col < 5; col++ {
		if !g.Rows[0][col].Blank() {
			t.Fatalf("expected blank leading cell at column %d, got %+v", col, g.Rows[0][col])
		}
	}
	if first := g.Rows[0][5]; first.Day != 1 || first.ID != "2025-11-01" {
		t.Fatalf("unexpected first cell: %+v", first)
	}
	var found bool
	for _, c := range g.Rows[4] {
		if c.Day == 30 {
			found = true
			if c.ID != "2025-11-30" {
				t.Fatalf("unexpected id for day 30: %s", c.ID)
			}
		}
	}
	if !found {
		t.Fatalf("day 30 not placed in row 5")
	}
}

func TestBuildSundayStart(t *testing.T) {
	g := Build(NewMonth(2025, 11), time.Sunday)
	if got := FirstWeekday(g.Month, time.Sunday); got != 6 {
		t.Fatalf("expected 6 leading blanks, got %d", got)
	}
	if len(g.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(g.Rows))
	}
	if g.Header()[0] != "Su" {
		t.Fatalf("unexpected header: %v", g.Header())
	}
}

func TestBuildCountsEveryMonth(t *testing.T) {
	for _, start := range []time.Weekday{time.Monday, time.Sunday} {
		for year := 2023; year <= 2026; year++ {
			for month := 1; month <= 12; month++ {
				m := NewMonth(year, month)
				g := Build(m, start)

				cells := g.Cells()
				if len(cells) != m.Days() {
					t.Fatalf("%s: expected %d cells, got %d", m, m.Days(), len(cells))
				}
				offset := FirstWeekday(m, start)
				for col := 0; col < offset; col++ {
					if !g.Rows[0][col].Blank() {
						t.Fatalf("%s: column %d should be blank", m, col)
					}
				}
				if g.Rows[0][offset].Day != 1 {
					t.Fatalf("%s: day 1 not at column %d", m, offset)
				}
				if len(g.Rows) > 6 {
					t.Fatalf("%s: too many rows %d", m, len(g.Rows))
				}
				last := g.Rows[len(g.Rows)-1]
				hasDay := false
				for _, c := range last {
					if !c.Blank() {
						hasDay = true
					}
				}
				if !hasDay {
					t.Fatalf("%s: trailing empty row emitted", m)
				}
				seen := map[string]bool{}
				for _, c := range cells {
					if seen[c.ID] {
						t.Fatalf("%s: duplicate id %s", m, c.ID)
					}
					seen[c.ID] = true
				}
			}
		}
	}
}

func TestMonthAddNormalises(t *testing.T) {
	tests := []struct {
		start Month
		delta int
		want  Month
	}{
		{Month{2025, time.December}, 1, Month{2026, time.January}},
		{Month{2025, time.January}, -1, Month{2024, time.December}},
		{Month{2025, time.June}, 0, Month{2025, time.June}},
		{Month{2025, time.March}, -15, Month{2023, time.December}},
		{Month{2025, time.March}, 22, Month{2027, time.January}},
	}
	for _, tc := range tests {
		if got := tc.start.Add(tc.delta); got != tc.want {
			t.Fatalf("%s%+d = %s, want %s", tc.start, tc.delta, got, tc.want)
		}
	}
	if got := NewMonth(2025, 13); got != (Month{2026, time.January}) {
		t.Fatalf("NewMonth(2025, 13) = %s", got)
	}
	if got := NewMonth(2025, 0); got != (Month{2024, time.December}) {
		t.Fatalf("NewMonth(2025, 0) = %s", got)
	}
}

func TestMonthDates(t *testing.T) {
	m := NewMonth(2024, 2)
	dates := m.Dates()
	if len(dates) != 29 {
		t.Fatalf("expected leap February to have 29 dates, got %d", len(dates))
	}
	if dates[0] != "2024-02-01" || dates[28] != "2024-02-29" {
		t.Fatalf("unexpected bounds %s..%s", dates[0], dates[28])
	}
	if !m.Contains("2024-02-10") || m.Contains("2024-03-01") || m.Contains("garbage") {
		t.Fatalf("Contains misbehaves")
	}
	if m.Title() != "February 2024" {
		t.Fatalf("unexpected title %q", m.Title())
	}
}

func TestParseMonth(t *testing.T) {
	for _, in := range []string{"2025-11", "2025-011", "November 2025"} {
		m, err := ParseMonth(in)
		if err != nil {
			t.Fatalf("ParseMonth(%q): %v", in, err)
		}
		if m != (Month{2025, time.November}) {
			t.Fatalf("ParseMonth(%q) = %s", in, m)
		}
	}
	for _, in := range []string{"", "2025", "2025-13", "abc-01"} {
		if _, err := ParseMonth(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
