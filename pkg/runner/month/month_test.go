package month

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/display"
)

type stubSource struct {
	days     map[string]map[string]int
	failDate string
	rangeErr error
}

func (s *stubSource) Day(_ context.Context, date string) (map[string]int, error) {
	if date == s.failDate {
		return nil, errors.New("backend down")
	}
	return s.days[date], nil
}

func (s *stubSource) Range(_ context.Context, _, _ string) (map[string]map[string]int, error) {
	return s.days, s.rangeErr
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMonthJSON(t *testing.T) {
	src := &stubSource{
		days:     map[string]map[string]int{"2025-02-03": {"고급": 3, "일반": -4}},
		failDate: "2025-02-04",
	}
	var buf bytes.Buffer
	n := &Month{Source: src, Log: discard, Month: calendar.NewMonth(2025, 2), JSON: true, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var doc jsonMonth
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("bad json %q: %v", buf.String(), err)
	}
	if doc.Month != "2025-02" || len(doc.Days) != 28 {
		t.Fatalf("unexpected document %+v", doc)
	}
	d3 := doc.Days[2]
	if d3.State != "loaded" || d3.Counts["고급"] != 3 || d3.Counts["일반"] != -1 {
		t.Errorf("unexpected day 3 %+v", d3)
	}
	d4 := doc.Days[3]
	if d4.State != "failed" || !strings.Contains(d4.Error, "backend down") {
		t.Errorf("unexpected day 4 %+v", d4)
	}
}

func TestMonthRangeGrid(t *testing.T) {
	color.NoColor = true
	src := &stubSource{days: map[string]map[string]int{"2025-11-10": {"데크": 2}}}
	var buf bytes.Buffer
	n := &Month{
		Source: src, Log: discard, Month: calendar.NewMonth(2025, 11),
		Range: true, Mode: display.Desktop, Width: 140, Out: &buf,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "데크: 2") {
		t.Errorf("expected deck count:\n%s", buf.String())
	}
}

func TestMonthRangeFailure(t *testing.T) {
	src := &stubSource{rangeErr: errors.New("backend down")}
	n := &Month{Source: src, Log: discard, Month: calendar.NewMonth(2025, 11), Range: true, Out: io.Discard}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected the range error")
	}
}
