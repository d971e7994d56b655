package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/display"
	"tableflip.dev/campcal/pkg/loader"
)

type stubSource struct {
	mu       sync.Mutex
	days     map[string]map[string]int
	rangeErr error
	dayCalls int
}

func (s *stubSource) Day(ctx context.Context, date string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayCalls++
	if c, ok := s.days[date]; ok {
		return c, nil
	}
	return map[string]int{"고급": 0}, nil
}

func (s *stubSource) Range(ctx context.Context, start, end string) (map[string]map[string]int, error) {
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	return s.days, nil
}

func (s *stubSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dayCalls
}

func newTestModel(t *testing.T, src *stubSource, start calendar.Month) *Model {
	t.Helper()
	b := board.New()
	l := loader.New(src, b, slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.Sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	now := time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)
	m := New(Options{
		Loader:    l,
		Board:     b,
		Start:     start,
		WeekStart: time.Monday,
		Now:       func() time.Time { return now },
	})
	t.Cleanup(func() { m.cancel() })
	return m
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func press(m *Model, key string) tea.Cmd {
	return m.handleKey(key)
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestInitialRender(t *testing.T) {
	m := newTestModel(t, &stubSource{}, calendar.NewMonth(2025, 11))
	if m.Title() != "군포 캠핑장 예약 현황 달력 (2025년 11월)" {
		t.Fatalf("unexpected title %q", m.Title())
	}
	if len(m.grid.Rows) != 5 {
		t.Fatalf("expected 5 week rows, got %d", len(m.grid.Rows))
	}
	for _, c := range m.board.Cells() {
		if c.State != board.Pending {
			t.Fatalf("cell %s should be pending", c.Date)
		}
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "(2025년 11월)") || !strings.Contains(view, "Mo") {
		t.Fatalf("expected title and weekday header; view=%q", view)
	}
}

func TestNavigationNormalisesAndDoesNotLoad(t *testing.T) {
	src := &stubSource{}
	m := newTestModel(t, src, calendar.NewMonth(2025, 12))

	press(m, "l")
	if m.year != 2026 || m.month != 1 {
		t.Fatalf("expected January 2026, got %d-%d", m.year, m.month)
	}
	press(m, "h")
	press(m, "h")
	if m.year != 2025 || m.month != 11 {
		t.Fatalf("expected November 2025, got %d-%d", m.year, m.month)
	}

	m.ChangeMonth(-11)
	if m.year != 2024 || m.month != 12 {
		t.Fatalf("expected December 2024, got %d-%d", m.year, m.month)
	}
	if m.Title() != "군포 캠핑장 예약 현황 달력 (2024년 12월)" {
		t.Fatalf("title not rebuilt: %q", m.Title())
	}
	if src.calls() != 0 {
		t.Fatalf("navigation must not fetch, saw %d calls", src.calls())
	}

	press(m, "t")
	if m.Month() != calendar.NewMonth(2025, 11) {
		t.Fatalf("expected today's month, got %s", m.Month())
	}
}

func TestBatchReloadRendersCounts(t *testing.T) {
	src := &stubSource{days: map[string]map[string]int{
		"2025-11-03": {"고급": 3, "일반": 0, "자갈": -1},
	}}
	m := newTestModel(t, src, calendar.NewMonth(2025, 11))
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	msgs := runCmd(press(m, "r"))
	if len(msgs) != 1 {
		t.Fatalf("expected one completion message, got %d", len(msgs))
	}
	m.Update(msgs[0])

	if src.calls() != 30 {
		t.Fatalf("expected 30 requests, got %d", src.calls())
	}
	notice, isErr := m.Notice()
	if isErr || !strings.Contains(notice, "Loaded 30 dates") {
		t.Fatalf("unexpected notice %q", notice)
	}

	view := stripANSI(m.View())
	for _, want := range []string{"고급: 3", "일반: 0", "자갈: X"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view; view=%q", want, view)
		}
	}
}

func TestNoticeRevertsToIdle(t *testing.T) {
	m := newTestModel(t, &stubSource{}, calendar.NewMonth(2025, 11))
	msgs := runCmd(press(m, "r"))
	m.Update(msgs[0])

	m.Update(noticeExpiredMsg{seq: m.noticeSeq - 1})
	if n, _ := m.Notice(); n == idleNotice {
		t.Fatalf("an outdated expiry must not clear the notice")
	}
	m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	if n, _ := m.Notice(); n != idleNotice {
		t.Fatalf("expected idle notice, got %q", n)
	}
}

func TestRangeFailureShowsError(t *testing.T) {
	src := &stubSource{rangeErr: errors.New("backend down")}
	m := newTestModel(t, src, calendar.NewMonth(2025, 11))

	msgs := runCmd(press(m, "R"))
	if !m.progressVisible {
		t.Fatalf("progress should be visible while the range loads")
	}
	m.Update(msgs[0])

	notice, isErr := m.Notice()
	if !isErr || !strings.Contains(notice, "backend down") {
		t.Fatalf("expected error notice, got %q (err=%v)", notice, isErr)
	}
	m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	if m.progressVisible {
		t.Fatalf("progress should hide after the notice delay")
	}
}

func TestRangeReloadRendersCounts(t *testing.T) {
	src := &stubSource{days: map[string]map[string]int{
		"2025-11-10": {"데크": 2},
	}}
	m := newTestModel(t, src, calendar.NewMonth(2025, 11))

	msgs := runCmd(press(m, "R"))
	m.Update(msgs[0])

	if m.progressPercent != 1 {
		t.Fatalf("expected progress complete, got %v", m.progressPercent)
	}
	c, _ := m.board.Cell("2025-11-10")
	if c.State != board.Loaded {
		t.Fatalf("expected loaded cell, got %s", c.State)
	}
	if !strings.Contains(stripANSI(m.View()), "데크: 2") {
		t.Fatalf("expected deck count in view")
	}
}

func TestStaleBatchCompletionIgnored(t *testing.T) {
	m := newTestModel(t, &stubSource{}, calendar.NewMonth(2025, 11))
	cmd := press(m, "r")
	press(m, "l")

	for _, msg := range runCmd(cmd) {
		m.Update(msg)
	}
	if n, _ := m.Notice(); n != idleNotice {
		t.Fatalf("completion of a superseded load must not change the notice, got %q", n)
	}
	for _, c := range m.board.Cells() {
		if c.State != board.Pending {
			t.Fatalf("new month cell %s should stay pending, got %s", c.Date, c.State)
		}
	}
}

func TestResizeDebounceRefreshesSettledCells(t *testing.T) {
	src := &stubSource{days: map[string]map[string]int{
		"2025-11-03": {"고급": 3},
	}}
	m := newTestModel(t, src, calendar.NewMonth(2025, 11))
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	if m.Mode() != display.Desktop {
		t.Fatalf("expected desktop, got %s", m.Mode())
	}

	gen := m.gen
	if err := m.loader.Single(context.Background(), gen, "2025-11-03"); err != nil {
		t.Fatalf("Single: %v", err)
	}
	m.board.MarkLoading(gen, "2025-11-04")
	before := src.calls()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 40})
	if m.Mode() != display.Desktop {
		t.Fatalf("mode must not change before the debounce settles")
	}

	_, cmd := m.Update(resizeSettledMsg{seq: m.resizeSeq - 1})
	if cmd != nil || m.Mode() != display.Desktop {
		t.Fatalf("superseded resize must be ignored")
	}

	_, cmd = m.Update(resizeSettledMsg{seq: m.resizeSeq})
	if m.Mode() != display.Mobile {
		t.Fatalf("expected mobile mode, got %s", m.Mode())
	}
	runCmd(cmd)
	if got := src.calls() - before; got != 1 {
		t.Fatalf("expected exactly the settled cell to be re-fetched, got %d requests", got)
	}
	if !strings.Contains(stripANSI(m.View()), "고급 3") {
		t.Fatalf("expected mobile formatting in view")
	}
}

func TestBatchProgressEventUpdatesNotice(t *testing.T) {
	m := newTestModel(t, &stubSource{}, calendar.NewMonth(2025, 11))
	m.loading = true
	m.Update(boardEventMsg{msg: batchProgressMsg{gen: m.gen, done: 10, total: 30}})
	if n, _ := m.Notice(); n != "Loading 10/30" {
		t.Fatalf("unexpected notice %q", n)
	}
	m.Update(boardEventMsg{msg: batchProgressMsg{gen: m.gen - 1, done: 15, total: 30}})
	if n, _ := m.Notice(); n != "Loading 10/30" {
		t.Fatalf("stale progress must be ignored, got %q", n)
	}
}

func TestCompletionSurvivesFullEventChannel(t *testing.T) {
	m := newTestModel(t, &stubSource{}, calendar.NewMonth(2025, 11))
	for i := 0; i < 1000; i++ {
		m.board.Publish(batchProgressMsg{gen: m.gen, done: 0, total: 30})
	}

	msgs := runCmd(press(m, "r"))
	m.Update(msgs[0])
	if n, _ := m.Notice(); !strings.HasPrefix(n, "Loaded 30 dates") {
		t.Fatalf("expected completion notice, got %q", n)
	}

	msgs = runCmd(press(m, "R"))
	m.Update(msgs[0])
	if m.progressPercent != 1 {
		t.Fatalf("expected range progress complete, got %v", m.progressPercent)
	}
}
