// Package app is the Bubble Tea front end: it owns the displayed month, wires
// navigation and reload keys to the loaders, and re-renders on resize.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/progress"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/campcal/pkg/board"
	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/display"
	"tableflip.dev/campcal/pkg/loader"
	"tableflip.dev/campcal/pkg/tui/theme"
)

// ResizeDebounce is how long the terminal size must stay unchanged before
// loaded cells are refreshed.
const ResizeDebounce = 500 * time.Millisecond

const idleNotice = "r: load month · R: load month in one request"

// LoadMode selects which loader a reload uses by default.
type LoadMode string

const (
	LoadBatch LoadMode = "batch"
	LoadRange LoadMode = "range"
)

// Options configures a Model.
type Options struct {
	Loader *loader.Loader
	Board  *board.Board

	// Start is the month shown first; zero means the current month.
	Start       calendar.Month
	WeekStart   time.Weekday
	PxPerColumn int
	LoadMode    LoadMode
	LoadOnStart bool

	Now   func() time.Time
	Theme *theme.Theme
}

type boardEventMsg struct{ msg tea.Msg }

type batchProgressMsg struct {
	gen         uint64
	done, total int
}

type batchDoneMsg struct {
	gen    uint64
	result loader.BatchResult
	err    error
}

type rangeStageMsg struct {
	gen   uint64
	stage loader.Stage
}

type rangeDoneMsg struct {
	gen    uint64
	result loader.RangeResult
	err    error
}

type resizeSettledMsg struct{ seq int }

type noticeExpiredMsg struct{ seq int }

// Model is the calendar view controller.
type Model struct {
	loader *loader.Loader
	board  *board.Board

	base   context.Context
	ctx    context.Context
	cancel context.CancelFunc

	year  int
	month int
	gen   uint64
	grid  calendar.Grid
	title string

	weekStart   time.Weekday
	pxPerColumn int
	loadMode    LoadMode
	loadOnStart bool
	now         func() time.Time

	width     int
	height    int
	mode      display.Mode
	resizeSeq int

	notice    string
	noticeErr bool
	noticeSeq int

	loading         bool
	progress        progress.Model
	progressVisible bool
	progressPercent float64

	theme theme.Theme
}

// New builds the model and renders the initial month.
func New(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	start := opts.Start
	if start == (calendar.Month{}) {
		start = calendar.MonthOf(now())
	}
	mode := opts.LoadMode
	if mode != LoadRange {
		mode = LoadBatch
	}

	m := &Model{
		loader:      opts.Loader,
		board:       opts.Board,
		base:        context.Background(),
		year:        start.Year,
		month:       int(start.Month),
		weekStart:   opts.WeekStart,
		pxPerColumn: opts.PxPerColumn,
		loadMode:    mode,
		loadOnStart: opts.LoadOnStart,
		now:         now,
		mode:        display.Desktop,
		notice:      idleNotice,
		progress:    newProgress(0),
		theme:       th,
	}
	m.ctx, m.cancel = context.WithCancel(m.base)
	m.updateTitle()
	m.generateGrid()
	return m
}

// Run launches the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listen()}
	if m.loadOnStart {
		cmds = append(cmds, m.reload(m.loadMode))
	}
	return tea.Batch(cmds...)
}

// Month returns the displayed month.
func (m *Model) Month() calendar.Month {
	return calendar.NewMonth(m.year, m.month)
}

// Title returns the title text.
func (m *Model) Title() string { return m.title }

// Mode returns the display mode currently applied to cells.
func (m *Model) Mode() display.Mode { return m.mode }

// Notice returns the notice line text and whether it reports an error.
func (m *Model) Notice() (string, bool) { return m.notice, m.noticeErr }

// ChangeMonth moves the view by delta months. Loads of the previous month are
// cancelled and cells start pending; nothing is fetched.
func (m *Model) ChangeMonth(delta int) {
	next := calendar.NewMonth(m.year, m.month+delta)
	m.year, m.month = next.Year, int(next.Month)

	m.cancel()
	m.ctx, m.cancel = context.WithCancel(m.base)
	m.loading = false
	m.progressVisible = false
	m.setNotice(idleNotice, false)

	m.updateTitle()
	m.generateGrid()
}

// titlePrefix names the campground whose availability is shown.
const titlePrefix = "군포 캠핑장 예약 현황 달력"

func (m *Model) updateTitle() {
	m.title = fmt.Sprintf("%s (%d년 %d월)", titlePrefix, m.year, m.month)
}

func (m *Model) generateGrid() {
	month := m.Month()
	m.grid = calendar.Build(month, m.weekStart)
	m.gen = m.board.Reset(month)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(v.Width, v.Height)
	case resizeSettledMsg:
		if v.seq != m.resizeSeq {
			return m, nil
		}
		m.mode = display.ModeForColumns(m.width, m.pxPerColumn)
		return m, m.refreshSettled()
	case noticeExpiredMsg:
		if v.seq == m.noticeSeq {
			m.notice = idleNotice
			m.noticeErr = false
			m.progressVisible = false
		}
		return m, nil
	case boardEventMsg:
		return m, tea.Batch(m.handleEvent(v.msg), m.listen())
	case batchDoneMsg:
		return m, m.batchDone(v)
	case rangeDoneMsg:
		return m, m.rangeDone(v)
	case tea.KeyPressMsg:
		return m, m.handleKey(v.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q", "esc":
		m.cancel()
		return tea.Quit
	case "left", "h", "p":
		m.ChangeMonth(-1)
	case "right", "l", "n":
		m.ChangeMonth(1)
	case "t":
		today := calendar.MonthOf(m.now())
		delta := (today.Year-m.year)*12 + int(today.Month) - m.month
		if delta != 0 {
			m.ChangeMonth(delta)
		}
	case "r":
		return m.reload(LoadBatch)
	case "R", "shift+r":
		return m.reload(LoadRange)
	}
	return nil
}

func (m *Model) resize(width, height int) tea.Cmd {
	first := m.width == 0
	m.width, m.height = width, height
	m.progress = newProgress(width)
	if first {
		m.mode = display.ModeForColumns(width, m.pxPerColumn)
		return nil
	}
	m.resizeSeq++
	seq := m.resizeSeq
	return tea.Tick(ResizeDebounce, func(time.Time) tea.Msg {
		return resizeSettledMsg{seq: seq}
	})
}

// refreshSettled re-fetches every cell that already finished loading so its
// labels pick up the current mode. Pending and loading cells are skipped.
func (m *Model) refreshSettled() tea.Cmd {
	dates := m.board.Settled()
	if len(dates) == 0 {
		return nil
	}
	l, ctx, gen := m.loader, m.ctx, m.gen
	cmds := make([]tea.Cmd, 0, len(dates))
	for _, date := range dates {
		cmds = append(cmds, func() tea.Msg {
			_ = l.Single(ctx, gen, date)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) reload(mode LoadMode) tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	if mode == LoadRange {
		return m.startRange()
	}
	return m.startBatch()
}

func (m *Model) startBatch() tea.Cmd {
	l, b, ctx, gen := m.loader, m.board, m.ctx, m.gen
	dates := m.Month().Dates()
	m.progressVisible = false
	m.setNotice(fmt.Sprintf("Loading 0/%d", len(dates)), false)
	return func() tea.Msg {
		res, err := l.Batch(ctx, gen, dates, func(done, total int) {
			b.Publish(batchProgressMsg{gen: gen, done: done, total: total})
		})
		return batchDoneMsg{gen: gen, result: res, err: err}
	}
}

func (m *Model) batchDone(msg batchDoneMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.setNotice(fmt.Sprintf("Load stopped: %v", msg.err), true)
		return m.expireNotice()
	}
	text := fmt.Sprintf("Loaded %d dates in %.2fs", msg.result.Total, msg.result.Elapsed.Seconds())
	if msg.result.Failed > 0 {
		text += fmt.Sprintf(" (%d failed)", msg.result.Failed)
	}
	m.setNotice(text, false)
	return m.expireNotice()
}

func (m *Model) startRange() tea.Cmd {
	l, b, ctx, gen := m.loader, m.board, m.ctx, m.gen
	month := m.Month()
	m.progressVisible = true
	m.progressPercent = 0
	m.setNotice(fmt.Sprintf("Requesting %s", month.Title()), false)
	return func() tea.Msg {
		res, err := l.Range(ctx, gen, month, func(s loader.Stage) {
			b.Publish(rangeStageMsg{gen: gen, stage: s})
		})
		return rangeDoneMsg{gen: gen, result: res, err: err}
	}
}

func (m *Model) rangeDone(msg rangeDoneMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.setNotice(fmt.Sprintf("Range load failed: %v", msg.err), true)
		return m.expireNotice()
	}
	m.progressPercent = loader.StageRendered.Percent()
	m.setNotice(fmt.Sprintf("Loaded %d dates in one request", msg.result.Dates), false)
	return m.expireNotice()
}

func (m *Model) handleEvent(msg tea.Msg) tea.Cmd {
	switch v := msg.(type) {
	case batchProgressMsg:
		if v.gen == m.gen && m.loading {
			m.setNotice(fmt.Sprintf("Loading %d/%d", v.done, v.total), false)
		}
	case rangeStageMsg:
		if v.gen == m.gen && m.progressVisible {
			if p := v.stage.Percent(); p > m.progressPercent {
				m.progressPercent = p
			}
		}
	}
	return nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
}

func (m *Model) expireNotice() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(loader.NoticeDelay, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// listen waits for the next board event. Progress published by the loaders
// is best effort; the final notice and percentage come from batchDoneMsg and
// rangeDoneMsg, which are returned by the load command itself.
func (m *Model) listen() tea.Cmd {
	ch := m.board.Events()
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return boardEventMsg{msg: msg}
	}
}

func newProgress(width int) progress.Model {
	w := width - 4
	if w < 10 {
		w = 40
	}
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(w))
}
