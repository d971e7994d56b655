package board

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/category"
)

// State is the load state of a cell.
type State int

const (
	Pending State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "pending"
}

// Settled reports whether the cell has finished a load, successfully or not.
func (s State) Settled() bool { return s == Loaded || s == Failed }

// Cell is the state of one date of the displayed month.
type Cell struct {
	Date   string
	State  State
	Counts map[string]int
	Err    error
}

// CellMsg is emitted whenever a cell changes.
type CellMsg struct {
	Generation uint64
	Cell       Cell
}

// ResetMsg is emitted when the board switches to a new month.
type ResetMsg struct {
	Generation uint64
	Month      calendar.Month
}

// Board holds the cells of the displayed month. Every Reset starts a new
// generation; writes stamped with an older generation are dropped so that a
// response arriving after navigation never lands on the new month.
//
// Changes are emitted on Events without blocking and may be dropped when the
// channel is full. Cell state can always be re-read from Cells. Messages sent
// with Publish are not recorded anywhere, so they must be safe to lose.
type Board struct {
	mu sync.RWMutex

	month      calendar.Month
	generation uint64
	cells      map[string]*Cell
	order      []string

	eventCh chan tea.Msg
}

// New creates an empty board.
func New() *Board {
	return &Board{
		cells:   make(map[string]*Cell),
		eventCh: make(chan tea.Msg, 256),
	}
}

// Events exposes the board event channel for Bubble Tea subscriptions.
func (b *Board) Events() <-chan tea.Msg {
	return b.eventCh
}

// Publish forwards msg to event subscribers.
func (b *Board) Publish(msg tea.Msg) {
	b.emit(msg)
}

// Reset replaces every cell with pending cells for month and returns the new
// generation.
func (b *Board) Reset(month calendar.Month) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.month = month
	b.order = month.Dates()
	b.cells = make(map[string]*Cell, len(b.order))
	for _, d := range b.order {
		b.cells[d] = &Cell{Date: d, State: Pending}
	}
	b.emit(ResetMsg{Generation: b.generation, Month: month})
	return b.generation
}

// Generation returns the current generation.
func (b *Board) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

// Month returns the month the board currently holds.
func (b *Board) Month() calendar.Month {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.month
}

// Current reports whether gen is still the live generation.
func (b *Board) Current(gen uint64) bool {
	return b.Generation() == gen
}

// MarkLoading flags the cell as loading. It returns false when gen is stale
// or the date is not on the board.
func (b *Board) MarkLoading(gen uint64, date string) bool {
	return b.update(gen, date, func(c *Cell) {
		c.State = Loading
		c.Err = nil
	})
}

// SetCounts stores loaded counts for the date.
func (b *Board) SetCounts(gen uint64, date string, counts map[string]int) bool {
	normalized := make(map[string]int, len(counts))
	for k, v := range counts {
		normalized[k] = category.Normalize(v)
	}
	return b.update(gen, date, func(c *Cell) {
		c.State = Loaded
		c.Counts = normalized
		c.Err = nil
	})
}

// SetPending returns the cell to pending, dropping any counts.
func (b *Board) SetPending(gen uint64, date string) bool {
	return b.update(gen, date, func(c *Cell) {
		c.State = Pending
		c.Counts = nil
		c.Err = nil
	})
}

// SetFailed marks the date as failed with err.
func (b *Board) SetFailed(gen uint64, date string, err error) bool {
	return b.update(gen, date, func(c *Cell) {
		c.State = Failed
		c.Counts = nil
		c.Err = err
	})
}

func (b *Board) update(gen uint64, date string, fn func(*Cell)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return false
	}
	c, ok := b.cells[date]
	if !ok {
		return false
	}
	fn(c)
	b.emit(CellMsg{Generation: gen, Cell: cloneCell(c)})
	return true
}

// Cell returns a copy of the cell for date.
func (b *Board) Cell(date string) (Cell, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.cells[date]
	if !ok {
		return Cell{}, false
	}
	return cloneCell(c), true
}

// Cells returns copies of every cell in date order.
func (b *Board) Cells() []Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Cell, 0, len(b.order))
	for _, d := range b.order {
		out = append(out, cloneCell(b.cells[d]))
	}
	return out
}

// Settled lists the dates whose load has finished, in date order. Pending and
// loading cells are skipped.
func (b *Board) Settled() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []string
	for _, d := range b.order {
		if b.cells[d].State.Settled() {
			out = append(out, d)
		}
	}
	return out
}

func (b *Board) emit(msg tea.Msg) {
	select {
	case b.eventCh <- msg:
	default:
	}
}

func cloneCell(c *Cell) Cell {
	out := *c
	if c.Counts != nil {
		out.Counts = make(map[string]int, len(c.Counts))
		for k, v := range c.Counts {
			out.Counts[k] = v
		}
	}
	return out
}
