// Package loader fills a board with availability counts, one date at a time,
// in rate limited batches, or with a single range request.
package loader

import (
	"context"
	"log/slog"
	"time"

	"tableflip.dev/campcal/pkg/board"
)

const (
	// BatchSize is the number of dates requested concurrently per batch.
	BatchSize = 5
	// BatchPause separates consecutive batches.
	BatchPause = 100 * time.Millisecond
	// NoticeDelay is how long completion notices and progress stay visible.
	NoticeDelay = 3 * time.Second
)

// Source fetches counts keyed by category label.
type Source interface {
	Day(ctx context.Context, date string) (map[string]int, error)
	Range(ctx context.Context, start, end string) (map[string]map[string]int, error)
}

// Loader writes fetched counts into a board.
type Loader struct {
	Source Source
	Board  *board.Board
	Log    *slog.Logger

	// Sleep and Now are replaceable for tests.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// New returns a loader with real clocks.
func New(src Source, b *board.Board, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		Source: src,
		Board:  b,
		Log:    log,
		Sleep:  sleep,
		Now:    time.Now,
	}
}

// Single loads one date. The cell is marked loading, then loaded or failed.
// Results for a superseded generation are discarded. The returned error is
// informational; the failure is already recorded on the board.
func (l *Loader) Single(ctx context.Context, gen uint64, date string) error {
	if !l.Board.MarkLoading(gen, date) {
		return nil
	}
	return l.fetch(ctx, gen, date)
}

func (l *Loader) fetch(ctx context.Context, gen uint64, date string) error {
	counts, err := l.Source.Day(ctx, date)
	if err != nil {
		l.Log.Error("load date failed", "date", date, "err", err)
		l.Board.SetFailed(gen, date, err)
		return err
	}
	if !l.Board.SetCounts(gen, date, counts) {
		l.Log.Debug("dropped stale response", "date", date, "generation", gen)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
