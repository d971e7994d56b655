package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned when the board moved to a newer generation while
// a batch was running.
var ErrSuperseded = errors.New("load superseded by a newer view")

// ProgressFunc reports how many dates have settled out of total.
type ProgressFunc func(done, total int)

// BatchResult summarises a batch load.
type BatchResult struct {
	Total   int
	Failed  int
	Batches int
	Pauses  int
	Elapsed time.Duration
}

// Batch loads every date in groups of BatchSize. Each group is started in
// date order and waited for as a whole; progress is reported after every
// group and groups are separated by BatchPause. A cancelled context stops
// before the next group.
func (l *Loader) Batch(ctx context.Context, gen uint64, dates []string, progress ProgressFunc) (BatchResult, error) {
	res := BatchResult{Total: len(dates)}
	started := l.Now()
	var failed atomic.Int64

	for start := 0; start < len(dates); start += BatchSize {
		err := ctx.Err()
		if err == nil && !l.Board.Current(gen) {
			err = ErrSuperseded
		}
		if err != nil {
			res.Failed = int(failed.Load())
			res.Elapsed = l.Now().Sub(started)
			return res, err
		}
		end := start + BatchSize
		if end > len(dates) {
			end = len(dates)
		}

		var g errgroup.Group
		for _, date := range dates[start:end] {
			if !l.Board.MarkLoading(gen, date) {
				continue
			}
			g.Go(func() error {
				if err := l.fetch(ctx, gen, date); err != nil {
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()
		res.Batches++

		if progress != nil {
			progress(end, len(dates))
		}
		l.Log.Debug("batch settled", "batch", res.Batches, "done", end, "total", len(dates))

		if end < len(dates) {
			res.Pauses++
			if err := l.Sleep(ctx, BatchPause); err != nil {
				res.Failed = int(failed.Load())
				res.Elapsed = l.Now().Sub(started)
				return res, err
			}
		}
	}

	res.Failed = int(failed.Load())
	res.Elapsed = l.Now().Sub(started)
	l.Log.Info("batch load complete", "total", res.Total, "failed", res.Failed, "elapsed", res.Elapsed)
	return res, nil
}
