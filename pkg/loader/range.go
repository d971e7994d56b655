package loader

import (
	"context"

	"tableflip.dev/campcal/pkg/calendar"
)

// Stage is a fixed checkpoint of a range load.
type Stage int

const (
	StageRequested Stage = iota
	StageReceived
	StageRendered
)

// Percent is the progress fraction shown for the stage.
func (s Stage) Percent() float64 {
	switch s {
	case StageRequested:
		return 0.1
	case StageReceived:
		return 0.5
	}
	return 1
}

func (s Stage) String() string {
	switch s {
	case StageRequested:
		return "requested"
	case StageReceived:
		return "received"
	}
	return "rendered"
}

// StageFunc is called as a range load passes each checkpoint.
type StageFunc func(Stage)

// RangeResult summarises a range load.
type RangeResult struct {
	Dates int
}

// Range loads the whole month with one request and writes every returned
// date to the board through the same path as Single. Every date is marked
// loading before the request. Dates missing from the response go back to
// pending; on failure every date is marked failed and the error is returned.
func (l *Loader) Range(ctx context.Context, gen uint64, month calendar.Month, stage StageFunc) (RangeResult, error) {
	report := func(s Stage) {
		if stage != nil {
			stage(s)
		}
	}

	start := month.First().Format(calendar.DateLayout)
	end := month.Last().Format(calendar.DateLayout)

	dates := month.Dates()
	for _, date := range dates {
		l.Board.MarkLoading(gen, date)
	}

	report(StageRequested)
	data, err := l.Source.Range(ctx, start, end)
	if err != nil {
		l.Log.Error("load range failed", "start", start, "end", end, "err", err)
		for _, date := range dates {
			l.Board.SetFailed(gen, date, err)
		}
		return RangeResult{}, err
	}
	report(StageReceived)

	var res RangeResult
	for _, date := range dates {
		counts, ok := data[date]
		if !ok {
			l.Board.SetPending(gen, date)
			continue
		}
		if l.Board.SetCounts(gen, date, counts) {
			res.Dates++
		}
	}
	report(StageRendered)
	l.Log.Info("range load complete", "start", start, "end", end, "dates", res.Dates)
	return res, nil
}
