package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tableflip.dev/campcal/pkg/calendar"
	"tableflip.dev/campcal/pkg/export"
	"tableflip.dev/campcal/pkg/loader"
	"tableflip.dev/campcal/pkg/runner/month"
)

type Export struct {
	Source loader.Source
	Log    *slog.Logger
	Month  calendar.Month
	Range  bool
	// Path is the output file; empty or "-" writes to Out.
	Path string
	Out  io.Writer
	Now  func() time.Time
}

func (n *Export) Do(ctx context.Context) error {
	cells, err := month.Load(ctx, n.Source, n.Log, n.Month, n.Range)
	if err != nil {
		return err
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	var buf bytes.Buffer
	count, err := export.ICS(&buf, cells, now())
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no availability in %s, nothing exported", n.Month.Title())
	}

	if n.Path != "" && n.Path != "-" {
		if err := os.WriteFile(n.Path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", n.Path, err)
		}
	} else {
		w := n.Out
		if w == nil {
			w = os.Stdout
		}
		if _, err := buf.WriteTo(w); err != nil {
			return err
		}
	}
	if n.Log != nil {
		n.Log.Info("exported", "month", n.Month.String(), "events", count, "path", n.Path)
	}
	return nil
}
