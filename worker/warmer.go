package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"

	"trip-suggester/internal/aggregate"
	"trip-suggester/internal/cache"
)

// Warmer refreshes cached results for a fixed list of queries on a cron
// schedule and sweeps expired entries afterwards.
type Warmer struct {
	Aggregator *aggregate.Aggregator
	Cache      *cache.Cache
	Schedule   string   // cron spec, e.g., "@every 6h" or "0 */6 * * *"
	Queries    []string // blank entries are skipped
}

func (w *Warmer) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.Schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("warmer: invalid schedule %q: %w", w.Schedule, err)
	}
	slog.Info("warmer: scheduled", "schedule", w.Schedule, "queries", len(w.Queries))

	// initial run
	w.RunOnce(ctx)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// RunOnce refreshes every configured query on every source, then sweeps.
func (w *Warmer) RunOnce(ctx context.Context) {
	for _, q := range w.Queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		for _, src := range w.Aggregator.Sources() {
			if ctx.Err() != nil {
				return
			}
			r := w.Aggregator.Refresh(ctx, src, q)
			if r.Err != nil {
				slog.Error("warmer: refresh failed", "source", src.Name(), "query", q, "error", r.Err)
				continue
			}
			slog.Info("warmer: refreshed", "source", src.Name(), "query", q, "count", len(r.Suggestions))
		}
	}
	if w.Cache == nil {
		return
	}
	removed, err := w.Cache.Sweep(ctx)
	if err != nil {
		slog.Error("warmer: sweep failed", "error", err)
		return
	}
	slog.Info("warmer: sweep completed", "removed", removed)
}
