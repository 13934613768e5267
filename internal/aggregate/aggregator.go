package aggregate

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"trip-suggester/internal/cache"
	"trip-suggester/internal/model"
)

// Source is one fetch-and-normalize adapter.
type Source interface {
	Name() model.Source
	Search(ctx context.Context, query string) model.SourceResult
}

// History records searched queries.
type History interface {
	PushQuery(ctx context.Context, q string, max int) error
	RecentQueries(ctx context.Context) ([]string, error)
}

// Aggregator fans a query out to every source and concatenates the results.
type Aggregator struct {
	sources     []Source
	cache       *cache.Cache
	preloaded   []model.Suggestion
	history     History
	historySize int
}

// New wires an aggregator. cache and history may be nil.
func New(sources []Source, c *cache.Cache, preloaded []model.Suggestion, history History, historySize int) *Aggregator {
	if historySize <= 0 {
		historySize = 10
	}
	return &Aggregator{
		sources:     sources,
		cache:       c,
		preloaded:   preloaded,
		history:     history,
		historySize: historySize,
	}
}

// Aggregate returns suggestions for query in source declaration order, with
// no deduplication across sources. A blank query yields the preloaded set.
// It never fails; an unreachable source simply contributes nothing or its fallback.
func (a *Aggregator) Aggregate(ctx context.Context, query string) []model.Suggestion {
	if strings.TrimSpace(query) == "" {
		return a.Preloaded()
	}
	var out []model.Suggestion
	for _, r := range a.Detailed(ctx, query) {
		out = append(out, r.Suggestions...)
	}
	return out
}

// Preloaded returns a copy of the static suggestion set.
func (a *Aggregator) Preloaded() []model.Suggestion {
	return append([]model.Suggestion(nil), a.preloaded...)
}

// Detailed runs every source concurrently and returns one result per source,
// in declaration order. Blank queries return nil.
func (a *Aggregator) Detailed(ctx context.Context, query string) []model.SourceResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	a.record(ctx, query)

	results := make([]model.SourceResult, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = a.search(ctx, src, query)
		}(i, src)
	}
	wg.Wait()

	for _, r := range results {
		slog.Info("aggregate: source done", "source", r.Source, "query", query,
			"status", r.Status, "count", len(r.Suggestions), "cached", r.Cached)
	}
	return results
}

// Refresh bypasses the cache read for one source and stores the new result.
func (a *Aggregator) Refresh(ctx context.Context, src Source, query string) model.SourceResult {
	r := src.Search(ctx, query)
	a.store(ctx, src, query, r)
	return r
}

// Sources returns the configured sources.
func (a *Aggregator) Sources() []Source {
	return a.sources
}

// Recent returns the search history, newest first.
func (a *Aggregator) Recent(ctx context.Context) ([]string, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.RecentQueries(ctx)
}

func (a *Aggregator) search(ctx context.Context, src Source, query string) model.SourceResult {
	if a.cache != nil {
		if items, ok := a.cache.Get(ctx, cache.Key(src.Name(), query)); ok {
			r := model.NewResult(src.Name(), items, nil)
			r.Cached = true
			return r
		}
	}
	return a.Refresh(ctx, src, query)
}

// store caches any result whose search did not fail, empty ones included.
func (a *Aggregator) store(ctx context.Context, src Source, query string, r model.SourceResult) {
	if a.cache == nil || r.Err != nil {
		return
	}
	a.cache.Put(ctx, cache.Key(src.Name(), query), r.Suggestions)
}

func (a *Aggregator) record(ctx context.Context, query string) {
	if a.history == nil {
		return
	}
	if err := a.history.PushQuery(ctx, strings.TrimSpace(query), a.historySize); err != nil {
		slog.Warn("aggregate: record query failed", "query", query, "error", err)
	}
}
