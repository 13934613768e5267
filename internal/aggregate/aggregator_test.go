package aggregate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-suggester/internal/cache"
	"trip-suggester/internal/forum"
	"trip-suggester/internal/model"
	"trip-suggester/internal/storage"
	"trip-suggester/internal/websearch"
)

type fakeSource struct {
	name  model.Source
	items []model.Suggestion
	err   error
	delay time.Duration
	calls int32
}

func (f *fakeSource) Name() model.Source { return f.name }

func (f *fakeSource) Search(ctx context.Context, query string) model.SourceResult {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return model.NewResult(f.name, f.items, f.err)
}

func (f *fakeSource) Calls() int { return int(atomic.LoadInt32(&f.calls)) }

var preloaded = []model.Suggestion{{ID: "preloaded-x", Title: "X", Source: model.SourcePreloaded}}

func TestAggregateOrderAndNoDedup(t *testing.T) {
	forumSrc := &fakeSource{name: model.SourceForum, delay: 20 * time.Millisecond, items: []model.Suggestion{
		{ID: "forum-1", Title: "Grand Bazaar"},
		{ID: "forum-2", Title: "Kebab"},
	}}
	webSrc := &fakeSource{name: model.SourceWeb, items: []model.Suggestion{
		{ID: "web-1", Title: "Grand Bazaar"},
	}}
	a := New([]Source{forumSrc, webSrc}, nil, preloaded, nil, 0)

	got := a.Aggregate(context.Background(), "bazaar")
	require.Len(t, got, 3)
	assert.Equal(t, "forum-1", got[0].ID)
	assert.Equal(t, "forum-2", got[1].ID)
	assert.Equal(t, "web-1", got[2].ID)
}

func TestAggregateBlankQueryUsesPreloaded(t *testing.T) {
	src := &fakeSource{name: model.SourceForum}
	a := New([]Source{src}, nil, preloaded, nil, 0)

	assert.Equal(t, preloaded, a.Aggregate(context.Background(), "   "))
	assert.Equal(t, 0, src.Calls())
	assert.Nil(t, a.Detailed(context.Background(), ""))
}

func TestAggregateRunsSourcesConcurrently(t *testing.T) {
	slow1 := &fakeSource{name: model.SourceForum, delay: 150 * time.Millisecond}
	slow2 := &fakeSource{name: model.SourceWeb, delay: 150 * time.Millisecond}
	a := New([]Source{slow1, slow2}, nil, nil, nil, 0)

	start := time.Now()
	a.Aggregate(context.Background(), "tea")
	assert.Less(t, time.Since(start), 280*time.Millisecond)
}

func TestAggregateSurvivesTransportFailure(t *testing.T) {
	// a server that is closed before use refuses every connection
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	sources := []Source{
		forum.NewClient(forum.Config{BaseURL: dead.URL, Timeout: time.Second}),
		websearch.NewClient(websearch.Config{BaseURL: dead.URL, Timeout: time.Second}),
	}
	a := New(sources, cache.New(storage.NewMemoryStore(), 0), nil, nil, 0)

	done := make(chan []model.Suggestion, 1)
	go func() { done <- a.Aggregate(context.Background(), "ferry schedule") }()
	select {
	case got := <-done:
		assert.Empty(t, got)
	case <-time.After(5 * time.Second):
		t.Fatal("aggregate did not return")
	}

	results := a.Detailed(context.Background(), "street food")
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusFailed, results[0].Status)
	assert.Equal(t, model.StatusFailed, results[1].Status)
	// web fallback still answers
	require.Len(t, results[1].Suggestions, 1)
	assert.Equal(t, "web-fallback-food", results[1].Suggestions[0].ID)
}

func TestAggregateCachesPerSource(t *testing.T) {
	forumSrc := &fakeSource{name: model.SourceForum, items: []model.Suggestion{{ID: "forum-1"}}}
	webSrc := &fakeSource{name: model.SourceWeb, items: []model.Suggestion{{ID: "web-1"}}}
	store := storage.NewMemoryStore()
	a := New([]Source{forumSrc, webSrc}, cache.New(store, 0), nil, nil, 0)
	ctx := context.Background()

	first := a.Aggregate(ctx, "Kebab")
	second := a.Aggregate(ctx, "kebab")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, forumSrc.Calls())
	assert.Equal(t, 1, webSrc.Calls())

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forum:kebab", "web:kebab"}, keys)

	results := a.Detailed(ctx, "kebab")
	assert.True(t, results[0].Cached)
	assert.True(t, results[1].Cached)
}

func TestAggregateDoesNotCacheFailures(t *testing.T) {
	failing := &fakeSource{name: model.SourceForum, err: errors.New("boom")}
	a := New([]Source{failing}, cache.New(storage.NewMemoryStore(), 0), nil, nil, 0)
	ctx := context.Background()

	a.Aggregate(ctx, "tea")
	a.Aggregate(ctx, "tea")
	assert.Equal(t, 2, failing.Calls())
}

func TestAggregateRecordsHistory(t *testing.T) {
	store := storage.NewMemoryStore()
	a := New([]Source{&fakeSource{name: model.SourceWeb}}, nil, nil, store, 2)
	ctx := context.Background()

	a.Aggregate(ctx, "tea")
	a.Aggregate(ctx, "  kebab ")
	a.Aggregate(ctx, "")
	a.Aggregate(ctx, "ferry")

	got, err := a.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ferry", "kebab"}, got)
}

func TestFilter(t *testing.T) {
	items := []model.Suggestion{
		{ID: "1", Category: model.CategoryFood, Neighborhood: "Kadıköy"},
		{ID: "2", Category: model.CategoryFood, Neighborhood: "Moda"},
		{ID: "3", Category: model.CategoryBazaar, Neighborhood: "Moda"},
	}
	ids := func(list []model.Suggestion) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []string{"1", "2"}, ids(Filter(items, "food", "")))
	assert.Equal(t, []string{"2", "3"}, ids(Filter(items, "all", "moda")))
	assert.Equal(t, []string{"2"}, ids(Filter(items, "FOOD", "Moda")))
	assert.Len(t, Filter(items, "", "All"), 3)
}
