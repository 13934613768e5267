package worker

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-suggester/internal/aggregate"
	"trip-suggester/internal/cache"
	"trip-suggester/internal/model"
	"trip-suggester/internal/storage"
)

type funcWorker func(ctx context.Context) error

func (f funcWorker) Start(ctx context.Context) error { return f(ctx) }

func TestManagerStopsOnCancel(t *testing.T) {
	var stopped int32
	w := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		atomic.AddInt32(&stopped, 1)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	require.NoError(t, NewManager(w, w).Start(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&stopped))
}

func TestManagerReturnsFirstError(t *testing.T) {
	boom := errors.New("bind: address in use")
	failing := funcWorker(func(context.Context) error { return boom })
	waiting := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- NewManager(failing, waiting).Start(context.Background()) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop after a worker failed")
	}
}

type countingSource struct {
	name  model.Source
	calls int32
}

func (s *countingSource) Name() model.Source { return s.name }

func (s *countingSource) Search(_ context.Context, q string) model.SourceResult {
	atomic.AddInt32(&s.calls, 1)
	return model.NewResult(s.name, []model.Suggestion{{ID: string(s.name) + "-" + q}}, nil)
}

func TestWarmerRunOnceRefreshesAndSweeps(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()
	c := cache.New(store, time.Hour, cache.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	c.Put(ctx, "forum:stale", nil)
	now = now.Add(2 * time.Hour)

	src := &countingSource{name: model.SourceForum}
	agg := aggregate.New([]aggregate.Source{src}, c, nil, nil, 0)
	w := &Warmer{Aggregator: agg, Cache: c, Schedule: "@every 1h", Queries: []string{"", "Kebab"}}
	w.RunOnce(ctx)

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forum:kebab"}, keys)

	got, ok := c.Get(ctx, "forum:kebab")
	require.True(t, ok)
	assert.Equal(t, "forum-Kebab", got[0].ID)
}

func TestWarmerRejectsBadSchedule(t *testing.T) {
	agg := aggregate.New(nil, nil, nil, nil, 0)
	w := &Warmer{Aggregator: agg, Schedule: "every now and then"}
	assert.Error(t, w.Start(context.Background()))
}

func TestHTTPServerShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &HTTPServer{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
