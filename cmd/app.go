package cmd

import (
	"fmt"
	"time"

	"trip-suggester/internal/aggregate"
	"trip-suggester/internal/cache"
	"trip-suggester/internal/config"
	"trip-suggester/internal/forum"
	"trip-suggester/internal/preload"
	"trip-suggester/internal/storage"
	"trip-suggester/internal/websearch"
)

// app bundles the pieces every command needs.
type app struct {
	store      storage.Store
	cache      *cache.Cache
	aggregator *aggregate.Aggregator
}

func (a *app) Close() error {
	return a.store.Close()
}

// newApp wires store, cache, sources and aggregator from cfg.
func newApp(cfg config.Config) (*app, error) {
	retention, err := time.ParseDuration(cfg.Cache.Retention)
	if err != nil {
		return nil, fmt.Errorf("invalid cache.retention: %w", err)
	}
	forumTimeout, err := time.ParseDuration(cfg.Sources.Forum.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid sources.forum.timeout: %w", err)
	}
	webTimeout, err := time.ParseDuration(cfg.Sources.Web.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid sources.web.timeout: %w", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	c := cache.New(store, retention)

	fc := forum.NewClient(forum.Config{
		BaseURL:   cfg.Sources.Forum.BaseURL,
		LinkURL:   cfg.Sources.Forum.LinkURL,
		Community: cfg.Sources.Forum.Community,
		Thread:    cfg.Sources.Forum.Thread,
		UserAgent: cfg.Sources.Forum.UserAgent,
		Timeout:   forumTimeout,
	})
	wc := websearch.NewClient(websearch.Config{
		BaseURL: cfg.Sources.Web.BaseURL,
		Prefix:  cfg.Sources.Web.Prefix,
		Suffix:  cfg.Sources.Web.Suffix,
		Timeout: webTimeout,
	})

	agg := aggregate.New([]aggregate.Source{fc, wc}, c, preload.Istanbul(), store, cfg.Cache.History)
	return &app{store: store, cache: c, aggregator: agg}, nil
}
