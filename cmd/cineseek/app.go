package main

import (
	"fmt"
	"log/slog"
	"time"

	"cineseek/pkg/cache"
	"cineseek/pkg/config"
	"cineseek/pkg/db"
	"cineseek/pkg/movie"
	"cineseek/pkg/request"
	"cineseek/pkg/tracker"
	"cineseek/pkg/wikidata"
	"cineseek/pkg/wikipedia"
)

// app bundles the wired engine with the pieces the commands need.
type app struct {
	cfg     *config.Config
	tracker *tracker.Tracker
	service *movie.Service
}

// buildApp loads configuration and wires the resolution engine. The
// returned cleanup closes the database (when open); callers always run it.
func buildApp(configPath string) (*app, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	trk := tracker.New()

	var cacher cache.Cacher = cache.Noop{}
	cleanup := func() {}
	if cfg.Cache.Enabled {
		database, err := db.Init(cfg.DB.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache db: %w", err)
		}
		if err := database.PruneCache(time.Duration(cfg.Cache.TTL)); err != nil {
			slog.Warn("Cache prune failed", "error", err)
		}
		cacher = cache.NewSQLiteCache(database)
		cleanup = func() { database.Close() }
	}

	req := request.New(cacher, trk, &cfg.Request)

	wd := wikidata.NewClient(req, slog.Default())
	wd.CacheRefs = cfg.Cache.Enabled
	if cfg.Wikidata.LocalLanguage != "" {
		wd.LocalLanguage = cfg.Wikidata.LocalLanguage
	}
	wp := wikipedia.NewClient(req)

	return &app{
		cfg:     cfg,
		tracker: trk,
		service: movie.New(cfg, wd, wp, trk, slog.Default()),
	}, cleanup, nil
}
