// Package catalog orchestrates the content pipeline: it wires one metadata
// fetcher per content kind and reconciles normalized records against the
// shared content catalog.
package catalog

import (
	"context"
	"fmt"

	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/fetch"
	"github.com/altbier/mediatrack/jikan"
	"github.com/altbier/mediatrack/media"
	"github.com/altbier/mediatrack/rawg"
	"github.com/altbier/mediatrack/steam"
	"github.com/altbier/mediatrack/tmdb"
)

// Engine fetches, normalizes and reconciles content.
type Engine struct {
	db       *database.Client
	fetchers map[media.Kind]fetch.Fetcher
}

// New creates a new engine with one fetcher per content kind.
func New(cfg *config.Config, db *database.Client) *Engine {
	tmdbClient := tmdb.New(cfg.TMDB)
	return &Engine{
		db: db,
		fetchers: map[media.Kind]fetch.Fetcher{
			media.KindAnime:  fetch.NewAnimeFetcher(jikan.New(cfg.Jikan)),
			media.KindGame:   fetch.NewGameFetcher(rawg.New(cfg.RAWG), steam.New(cfg.Steam)),
			media.KindMovie:  fetch.NewMovieFetcher(tmdbClient),
			media.KindSeries: fetch.NewSeriesFetcher(tmdbClient),
		},
	}
}

// NewWithFetchers creates an engine with the given fetchers. Used by the
// tests to substitute stubbed providers.
func NewWithFetchers(db *database.Client, fetchers map[media.Kind]fetch.Fetcher) *Engine {
	return &Engine{db: db, fetchers: fetchers}
}

// Fetch runs the metadata adapter for the given kind without touching the
// catalog.
func (e *Engine) Fetch(ctx context.Context, kind media.Kind, title string, year *int) (*media.Record, error) {
	f, ok := e.fetchers[kind]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for kind %q", kind)
	}
	return f.Fetch(ctx, title, year)
}

// Add fetches the title from the kind's provider and reconciles the result
// against the catalog.
func (e *Engine) Add(ctx context.Context, kind media.Kind, title string, year *int) (*database.Content, bool, error) {
	rec, err := e.Fetch(ctx, kind, title, year)
	if err != nil {
		return nil, false, err
	}
	return e.Reconcile(ctx, rec)
}
