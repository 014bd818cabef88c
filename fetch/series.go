package fetch

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/altbier/mediatrack/match"
	"github.com/altbier/mediatrack/media"
	"github.com/altbier/mediatrack/tmdb"
)

// SeriesFetcher normalizes tv series metadata from the TMDB API.
type SeriesFetcher struct {
	tmdb *tmdb.Client
}

// NewSeriesFetcher creates a new series fetcher.
func NewSeriesFetcher(c *tmdb.Client) *SeriesFetcher {
	return &SeriesFetcher{tmdb: c}
}

// Fetch searches TMDB for the title and builds a validated series record.
func (f *SeriesFetcher) Fetch(ctx context.Context, title string, year *int) (*media.Record, error) {
	res, err := f.tmdb.SearchSeries(ctx, title, year)
	if err != nil {
		return nil, err
	}

	candidates := lo.Map(res.Results, func(r tmdb.SearchResult, _ int) match.Candidate {
		return match.Candidate{ID: r.ID, Title: r.Name}
	})
	best, similarity, ok := match.Best(title, candidates)
	if !ok {
		return nil, &media.NotFoundError{Provider: "tmdb", Title: title}
	}
	log.Debug("selected series candidate", "title", best.Title, "tmdb_id", best.ID, "similarity", similarity)

	item, err := f.tmdb.Series(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if item.PosterPath != nil {
		u := f.tmdb.PosterURL(*item.PosterPath)
		imageURL = &u
	}

	// TMDB returns per-episode runtimes as a list; take the first entry,
	// an empty list means unknown.
	var episodeDuration *int
	if len(item.EpisodeRunTime) > 0 {
		episodeDuration = &item.EpisodeRunTime[0]
	}

	rec := &media.Record{
		Kind:        media.KindSeries,
		Title:       item.Name,
		Description: item.Overview,
		Score:       score(item.VoteAverage),
		Popularity:  popularity(item.Popularity),
		ImageURL:    imageURL,
		AgeRating:   seriesCertification(item.ContentRatings.Results),
		Studios:     lo.Map(item.ProductionCompanies, func(c tmdb.NamedResource, _ int) string { return c.Name }),
		ReleaseDate: parseDate(item.FirstAirDate),
		Genres:      lo.Map(item.Genres, func(g tmdb.NamedResource, _ int) string { return g.Name }),
		Series: &media.SeriesDetails{
			EpisodeDuration: episodeDuration,
			Episodes:        item.NumberOfEpisodes,
			IsOngoing:       item.InProduction,
		},
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// seriesCertification resolves the age rating from the regional content
// ratings, consulting regions in the fixed priority order.
func seriesCertification(entries []tmdb.ContentRatingEntry) *media.AgeRating {
	for _, region := range certificationRegions {
		for _, entry := range entries {
			if entry.CountryCode == region && entry.Rating != "" {
				return mapCertification(entry.Rating)
			}
		}
	}
	return nil
}
