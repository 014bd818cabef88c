package fetch

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/altbier/mediatrack/match"
	"github.com/altbier/mediatrack/media"
	"github.com/altbier/mediatrack/tmdb"
)

// MovieFetcher normalizes movie metadata from the TMDB API.
type MovieFetcher struct {
	tmdb *tmdb.Client
}

// NewMovieFetcher creates a new movie fetcher.
func NewMovieFetcher(c *tmdb.Client) *MovieFetcher {
	return &MovieFetcher{tmdb: c}
}

// Fetch searches TMDB for the title and builds a validated movie record.
func (f *MovieFetcher) Fetch(ctx context.Context, title string, year *int) (*media.Record, error) {
	res, err := f.tmdb.SearchMovies(ctx, title, year)
	if err != nil {
		return nil, err
	}

	candidates := lo.Map(res.Results, func(r tmdb.SearchResult, _ int) match.Candidate {
		return match.Candidate{ID: r.ID, Title: r.Title}
	})
	best, similarity, ok := match.Best(title, candidates)
	if !ok {
		return nil, &media.NotFoundError{Provider: "tmdb", Title: title}
	}
	log.Debug("selected movie candidate", "title", best.Title, "tmdb_id", best.ID, "similarity", similarity)

	item, err := f.tmdb.Movie(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if item.PosterPath != nil {
		u := f.tmdb.PosterURL(*item.PosterPath)
		imageURL = &u
	}

	rec := &media.Record{
		Kind:        media.KindMovie,
		Title:       item.Title,
		Description: item.Overview,
		Score:       score(item.VoteAverage),
		Popularity:  popularity(item.Popularity),
		ImageURL:    imageURL,
		AgeRating:   movieCertification(item.ReleaseDates.Results),
		Studios:     lo.Map(item.ProductionCompanies, func(c tmdb.NamedResource, _ int) string { return c.Name }),
		ReleaseDate: parseDate(item.ReleaseDate),
		Genres:      lo.Map(item.Genres, func(g tmdb.NamedResource, _ int) string { return g.Name }),
		Movie: &media.MovieDetails{
			Duration: item.Runtime,
		},
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// movieCertification resolves the age rating from the regional release
// dates, consulting regions in the fixed priority order. Within a region
// the first non-empty certification wins.
func movieCertification(entries []tmdb.ReleaseDatesEntry) *media.AgeRating {
	for _, region := range certificationRegions {
		for _, entry := range entries {
			if entry.CountryCode != region {
				continue
			}
			for _, rd := range entry.ReleaseDates {
				if rd.Certification != "" {
					return mapCertification(rd.Certification)
				}
			}
		}
	}
	return nil
}
