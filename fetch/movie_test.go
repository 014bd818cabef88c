package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/media"
	"github.com/altbier/mediatrack/tmdb"
)

const tmdbMovieSearchFixture = `{"results": [
	{"id": 603, "title": "The Matrix"},
	{"id": 604, "title": "The Matrix Reloaded"}
]}`

const tmdbMovieDetailFixture = `{
	"id": 603,
	"title": "The Matrix",
	"overview": "A computer hacker learns the truth.",
	"vote_average": 8.2,
	"popularity": 92.6,
	"poster_path": "/matrix.jpg",
	"release_date": "1999-03-31",
	"runtime": 136,
	"production_companies": [{"id": 79, "name": "Village Roadshow Pictures"}],
	"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"release_dates": {"results": [
		{"iso_3166_1": "DE", "release_dates": [{"certification": "16"}]},
		{"iso_3166_1": "US", "release_dates": [{"certification": ""}, {"certification": "R"}]}
	]}
}`

func newMovieFetcher(t *testing.T, detail string) *MovieFetcher {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
			w.Write([]byte(tmdbMovieSearchFixture)) //nolint: errcheck
		case "/movie/603":
			assert.Equal(t, "release_dates", r.URL.Query().Get("append_to_response"))
			w.Write([]byte(detail)) //nolint: errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return NewMovieFetcher(tmdb.New(&config.TMDBConfig{
		URL:       srv.URL,
		APIToken:  "test-token",
		PosterURL: "https://image.example/t/p/original",
	}))
}

func TestMovieFetcher_Fetch(t *testing.T) {
	f := newMovieFetcher(t, tmdbMovieDetailFixture)

	rec, err := f.Fetch(context.Background(), "The Matrix", nil)
	require.NoError(t, err)

	assert.Equal(t, media.KindMovie, rec.Kind)
	assert.Equal(t, "The Matrix", rec.Title)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "A computer hacker learns the truth.", *rec.Description)

	require.NotNil(t, rec.Score)
	assert.InDelta(t, 8.2, *rec.Score, 0.0001)

	// Popularity is rounded to the nearest integer.
	require.NotNil(t, rec.Popularity)
	assert.Equal(t, 93, *rec.Popularity)

	require.NotNil(t, rec.ImageURL)
	assert.Equal(t, "https://image.example/t/p/original/matrix.jpg", *rec.ImageURL)

	// US takes priority over other regions, and the empty certification
	// entry is skipped in favor of the next one.
	require.NotNil(t, rec.AgeRating)
	assert.Equal(t, media.AgeRatingR, *rec.AgeRating)

	assert.Equal(t, []string{"Village Roadshow Pictures"}, rec.Studios)
	assert.Equal(t, []string{"Action", "Science Fiction"}, rec.Genres)

	require.NotNil(t, rec.ReleaseDate)
	assert.Equal(t, time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC), *rec.ReleaseDate)

	require.NotNil(t, rec.Movie)
	require.NotNil(t, rec.Movie.Duration)
	assert.Equal(t, 136, *rec.Movie.Duration)
}

func TestMovieCertification(t *testing.T) {
	entry := func(country string, certs ...string) tmdb.ReleaseDatesEntry {
		e := tmdb.ReleaseDatesEntry{CountryCode: country}
		for _, c := range certs {
			e.ReleaseDates = append(e.ReleaseDates, struct {
				Certification string `json:"certification"`
			}{Certification: c})
		}
		return e
	}

	r := media.AgeRatingR
	nc17 := media.AgeRatingNC17

	tests := []struct {
		name    string
		entries []tmdb.ReleaseDatesEntry
		want    *media.AgeRating
	}{
		{
			name:    "us preferred over ru",
			entries: []tmdb.ReleaseDatesEntry{entry("RU", "18+"), entry("US", "R")},
			want:    &r,
		},
		{
			name:    "ru fallback when us absent",
			entries: []tmdb.ReleaseDatesEntry{entry("DE", "16"), entry("RU", "18+")},
			want:    &nc17,
		},
		{
			name:    "unmapped certification",
			entries: []tmdb.ReleaseDatesEntry{entry("US", "NR")},
			want:    nil,
		},
		{
			name:    "no known region",
			entries: []tmdb.ReleaseDatesEntry{entry("DE", "16")},
			want:    nil,
		},
		{
			name:    "empty entries",
			entries: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := movieCertification(tt.entries)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestMovieFetcher_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewMovieFetcher(tmdb.New(&config.TMDBConfig{URL: srv.URL, APIToken: "test-token"}))

	_, err := f.Fetch(context.Background(), "The Matrix", nil)
	var upstream *media.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "tmdb", upstream.Provider)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
}
