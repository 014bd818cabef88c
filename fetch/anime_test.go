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
	"github.com/altbier/mediatrack/jikan"
	"github.com/altbier/mediatrack/media"
)

const jikanSearchFixture = `{
	"data": [
		{"mal_id": 1, "title": "Cowboy Bebop", "title_english": "Cowboy Bebop"},
		{"mal_id": 5, "title": "Cowboy Bebop: Tengoku no Tobira", "title_english": "Cowboy Bebop: The Movie"}
	]
}`

const jikanDetailFixture = `{
	"data": {
		"mal_id": 1,
		"title": "Cowboy Bebop",
		"title_english": "Cowboy Bebop",
		"synopsis": "Crime is timeless.",
		"score": 8.75,
		"popularity": 43,
		"rating": "R - 17+ (violence & profanity)",
		"episodes": 26,
		"airing": false,
		"images": {"jpg": {"large_image_url": "https://cdn.example/cb.jpg"}},
		"aired": {"from": "1998-04-03T00:00:00+00:00", "to": "1999-04-24T00:00:00+00:00"},
		"studios": [{"mal_id": 14, "name": "Sunrise"}],
		"genres": [{"mal_id": 1, "name": "Action"}, {"mal_id": 24, "name": "Sci-Fi"}],
		"themes": [{"mal_id": 29, "name": "Space"}]
	}
}`

func TestAnimeFetcher_Fetch(t *testing.T) {
	var detailRequests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/anime":
			assert.Equal(t, "Cowboy Bebop", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			w.Write([]byte(jikanSearchFixture)) //nolint: errcheck
		case "/anime/1":
			detailRequests++
			w.Write([]byte(jikanDetailFixture)) //nolint: errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	f := NewAnimeFetcher(jikan.New(&config.JikanConfig{URL: srv.URL}))
	rec, err := f.Fetch(context.Background(), "Cowboy Bebop", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, detailRequests)

	assert.Equal(t, media.KindAnime, rec.Kind)
	assert.Equal(t, "Cowboy Bebop", rec.Title)
	require.NotNil(t, rec.Score)
	assert.InDelta(t, 8.75, *rec.Score, 0.0001)
	require.NotNil(t, rec.Popularity)
	assert.Equal(t, 43, *rec.Popularity)
	require.NotNil(t, rec.AgeRating)
	assert.Equal(t, media.AgeRatingR, *rec.AgeRating)
	assert.Equal(t, []string{"Sunrise"}, rec.Studios)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, rec.Genres)
	assert.Equal(t, []string{"Space"}, rec.Tags)
	require.NotNil(t, rec.ImageURL)
	assert.Equal(t, "https://cdn.example/cb.jpg", *rec.ImageURL)

	require.NotNil(t, rec.ReleaseDate)
	assert.Equal(t, time.Date(1998, 4, 3, 0, 0, 0, 0, time.UTC), *rec.ReleaseDate)

	require.NotNil(t, rec.Anime)
	require.NotNil(t, rec.Anime.TranslatedTitle)
	assert.Equal(t, "Cowboy Bebop", *rec.Anime.TranslatedTitle)
	require.NotNil(t, rec.Anime.Episodes)
	assert.Equal(t, 26, *rec.Anime.Episodes)
	assert.False(t, rec.Anime.IsOngoing)
	require.NotNil(t, rec.Anime.EndDate)
	assert.Equal(t, time.Date(1999, 4, 24, 0, 0, 0, 0, time.UTC), *rec.Anime.EndDate)
}

func TestAnimeFetcher_YearWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/anime" {
			assert.Equal(t, "1998-01-01", r.URL.Query().Get("start_date"))
			assert.Equal(t, "1999-01-01", r.URL.Query().Get("end_date"))
			w.Write([]byte(jikanSearchFixture)) //nolint: errcheck
			return
		}
		w.Write([]byte(jikanDetailFixture)) //nolint: errcheck
	}))
	t.Cleanup(srv.Close)

	f := NewAnimeFetcher(jikan.New(&config.JikanConfig{URL: srv.URL}))
	year := 1998
	_, err := f.Fetch(context.Background(), "Cowboy Bebop", &year)
	require.NoError(t, err)
}

func TestAnimeFetcher_NoMatchAboveThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jikanSearchFixture)) //nolint: errcheck
	}))
	t.Cleanup(srv.Close)

	f := NewAnimeFetcher(jikan.New(&config.JikanConfig{URL: srv.URL}))
	_, err := f.Fetch(context.Background(), "Neon Genesis Evangelion", nil)

	var notFound *media.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "jikan", notFound.Provider)
}

func TestAnimeFetcher_UpstreamErrorStopsPipeline(t *testing.T) {
	var detailRequests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/anime" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		detailRequests++
	}))
	t.Cleanup(srv.Close)

	f := NewAnimeFetcher(jikan.New(&config.JikanConfig{URL: srv.URL}))
	_, err := f.Fetch(context.Background(), "Cowboy Bebop", nil)

	var upstream *media.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Equal(t, 0, detailRequests)
}
