// Package tmdb is a minimal client for The Movie Database API v3.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/media"
)

const providerName = "tmdb"

// Client represents a TMDB API client using bearer-token auth.
type Client struct {
	baseURL   string
	apiToken  string
	posterURL string
	client    *http.Client
}

// New creates a new TMDB client.
func New(cfg *config.TMDBConfig) *Client {
	return &Client{
		baseURL:   cfg.URL,
		apiToken:  cfg.APIToken,
		posterURL: cfg.PosterURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchResult is a single summary entry of the movie or tv search
// endpoints. Movies carry Title, series carry Name.
type SearchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

// SearchResponse is the paged response of the search endpoints.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// NamedResource is an id/name pair used across nested TMDB objects.
type NamedResource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the movie detail resource with release dates appended.
type Movie struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Overview            *string         `json:"overview"`
	VoteAverage         *float64        `json:"vote_average"`
	Popularity          *float64        `json:"popularity"`
	PosterPath          *string         `json:"poster_path"`
	ReleaseDate         *string         `json:"release_date"`
	Runtime             *int            `json:"runtime"`
	ProductionCompanies []NamedResource `json:"production_companies"`
	Genres              []NamedResource `json:"genres"`
	ReleaseDates        struct {
		Results []ReleaseDatesEntry `json:"results"`
	} `json:"release_dates"`
}

// ReleaseDatesEntry groups a country's certifications.
type ReleaseDatesEntry struct {
	CountryCode  string `json:"iso_3166_1"`
	ReleaseDates []struct {
		Certification string `json:"certification"`
	} `json:"release_dates"`
}

// RuntimeList is a list of per-episode runtimes. TMDB serves the field as
// an array in most responses but as a bare number in some; a scalar
// decodes into a one-element list.
type RuntimeList []int

func (r *RuntimeList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]int)(r))
	}
	if string(data) == "null" {
		*r = nil
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RuntimeList{n}
	return nil
}

// Series is the tv detail resource with content ratings appended.
type Series struct {
	ID                  int             `json:"id"`
	Name                string          `json:"name"`
	Overview            *string         `json:"overview"`
	VoteAverage         *float64        `json:"vote_average"`
	Popularity          *float64        `json:"popularity"`
	PosterPath          *string         `json:"poster_path"`
	FirstAirDate        *string         `json:"first_air_date"`
	EpisodeRunTime      RuntimeList     `json:"episode_run_time"`
	NumberOfEpisodes    *int            `json:"number_of_episodes"`
	InProduction        bool            `json:"in_production"`
	ProductionCompanies []NamedResource `json:"production_companies"`
	Genres              []NamedResource `json:"genres"`
	ContentRatings      struct {
		Results []ContentRatingEntry `json:"results"`
	} `json:"content_ratings"`
}

// ContentRatingEntry is a country's tv certification.
type ContentRatingEntry struct {
	CountryCode string `json:"iso_3166_1"`
	Rating      string `json:"rating"`
}

// PosterURL resolves a poster path against the configured image base URL.
func (c *Client) PosterURL(path string) string {
	return c.posterURL + path
}

// SearchMovies queries the movie search endpoint.
func (c *Client) SearchMovies(ctx context.Context, title string, year *int) (*SearchResponse, error) {
	return c.search(ctx, "/search/movie", title, year)
}

// SearchSeries queries the tv search endpoint.
func (c *Client) SearchSeries(ctx context.Context, title string, year *int) (*SearchResponse, error) {
	return c.search(ctx, "/search/tv", title, year)
}

func (c *Client) search(ctx context.Context, path, title string, year *int) (*SearchResponse, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := u.Query()
	query.Set("query", title)
	query.Set("include_adult", "true")
	query.Set("language", "en-US")
	query.Set("page", "1")
	if year != nil {
		query.Set("year", strconv.Itoa(*year))
	}
	u.RawQuery = query.Encode()

	var result SearchResponse
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Movie retrieves the full movie resource including regional release dates.
func (c *Client) Movie(ctx context.Context, id int) (*Movie, error) {
	u := fmt.Sprintf("%s/movie/%d?language=en-US&append_to_response=release_dates", c.baseURL, id)
	var result Movie
	if err := c.get(ctx, u, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Series retrieves the full tv resource including regional content ratings.
func (c *Client) Series(ctx context.Context, id int) (*Series, error) {
	u := fmt.Sprintf("%s/tv/%d?language=en-US&append_to_response=content_ratings", c.baseURL, id)
	var result Series
	if err := c.get(ctx, u, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return &media.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close() //nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return &media.UpstreamError{Provider: providerName, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
