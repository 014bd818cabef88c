// Package jikan is a minimal client for the Jikan (MyAnimeList) REST API.
package jikan

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

const providerName = "jikan"

// Client represents a Jikan API client.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a new Jikan client.
func New(cfg *config.JikanConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Anime is the anime resource as returned by search and detail endpoints.
type Anime struct {
	MalID        int     `json:"mal_id"`
	Title        string  `json:"title"`
	TitleEnglish *string `json:"title_english"`
	Synopsis     *string `json:"synopsis"`
	Score        *float64 `json:"score"`
	Popularity   *float64 `json:"popularity"`
	Rating       *string  `json:"rating"`
	Episodes     *int     `json:"episodes"`
	Airing       bool     `json:"airing"`
	Images       struct {
		JPG struct {
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Aired struct {
		From *string `json:"from"`
		To   *string `json:"to"`
	} `json:"aired"`
	Studios []NamedResource `json:"studios"`
	Genres  []NamedResource `json:"genres"`
	Themes  []NamedResource `json:"themes"`
}

// NamedResource is a mal_id/name pair used for studios, genres and themes.
type NamedResource struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// SearchResponse is the paged response of the anime search endpoint.
type SearchResponse struct {
	Data []Anime `json:"data"`
}

type detailResponse struct {
	Data Anime `json:"data"`
}

// Search queries the anime search endpoint. If year is set, results are
// restricted to a one-year start-date window.
func (c *Client) Search(ctx context.Context, title string, year *int) (*SearchResponse, error) {
	u, err := url.Parse(c.baseURL + "/anime")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := u.Query()
	query.Set("q", title)
	query.Set("limit", "5")
	query.Set("unapproved", "true")
	if year != nil {
		query.Set("start_date", fmt.Sprintf("%d-01-01", *year))
		query.Set("end_date", fmt.Sprintf("%d-01-01", *year+1))
	}
	u.RawQuery = query.Encode()

	var result SearchResponse
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Anime retrieves the full anime resource by its MAL id.
func (c *Client) Anime(ctx context.Context, id int) (*Anime, error) {
	var result detailResponse
	if err := c.get(ctx, c.baseURL+"/anime/"+strconv.Itoa(id), &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

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
