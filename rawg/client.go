// Package rawg is a minimal client for the RAWG video games database API.
package rawg

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

const providerName = "rawg"

// Client represents a RAWG API client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a new RAWG client.
func New(cfg *config.RAWGConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchResult is a single summary entry of the game search endpoint.
type SearchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchResponse is the paged response of the game search endpoint.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Game is the full game resource of the detail endpoint.
type Game struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	DescriptionRaw *string  `json:"description_raw"`
	Metacritic     *float64 `json:"metacritic"` // 0-100
	Rating         *float64 `json:"rating"`     // 0.0-5.0
	BackgroundImage *string `json:"background_image"`
	Released        *string `json:"released"`
	Playtime        *int    `json:"playtime"`
	ESRBRating      *struct {
		Name string `json:"name"`
	} `json:"esrb_rating"`
	Developers []NamedResource `json:"developers"`
	Genres     []NamedResource `json:"genres"`
	Platforms  []PlatformEntry `json:"platforms"`
	Stores     []StoreEntry    `json:"stores"`
	Tags       []Tag           `json:"tags"`
}

// PlatformEntry wraps the nested platform object of the detail payload.
type PlatformEntry struct {
	Platform NamedResource `json:"platform"`
}

// StoreEntry wraps the nested store object of the detail payload.
type StoreEntry struct {
	Store NamedResource `json:"store"`
}

// NamedResource is an id/name pair used across nested RAWG objects.
type NamedResource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tag is a community tag with its language.
type Tag struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Search queries the game search endpoint. If year is set, results are
// restricted to a one-year release-date window.
func (c *Client) Search(ctx context.Context, title string, year *int) (*SearchResponse, error) {
	u, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := u.Query()
	query.Set("key", c.apiKey)
	query.Set("page_size", "5")
	query.Set("search", title)
	if year != nil {
		query.Set("dates", fmt.Sprintf("%d-01-01,%d-01-01", *year, *year+1))
	}
	u.RawQuery = query.Encode()

	var result SearchResponse
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Game retrieves the full game resource by its RAWG id.
func (c *Client) Game(ctx context.Context, id int) (*Game, error) {
	u, err := url.Parse(c.baseURL + "/games/" + strconv.Itoa(id))
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	query := u.Query()
	query.Set("key", c.apiKey)
	u.RawQuery = query.Encode()

	var result Game
	if err := c.get(ctx, u.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
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
