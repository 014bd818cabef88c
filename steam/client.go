// Package steam looks up games in the Steam app catalog and scrapes the
// peak concurrent-players statistic from steamcharts.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/media"
)

const providerName = "steam"

// Client represents a client for the Steam community app search and the
// steamcharts statistics pages.
type Client struct {
	communityURL string
	chartsURL    string
	client       *http.Client
}

// New creates a new Steam client.
func New(cfg *config.SteamConfig) *Client {
	return &Client{
		communityURL: cfg.CommunityURL,
		chartsURL:    cfg.ChartsURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// App is a single app search result.
type App struct {
	AppID string `json:"appid"`
	Name  string `json:"name"`
}

// SearchApps searches the Steam app catalog by title.
func (c *Client) SearchApps(ctx context.Context, title string) ([]App, error) {
	u := c.communityURL + "/actions/SearchApps/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &media.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close() //nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &media.UpstreamError{Provider: providerName, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apps []App
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return apps, nil
}

// OnlinePlayers scrapes the 24h peak concurrent-players count for an app
// from its steamcharts page. A missing element or non-numeric value yields
// a *media.ScrapeError.
func (c *Client) OnlinePlayers(ctx context.Context, appID string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chartsURL+"/app/"+appID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &media.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close() //nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return 0, &media.UpstreamError{Provider: providerName, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, &media.ScrapeError{Reason: fmt.Sprintf("parse document: %v", err)}
	}

	// The second .app-stat inside #app-heading holds the 24h peak.
	stat := doc.Find("#app-heading").Find("div.app-stat").Eq(1).Find("span").First()
	if stat.Length() == 0 {
		return 0, &media.ScrapeError{Reason: "app-stat element not found"}
	}

	raw := strings.ReplaceAll(strings.TrimSpace(stat.Text()), ",", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &media.ScrapeError{Reason: fmt.Sprintf("non-numeric player count %q", raw)}
	}
	return n, nil
}
