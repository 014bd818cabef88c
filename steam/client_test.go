package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/media"
)

const chartsPage = `<html><body>
<div id="app-heading">
	<h1>Dota 2</h1>
	<div class="app-stat"><span class="num">412,301</span><br>Playing now</div>
	<div class="app-stat"><span class="num">728,275</span><br>24-hour peak</div>
	<div class="app-stat"><span class="num">1,295,114</span><br>all-time peak</div>
</div>
</body></html>`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&config.SteamConfig{CommunityURL: srv.URL, ChartsURL: srv.URL})
}

func TestSearchApps(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/actions/SearchApps/Dota 2", r.URL.Path)
		w.Write([]byte(`[{"appid": "570", "name": "Dota 2"}]`)) //nolint: errcheck
	})

	apps, err := c.SearchApps(context.Background(), "Dota 2")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "570", apps[0].AppID)
	assert.Equal(t, "Dota 2", apps[0].Name)
}

func TestSearchApps_Empty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`)) //nolint: errcheck
	})

	apps, err := c.SearchApps(context.Background(), "No Such Game")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestSearchApps_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.SearchApps(context.Background(), "Dota 2")
	var upstream *media.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "steam", upstream.Provider)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
}

func TestOnlinePlayers(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/app/570", r.URL.Path)
		w.Write([]byte(chartsPage)) //nolint: errcheck
	})

	players, err := c.OnlinePlayers(context.Background(), "570")
	require.NoError(t, err)
	// The 24h peak, with the thousands separator stripped.
	assert.Equal(t, 728275, players)
}

func TestOnlinePlayers_ScrapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing element", body: `<html><body><p>maintenance</p></body></html>`},
		{name: "non-numeric value", body: `<html><body><div id="app-heading">
			<div class="app-stat"><span>-</span></div>
			<div class="app-stat"><span>n/a</span></div>
		</div></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body)) //nolint: errcheck
			})

			_, err := c.OnlinePlayers(context.Background(), "570")
			var scrape *media.ScrapeError
			require.ErrorAs(t, err, &scrape)
		})
	}
}

func TestOnlinePlayers_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.OnlinePlayers(context.Background(), "570")
	var upstream *media.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.Status)
}
