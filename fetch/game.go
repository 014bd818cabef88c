package fetch

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/altbier/mediatrack/match"
	"github.com/altbier/mediatrack/media"
	"github.com/altbier/mediatrack/rawg"
	"github.com/altbier/mediatrack/steam"
)

// rawgPlatformMap translates RAWG platform names to the internal platform
// enum. Unmapped names are dropped silently.
var rawgPlatformMap = map[string]media.Platform{
	"PC":              media.PlatformPC,
	"Linux":           media.PlatformLinux,
	"macOS":           media.PlatformMacOS,
	"PSP":             media.PlatformPSP,
	"PlayStation 3":   media.PlatformPS3,
	"PlayStation 4":   media.PlatformPS4,
	"PlayStation 5":   media.PlatformPS5,
	"Xbox 360":        media.PlatformXbox360,
	"Xbox One":        media.PlatformXboxOne,
	"Xbox Series S/X": media.PlatformXboxSeriesX,
	"Nintendo Switch": media.PlatformNintendoSwitch,
	"iOS":             media.PlatformIOS,
	"Android":         media.PlatformAndroid,
	"Web":             media.PlatformWeb,
}

// esrbRatingMap translates ESRB rating names to the internal age rating.
var esrbRatingMap = map[string]media.AgeRating{
	"Everyone":     media.AgeRatingG,
	"Everyone 10+": media.AgeRatingPG,
	"Teen":         media.AgeRatingPG13,
	"Mature":       media.AgeRatingR,
	"Adults Only":  media.AgeRatingNC17,
}

// GameFetcher normalizes game metadata from the RAWG API, enriched with
// the Steam concurrent-players statistic when the game is sold on Steam.
type GameFetcher struct {
	rawg  *rawg.Client
	steam *steam.Client
}

// NewGameFetcher creates a new game fetcher.
func NewGameFetcher(r *rawg.Client, s *steam.Client) *GameFetcher {
	return &GameFetcher{rawg: r, steam: s}
}

// Fetch searches RAWG for the title and builds a validated game record.
func (f *GameFetcher) Fetch(ctx context.Context, title string, year *int) (*media.Record, error) {
	res, err := f.rawg.Search(ctx, title, year)
	if err != nil {
		return nil, err
	}

	candidates := lo.Map(res.Results, func(r rawg.SearchResult, _ int) match.Candidate {
		return match.Candidate{ID: r.ID, Title: r.Name}
	})
	best, similarity, ok := match.Best(title, candidates)
	if !ok {
		return nil, &media.NotFoundError{Provider: "rawg", Title: title}
	}
	log.Debug("selected game candidate", "title", best.Title, "rawg_id", best.ID, "similarity", similarity)

	item, err := f.rawg.Game(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	// Metacritic is on a 0-100 scale, the community rating on 0-5 stars;
	// both end up on 0-10.
	var gameScore *float64
	switch {
	case item.Metacritic != nil:
		gameScore = media.Score(*item.Metacritic)
	case item.Rating != nil:
		gameScore = media.Score(*item.Rating * 2)
	}

	var rating *media.AgeRating
	if item.ESRBRating != nil {
		if r, found := esrbRatingMap[item.ESRBRating.Name]; found {
			rating = &r
		} else {
			log.Debug("unmapped ESRB rating", "rating", item.ESRBRating.Name)
		}
	}

	platforms := lo.FilterMap(item.Platforms, func(p rawg.PlatformEntry, _ int) (media.Platform, bool) {
		mapped, found := rawgPlatformMap[p.Platform.Name]
		return mapped, found
	})

	stores := lo.Map(item.Stores, func(s rawg.StoreEntry, _ int) string { return s.Store.Name })

	tags := lo.FilterMap(item.Tags, func(t rawg.Tag, _ int) (string, bool) {
		return t.Name, t.Language == "eng"
	})

	rec := &media.Record{
		Kind:        media.KindGame,
		Title:       item.Name,
		Description: item.DescriptionRaw,
		Score:       gameScore,
		ImageURL:    item.BackgroundImage,
		AgeRating:   rating,
		Studios:     lo.Map(item.Developers, func(d rawg.NamedResource, _ int) string { return d.Name }),
		ReleaseDate: parseDate(item.Released),
		Genres:      lo.Map(item.Genres, func(g rawg.NamedResource, _ int) string { return g.Name }),
		Tags:        tags,
		Game: &media.GameDetails{
			Platforms: platforms,
			Playtime:  item.Playtime,
			Stores:    stores,
		},
	}

	if lo.Contains(stores, "Steam") {
		rec.Popularity = f.steamOnline(ctx, item.Name)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// steamOnline resolves the 24h peak concurrent players for a game title.
// Every failure is recovered locally: the enrichment is best-effort and
// never fails the overall fetch.
func (f *GameFetcher) steamOnline(ctx context.Context, title string) *int {
	apps, err := f.steam.SearchApps(ctx, title)
	if err != nil {
		log.Warn("steam app search failed", "title", title, "error", err)
		return nil
	}
	if len(apps) == 0 {
		log.Debug("game not found on steam", "title", title)
		return nil
	}

	players, err := f.steam.OnlinePlayers(ctx, apps[0].AppID)
	if err != nil {
		var scrape *media.ScrapeError
		if errors.As(err, &scrape) {
			log.Debug("steamcharts scrape failed", "title", title, "reason", scrape.Reason)
		} else {
			log.Warn("steamcharts request failed", "title", title, "error", err)
		}
		return nil
	}

	log.Debug("steam online players", "title", title, "app", apps[0].Name, "players", players)
	return &players
}
