package fetch

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/altbier/mediatrack/jikan"
	"github.com/altbier/mediatrack/match"
	"github.com/altbier/mediatrack/media"
)

// malRatingMap translates MyAnimeList rating strings to the internal age
// rating.
var malRatingMap = map[string]media.AgeRating{
	"G - All Ages":                   media.AgeRatingG,
	"PG - Children":                  media.AgeRatingPG,
	"PG-13 - Teens 13 or older":      media.AgeRatingPG13,
	"R - 17+ (violence & profanity)": media.AgeRatingR,
	"R+ - Mild Nudity":               media.AgeRatingR,
	"Rx - Hentai":                    media.AgeRatingNC17,
}

// AnimeFetcher normalizes anime metadata from the Jikan API.
type AnimeFetcher struct {
	jikan *jikan.Client
}

// NewAnimeFetcher creates a new anime fetcher.
func NewAnimeFetcher(c *jikan.Client) *AnimeFetcher {
	return &AnimeFetcher{jikan: c}
}

// Fetch searches Jikan for the title and builds a validated anime record.
func (f *AnimeFetcher) Fetch(ctx context.Context, title string, year *int) (*media.Record, error) {
	res, err := f.jikan.Search(ctx, title, year)
	if err != nil {
		return nil, err
	}

	// Both the romaji and the english title count as candidates; either
	// matching selects the same entry.
	var candidates []match.Candidate
	for _, a := range res.Data {
		candidates = append(candidates, match.Candidate{ID: a.MalID, Title: a.Title})
		if a.TitleEnglish != nil {
			candidates = append(candidates, match.Candidate{ID: a.MalID, Title: *a.TitleEnglish})
		}
	}

	best, similarity, ok := match.Best(title, candidates)
	if !ok {
		return nil, &media.NotFoundError{Provider: "jikan", Title: title}
	}
	log.Debug("selected anime candidate", "title", best.Title, "mal_id", best.ID, "similarity", similarity)

	item, err := f.jikan.Anime(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	translated := &title
	if item.TitleEnglish != nil {
		translated = item.TitleEnglish
	}

	var rating *media.AgeRating
	if item.Rating != nil {
		if r, found := malRatingMap[*item.Rating]; found {
			rating = &r
		} else {
			log.Debug("unmapped MAL rating", "rating", *item.Rating)
		}
	}

	var imageURL *string
	if item.Images.JPG.LargeImageURL != "" {
		imageURL = &item.Images.JPG.LargeImageURL
	}

	rec := &media.Record{
		Kind:        media.KindAnime,
		Title:       item.Title,
		Description: item.Synopsis,
		Score:       score(item.Score),
		Popularity:  popularity(item.Popularity),
		ImageURL:    imageURL,
		AgeRating:   rating,
		Studios:     lo.Map(item.Studios, func(s jikan.NamedResource, _ int) string { return s.Name }),
		ReleaseDate: parseDate(item.Aired.From),
		Genres:      lo.Map(item.Genres, func(g jikan.NamedResource, _ int) string { return g.Name }),
		Tags:        lo.Map(item.Themes, func(t jikan.NamedResource, _ int) string { return t.Name }),
		Anime: &media.AnimeDetails{
			TranslatedTitle: translated,
			Episodes:        item.Episodes,
			IsOngoing:       item.Airing,
			EndDate:         parseDate(item.Aired.To),
		},
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
