package catalog

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/media"
)

// Reconcile checks whether an equivalent content row already exists for
// the record's kind and title. If so, the existing row is returned with
// created=false and nothing is written. Otherwise genres and tags are
// resolved (find-or-create, sequentially) and the content row is persisted
// with its associations in one transaction.
//
// The title lookup and the insert are not atomic and Content.Title carries
// no unique constraint: two concurrent reconciliations of the same new
// title can both insert. Under the single-writer-per-request model this is
// an accepted race, not a supported mode of operation.
func (e *Engine) Reconcile(ctx context.Context, rec *media.Record) (*database.Content, bool, error) {
	if err := rec.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := e.db.GetContentByTitle(ctx, rec.Kind, rec.Title)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		log.Debug("content already in catalog", "kind", rec.Kind, "title", rec.Title, "id", existing.ID)
		return existing, false, nil
	}

	content := contentFromRecord(rec)

	for _, name := range rec.Genres {
		genre, err := e.db.FindOrCreateGenre(ctx, name)
		if err != nil {
			return nil, false, err
		}
		content.Genres = append(content.Genres, *genre)
	}
	for _, name := range rec.Tags {
		tag, err := e.db.FindOrCreateTag(ctx, name)
		if err != nil {
			return nil, false, err
		}
		content.Tags = append(content.Tags, *tag)
	}

	if err := e.db.CreateContent(ctx, content); err != nil {
		return nil, false, err
	}
	log.Info("content added", "kind", rec.Kind, "title", rec.Title, "id", content.ID)
	return content, true, nil
}

// contentFromRecord maps a validated record onto a content row. Genre and
// tag associations are resolved separately.
func contentFromRecord(rec *media.Record) *database.Content {
	content := &database.Content{
		Kind:        rec.Kind,
		Title:       rec.Title,
		Description: rec.Description,
		Score:       rec.Score,
		Popularity:  rec.Popularity,
		ImageURL:    rec.ImageURL,
		AgeRating:   rec.AgeRating,
		Studios:     rec.Studios,
		ReleaseDate: rec.ReleaseDate,
	}

	switch rec.Kind {
	case media.KindAnime:
		content.TranslatedTitle = rec.Anime.TranslatedTitle
		content.Episodes = rec.Anime.Episodes
		content.IsOngoing = rec.Anime.IsOngoing
		content.EndDate = rec.Anime.EndDate
	case media.KindGame:
		content.Platforms = rec.Game.Platforms
		content.Playtime = rec.Game.Playtime
		content.Stores = rec.Game.Stores
	case media.KindMovie:
		content.Duration = rec.Movie.Duration
	case media.KindSeries:
		content.EpisodeDuration = rec.Series.EpisodeDuration
		content.Episodes = rec.Series.Episodes
		content.IsOngoing = rec.Series.IsOngoing
	}
	return content
}
