// Package models defines the JSON response shapes of the API.
package models

import (
	"time"

	"github.com/samber/lo"

	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/media"
)

// Content is the API representation of a content row.
type Content struct {
	ID          uint             `json:"id"`
	Kind        media.Kind       `json:"kind"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Score       *float64         `json:"score,omitempty"`
	Popularity  *int             `json:"popularity,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	AgeRating   *media.AgeRating `json:"age_rating,omitempty"`
	Studios     []string         `json:"studios,omitempty"`
	ReleaseDate *time.Time       `json:"release_date,omitempty"`
	Genres      []string         `json:"genres"`
	Tags        []string         `json:"tags,omitempty"`

	TranslatedTitle *string          `json:"translated_title,omitempty"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	Episodes        *int             `json:"episodes,omitempty"`
	IsOngoing       *bool            `json:"is_ongoing,omitempty"`
	EpisodeDuration *int             `json:"episode_duration,omitempty"`
	Duration        *int             `json:"duration,omitempty"`
	Platforms       []media.Platform `json:"available_platforms,omitempty"`
	Playtime        *int             `json:"playtime,omitempty"`
	Stores          []string         `json:"stores,omitempty"`
}

// QueueEntry is the API representation of a queue entry.
type QueueEntry struct {
	ID       uint         `json:"id"`
	Status   media.Status `json:"status"`
	Rating   *int         `json:"rating,omitempty"`
	Comment  *string      `json:"comment,omitempty"`
	Favorite bool         `json:"favorite"`
	Priority int          `json:"priority"`
	Content  Content      `json:"content"`
}

// FromContent converts a database content row to its API shape.
func FromContent(c *database.Content) Content {
	out := Content{
		ID:          c.ID,
		Kind:        c.Kind,
		Title:       c.Title,
		Description: c.Description,
		Score:       c.Score,
		Popularity:  c.Popularity,
		ImageURL:    c.ImageURL,
		AgeRating:   c.AgeRating,
		Studios:     c.Studios,
		ReleaseDate: c.ReleaseDate,
		Genres:      lo.Map(c.Genres, func(g database.Genre, _ int) string { return g.Name }),
		Tags:        lo.Map(c.Tags, func(t database.Tag, _ int) string { return t.Name }),
	}

	switch c.Kind {
	case media.KindAnime:
		out.TranslatedTitle = c.TranslatedTitle
		out.Episodes = c.Episodes
		out.IsOngoing = &c.IsOngoing
		out.EndDate = c.EndDate
	case media.KindGame:
		out.Platforms = c.Platforms
		out.Playtime = c.Playtime
		out.Stores = c.Stores
	case media.KindMovie:
		out.Duration = c.Duration
	case media.KindSeries:
		out.EpisodeDuration = c.EpisodeDuration
		out.Episodes = c.Episodes
		out.IsOngoing = &c.IsOngoing
	}
	return out
}

// FromQueueEntry converts a database queue entry to its API shape.
func FromQueueEntry(e *database.QueueEntry) QueueEntry {
	return QueueEntry{
		ID:       e.ID,
		Status:   e.Status,
		Rating:   e.Rating,
		Comment:  e.Comment,
		Favorite: e.Favorite,
		Priority: e.Priority,
		Content:  FromContent(&e.Content),
	}
}
