package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/altbier/mediatrack/media"
)

// Content represents one piece of content of any kind. All four kinds
// share this table, discriminated by Kind; the kind-specific columns are
// null for the other kinds. Title is deliberately not unique at the
// storage layer (see catalog.Reconcile).
type Content struct {
	gorm.Model
	Kind        media.Kind `gorm:"not null;index:idx_content_kind_title"`
	Title       string     `gorm:"not null;index:idx_content_kind_title"`
	Description *string
	Score       *float64
	Popularity  *int
	ImageURL    *string
	AgeRating   *media.AgeRating
	Studios     []string `gorm:"serializer:json"`
	ReleaseDate *time.Time

	// Anime
	TranslatedTitle *string
	EndDate         *time.Time
	// Anime and series
	Episodes  *int
	IsOngoing bool
	// Series
	EpisodeDuration *int
	// Movie
	Duration *int
	// Game
	Platforms []media.Platform `gorm:"serializer:json"`
	Playtime  *int
	Stores    []string `gorm:"serializer:json"`

	Genres       []Genre      `gorm:"many2many:content_genres"`
	Tags         []Tag        `gorm:"many2many:content_tags"`
	QueueEntries []QueueEntry `gorm:"constraint:OnDelete:CASCADE;"`
}

// contentSortColumns whitelists the sortable columns for content listing.
var contentSortColumns = map[string]string{
	"popularity":   "popularity",
	"score":        "score",
	"release_date": "release_date",
	"title":        "title",
}

// GetContentByTitle looks up a content row of the given kind by exact,
// case-sensitive title match. Returns (nil, nil) when no row exists.
func (c *Client) GetContentByTitle(ctx context.Context, kind media.Kind, title string) (*Content, error) {
	var content Content
	result := c.db.WithContext(ctx).
		Preload("Genres").
		Preload("Tags").
		Where("kind = ? AND title = ?", kind, title).
		First(&content)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get content by title", "error", result.Error)
		return nil, result.Error
	}
	return &content, nil
}

// GetContentByID retrieves a content row of the given kind by id. Returns
// (nil, nil) when no row exists.
func (c *Client) GetContentByID(ctx context.Context, kind media.Kind, id uint) (*Content, error) {
	var content Content
	result := c.db.WithContext(ctx).
		Preload("Genres").
		Preload("Tags").
		Where("kind = ?", kind).
		First(&content, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get content by ID", "error", result.Error)
		return nil, result.Error
	}
	return &content, nil
}

// CreateContent persists a new content row together with its genre and
// tag associations in one transaction. Associated genres/tags must carry
// their ids; gorm only inserts the join rows for them.
func (c *Client) CreateContent(ctx context.Context, content *Content) error {
	result := c.db.WithContext(ctx).Create(content)
	if result.Error != nil {
		log.Error("failed to create content", "title", content.Title, "error", result.Error)
		return result.Error
	}
	return nil
}

// ListContent returns a page of content rows of the given kind, sorted by
// one of the whitelisted columns.
func (c *Client) ListContent(ctx context.Context, kind media.Kind, page, pageSize int, sortBy, order string) ([]Content, error) {
	column, ok := contentSortColumns[sortBy]
	if !ok {
		column = "popularity"
	}
	if order != "asc" {
		order = "desc"
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var contents []Content
	result := c.db.WithContext(ctx).
		Preload("Genres").
		Preload("Tags").
		Where("kind = ?", kind).
		Order(column + " " + order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contents)
	if result.Error != nil {
		log.Error("failed to list content", "kind", kind, "error", result.Error)
		return nil, result.Error
	}
	return contents, nil
}

// DeleteContent removes a content row, its association links and its queue
// entries in one transaction.
func (c *Client) DeleteContent(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var content Content
		if err := tx.First(&content, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&content).Association("Genres").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&content).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&QueueEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&content).Error
	})
}
