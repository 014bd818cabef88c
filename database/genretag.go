package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// Genre is a shared, name-deduplicated genre row all content kinds
// associate with.
type Genre struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// Tag is a shared, name-deduplicated tag row.
type Tag struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// FindOrCreateGenre returns the genre row with the given name, creating it
// if absent. The lookup is an exact, case-sensitive name match. The
// read-then-write is not atomic; the unique index on name turns a
// concurrent duplicate insert into an error instead of a duplicate row.
func (c *Client) FindOrCreateGenre(ctx context.Context, name string) (*Genre, error) {
	var genre Genre
	result := c.db.WithContext(ctx).Where(Genre{Name: name}).FirstOrCreate(&genre)
	if result.Error != nil {
		log.Error("failed to find or create genre", "name", name, "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		log.Info("genre added", "id", genre.ID, "name", genre.Name)
	}
	return &genre, nil
}

// FindOrCreateTag returns the tag row with the given name, creating it if
// absent.
func (c *Client) FindOrCreateTag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	result := c.db.WithContext(ctx).Where(Tag{Name: name}).FirstOrCreate(&tag)
	if result.Error != nil {
		log.Error("failed to find or create tag", "name", name, "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		log.Info("tag added", "id", tag.ID, "name", tag.Name)
	}
	return &tag, nil
}

// CountGenresByName returns how many genre rows share the given name.
func (c *Client) CountGenresByName(ctx context.Context, name string) (int64, error) {
	var n int64
	result := c.db.WithContext(ctx).Model(&Genre{}).Where("name = ?", name).Count(&n)
	return n, result.Error
}
