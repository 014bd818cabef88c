package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/altbier/mediatrack/media"
)

// QueueEntry links a user to a content row with their personal consumption
// state. One entry per (user, content) pair.
type QueueEntry struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID    uint         `gorm:"not null;uniqueIndex:idx_queue_user_content"`
	ContentID uint         `gorm:"not null;uniqueIndex:idx_queue_user_content"`
	Status    media.Status `gorm:"not null"`
	Rating    *int         // 0-10
	Comment   *string
	Favorite  bool
	Priority  int // 0-3

	Content Content
}

// validate checks the entry's range constraints.
func (q *QueueEntry) validate() error {
	if q.Rating != nil && (*q.Rating < 0 || *q.Rating > 10) {
		return fmt.Errorf("rating %d outside [0, 10]", *q.Rating)
	}
	if q.Priority < 0 || q.Priority > 3 {
		return fmt.Errorf("priority %d outside [0, 3]", q.Priority)
	}
	if _, err := media.ParseStatus(string(q.Status)); err != nil {
		return err
	}
	return nil
}

// AddQueueEntry persists a new queue entry for a user.
func (c *Client) AddQueueEntry(ctx context.Context, entry *QueueEntry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	result := c.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		log.Error("failed to create queue entry", "user", entry.UserID, "content", entry.ContentID, "error", result.Error)
		return result.Error
	}
	return nil
}

// GetQueueEntry returns a user's queue entry by id, or (nil, nil) when no
// such entry exists for that user.
func (c *Client) GetQueueEntry(ctx context.Context, userID, id uint) (*QueueEntry, error) {
	var entry QueueEntry
	result := c.db.WithContext(ctx).
		Preload("Content").
		Preload("Content.Genres").
		Preload("Content.Tags").
		Where("user_id = ?", userID).
		First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get queue entry", "error", result.Error)
		return nil, result.Error
	}
	return &entry, nil
}

// ListQueueEntries returns all queue entries of a user, newest first.
func (c *Client) ListQueueEntries(ctx context.Context, userID uint) ([]QueueEntry, error) {
	var entries []QueueEntry
	result := c.db.WithContext(ctx).
		Preload("Content").
		Preload("Content.Genres").
		Preload("Content.Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries)
	if result.Error != nil {
		log.Error("failed to list queue entries", "user", userID, "error", result.Error)
		return nil, result.Error
	}
	return entries, nil
}

// UpdateQueueEntry applies the mutable fields of the given entry.
func (c *Client) UpdateQueueEntry(ctx context.Context, entry *QueueEntry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	result := c.db.WithContext(ctx).Model(&QueueEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Select("Status", "Rating", "Comment", "Favorite", "Priority").
		Updates(entry)
	if result.Error != nil {
		log.Error("failed to update queue entry", "id", entry.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveQueueEntry deletes a user's queue entry.
func (c *Client) RemoveQueueEntry(ctx context.Context, userID, id uint) error {
	result := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&QueueEntry{})
	if result.Error != nil {
		log.Error("failed to remove queue entry", "id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
