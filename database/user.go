package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered user.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string
	PasswordHash string `gorm:"not null"`
}

// CreateUser persists a new user.
func (c *Client) CreateUser(ctx context.Context, user *User) error {
	result := c.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		log.Error("failed to create user", "username", user.Username, "error", result.Error)
		return result.Error
	}
	return nil
}

// GetUserByUsername returns the user with the given username, or (nil,
// nil) when no such user exists.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	result := c.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get user", "username", username, "error", result.Error)
		return nil, result.Error
	}
	return &user, nil
}

// GetUserByID returns the user with the given id, or (nil, nil) when no
// such user exists.
func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	result := c.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get user by ID", "error", result.Error)
		return nil, result.Error
	}
	return &user, nil
}
