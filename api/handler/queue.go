package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/altbier/mediatrack/api/auth"
	"github.com/altbier/mediatrack/api/models"
	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/media"
)

type queueAddRequest struct {
	ContentID uint    `json:"content_id" binding:"required"`
	Status    string  `json:"status" binding:"required"`
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
	Favorite  bool    `json:"favorite"`
	Priority  int     `json:"priority"`
}

type queueUpdateRequest struct {
	Status   string  `json:"status" binding:"required"`
	Rating   *int    `json:"rating"`
	Comment  *string `json:"comment"`
	Favorite bool    `json:"favorite"`
	Priority int     `json:"priority"`
}

// AddQueueEntry puts a content row on the authenticated user's queue.
func (h *Handler) AddQueueEntry(c *gin.Context) {
	var req queueAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	status, err := media.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	entry := &database.QueueEntry{
		UserID:    auth.UserID(c),
		ContentID: req.ContentID,
		Status:    status,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Favorite:  req.Favorite,
		Priority:  req.Priority,
	}
	if err := h.db.AddQueueEntry(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": entry.ID})
}

// ListQueue returns the authenticated user's queue, newest first.
func (h *Handler) ListQueue(c *gin.Context) {
	entries, err := h.db.ListQueueEntries(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(entries, func(e database.QueueEntry, _ int) models.QueueEntry {
		return models.FromQueueEntry(&e)
	}))
}

// UpdateQueueEntry updates the consumption state of a queue entry.
func (h *Handler) UpdateQueueEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "id must be an integer"})
		return
	}

	var req queueUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	status, err := media.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	entry := &database.QueueEntry{
		ID:       uint(id),
		UserID:   auth.UserID(c),
		Status:   status,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Favorite: req.Favorite,
		Priority: req.Priority,
	}
	if err := h.db.UpdateQueueEntry(c.Request.Context(), entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "queue entry not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// RemoveQueueEntry deletes a queue entry of the authenticated user.
func (h *Handler) RemoveQueueEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "id must be an integer"})
		return
	}

	if err := h.db.RemoveQueueEntry(c.Request.Context(), auth.UserID(c), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "queue entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "removed"})
}
