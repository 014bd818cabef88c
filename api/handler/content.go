package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/altbier/mediatrack/api/models"
	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/media"
)

// AddContent fetches a title from the kind's metadata provider and
// reconciles it against the catalog.
func (h *Handler) AddContent(c *gin.Context) {
	kind, err := media.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "title is required"})
		return
	}

	var year *int
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "year must be an integer"})
			return
		}
		year = &parsed
	}

	content, created, err := h.engine.Add(c.Request.Context(), kind, title, year)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"msg": "already in database", "content": models.FromContent(content)})
		return
	}
	c.JSON(http.StatusCreated, models.FromContent(content))
}

// ListContent returns a sorted page of catalog entries of one kind.
func (h *Handler) ListContent(c *gin.Context) {
	kind, err := media.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	sortBy := c.DefaultQuery("sort", "popularity")
	order := c.DefaultQuery("sort_order", "desc")

	contents, err := h.db.ListContent(c.Request.Context(), kind, page, pageSize, sortBy, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(contents, func(content database.Content, _ int) models.Content {
		return models.FromContent(&content)
	}))
}

// GetContent returns one catalog entry by kind and id.
func (h *Handler) GetContent(c *gin.Context) {
	kind, err := media.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "id must be an integer"})
		return
	}

	content, err := h.db.GetContentByID(c.Request.Context(), kind, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "content not found"})
		return
	}
	c.JSON(http.StatusOK, models.FromContent(content))
}

// DeleteContent removes a catalog entry and its queue references.
func (h *Handler) DeleteContent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "id must be an integer"})
		return
	}

	if err := h.db.DeleteContent(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted successfully"})
}
