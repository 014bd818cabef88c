// Package handler contains the gin request handlers. Handlers only
// marshal parameters and translate pipeline errors to HTTP statuses.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altbier/mediatrack/api/auth"
	"github.com/altbier/mediatrack/catalog"
	"github.com/altbier/mediatrack/database"
	"github.com/altbier/mediatrack/media"
)

// Handler bundles the dependencies of all request handlers.
type Handler struct {
	db     *database.Client
	engine *catalog.Engine
	tokens *auth.TokenService
}

// New creates a new handler.
func New(db *database.Client, engine *catalog.Engine, tokens *auth.TokenService) *Handler {
	return &Handler{db: db, engine: engine, tokens: tokens}
}

// respondPipelineError maps the media error taxonomy to HTTP statuses.
func respondPipelineError(c *gin.Context, err error) {
	var notFound *media.NotFoundError
	var upstream *media.UpstreamError
	var validation *media.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": notFound.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"msg": "metadata provider unavailable"})
	case errors.As(err, &validation):
		c.JSON(http.StatusInternalServerError, gin.H{"msg": validation.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}
