// Package api exposes the HTTP interface of the server: a thin gin layer
// over the catalog engine and the database.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/altbier/mediatrack/api/auth"
	"github.com/altbier/mediatrack/api/handler"
	"github.com/altbier/mediatrack/catalog"
	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/database"
)

// Server is the HTTP server of the application.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	httpSrv   *http.Server
	tokens    *auth.TokenService
	handler   *handler.Handler
}

// New creates a new server.
func New(cfg *config.Config, db *database.Client, engine *catalog.Engine) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	gin.SetMode(gin.ReleaseMode)
	tokens := auth.NewTokenService(cfg.Auth)

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		tokens:    tokens,
		handler:   handler.New(db, engine, tokens),
	}
	s.ginEngine.Use(gin.Recovery())
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	h := s.handler

	s.ginEngine.POST("/auth/register", h.Register)
	s.ginEngine.POST("/auth/login", h.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(s.tokens.RequireAuth())

	content := protected.Group("/content")
	content.GET("/search/:kind", h.ListContent)
	content.GET("/search/:kind/:id", h.GetContent)
	content.GET("/:kind", h.AddContent)
	content.DELETE("/:id", h.DeleteContent)

	queue := protected.Group("/queue")
	queue.POST("", h.AddQueueEntry)
	queue.GET("", h.ListQueue)
	queue.PATCH("/:id", h.UpdateQueueEntry)
	queue.DELETE("/:id", h.RemoveQueueEntry)
}

// Run starts the server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "listen", s.cfg.Listen)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
