// Package http exposes a small operational surface next to the gateway
// connection: liveness and a read-only view of active sessions.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/app"
	"github.com/clockhaven/townsquare/internal/config"
)

func SetupRouter(cfg *config.Config, store *app.SessionStore) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := r.Group("/api")
	api.GET("/sessions", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Snapshot())
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
