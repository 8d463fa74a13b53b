package app

import (
	"context"

	"session-service/internal/config"
	"session-service/internal/session"
	"session-service/internal/session/handler"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	store, cleanup, err := setupStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	engine := session.NewEngine(store, cfg.SessionWindow)
	sessionHandler := handler.NewHandler(engine)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	sessionHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, cleanup, nil
}
