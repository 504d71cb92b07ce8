package main

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"newsbrief/internal/router"
	"newsbrief/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.MongoURI == "" {
		logrus.Fatal("MONGODB_URI environment variable not set")
	}

	// The connection itself is established lazily on the first request.
	dbCache := config.NewDatabaseCache(cfg.MongoURI, cfg.MongoDBName)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, dbCache)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
