package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"newsbrief/internal/handlers"
	"newsbrief/internal/repositories"
	"newsbrief/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// The database cache is handed to the repository layer; no connection is
// opened until the first request needs one.
func SetupRoutes(e *echo.Echo, dbCache *config.DatabaseCache) {
	e.GET("/health", handlers.HealthCheck)

	summaryRepo := repositories.NewMongoSummaryRepository(dbCache)

	api := e.Group("/api")
	summaryHandler := handlers.NewSummaryHandler(summaryRepo)
	summaryHandler.RegisterSummaryRoutes(api)
	logrus.Info("Summary routes configured.")
}
