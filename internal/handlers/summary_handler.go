package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"newsbrief/internal/models"
	"newsbrief/internal/repositories"
)

// SummaryHandler handles HTTP requests for saved news summaries
type SummaryHandler struct {
	summaryRepository repositories.SummaryRepository
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryRepo repositories.SummaryRepository) *SummaryHandler {
	return &SummaryHandler{summaryRepository: summaryRepo}
}

// RegisterSummaryRoutes registers summary-related routes
func (h *SummaryHandler) RegisterSummaryRoutes(g *echo.Group) {
	g.GET("/summaries", h.ListSummaries)
	g.POST("/summaries", h.CreateSummary)
	g.GET("/summaries/:id", h.GetSummary)
	g.PUT("/summaries/:id", h.UpdateSummary)
	g.DELETE("/summaries/:id", h.DeleteSummary)
}

// ListSummaries returns a page of saved summaries, most recently saved first.
// Failures still carry an empty data array so clients never need a null
// check.
func (h *SummaryHandler) ListSummaries(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10 // Default limit
	}

	filter := repositories.SummaryFilter{
		Topic:        c.QueryParam("topic"),
		FavoriteOnly: c.QueryParam("favorite") == "true",
	}
	skip := int64(page-1) * int64(limit)

	ctx := c.Request().Context()
	summaries, err := h.summaryRepository.List(ctx, filter, skip, int64(limit))
	if err != nil {
		logrus.WithError(err).Error("Error fetching summaries")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to fetch summaries",
			"data":    []models.SavedSummary{},
		})
	}

	total, err := h.summaryRepository.Count(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Error counting summaries")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Failed to fetch summaries",
			"data":    []models.SavedSummary{},
		})
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    summaries,
		"pagination": echo.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// CreateSummary saves a new summary
func (h *SummaryHandler) CreateSummary(c echo.Context) error {
	var req models.CreateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request payload"})
	}

	if field := req.MissingField(); field != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Missing required field: " + field})
	}

	generatedAt, err := time.Parse(time.RFC3339, req.GeneratedAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid generatedAt timestamp"})
	}

	title := req.Title
	if title == "" {
		title = models.DefaultTitle(req.Topic)
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	summary := &models.SavedSummary{
		Topic:         req.Topic,
		Summary:       req.Summary,
		KeyPoints:     req.KeyPoints,
		TotalArticles: *req.TotalArticles,
		GeneratedAt:   generatedAt,
		SavedAt:       time.Now(),
		Title:         title,
		Tags:          tags,
	}

	if err := h.summaryRepository.Create(c.Request().Context(), summary); err != nil {
		logrus.WithError(err).Error("Error saving summary")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to save summary"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    summary,
		"message": "Summary saved successfully!",
	})
}

// GetSummary retrieves a summary by ID
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	summary, err := h.summaryRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrSummaryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Summary not found"})
		}
		logrus.WithError(err).Error("Error fetching summary")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to fetch summary"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": summary})
}

// UpdateSummary applies a partial update to a summary. Only title, tags and
// isFavorite can change; fields absent from the body are left untouched.
func (h *SummaryHandler) UpdateSummary(c echo.Context) error {
	var req models.UpdateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request payload"})
	}

	update := repositories.SummaryUpdate{
		Title:      req.Title,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
	}

	summary, err := h.summaryRepository.Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		if errors.Is(err, repositories.ErrSummaryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Summary not found"})
		}
		logrus.WithError(err).Error("Error updating summary")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to update summary"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    summary,
		"message": "Summary updated successfully!",
	})
}

// DeleteSummary deletes a summary by ID
func (h *SummaryHandler) DeleteSummary(c echo.Context) error {
	err := h.summaryRepository.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrSummaryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Summary not found"})
		}
		logrus.WithError(err).Error("Error deleting summary")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to delete summary"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Summary deleted successfully!",
	})
}
