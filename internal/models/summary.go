package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummaryTopics is the fixed set of news categories a summary can be filed
// under. It mirrors the topics exposed by the news API.
var SummaryTopics = []string{"health", "business", "technology", "sports", "entertainment", "general"}

// SavedSummary represents an AI-generated news summary a user chose to keep,
// stored in MongoDB
type SavedSummary struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Topic         string             `json:"topic" bson:"topic" validate:"required,oneof=health business technology sports entertainment general"`
	Summary       string             `json:"summary" bson:"summary" validate:"required"`
	KeyPoints     []string           `json:"keyPoints" bson:"key_points"`
	TotalArticles int                `json:"totalArticles" bson:"total_articles" validate:"min=0"`
	GeneratedAt   time.Time          `json:"generatedAt" bson:"generated_at"`
	SavedAt       time.Time          `json:"savedAt" bson:"saved_at"`
	Title         string             `json:"title" bson:"title"`
	Tags          []string           `json:"tags" bson:"tags"`
	IsFavorite    bool               `json:"isFavorite" bson:"is_favorite"`
}

// CreateSummaryRequest defines the request body for saving a new summary.
// TotalArticles is a pointer so a missing field can be told apart from an
// explicit zero.
type CreateSummaryRequest struct {
	Topic         string   `json:"topic"`
	Summary       string   `json:"summary"`
	KeyPoints     []string `json:"keyPoints"`
	TotalArticles *int     `json:"totalArticles"`
	GeneratedAt   string   `json:"generatedAt"`
	Title         string   `json:"title"`
	Tags          []string `json:"tags"`
}

// MissingField returns the name of the first required field absent from the
// request, or an empty string when all are present.
func (r *CreateSummaryRequest) MissingField() string {
	switch {
	case r.Topic == "":
		return "topic"
	case r.Summary == "":
		return "summary"
	case r.KeyPoints == nil:
		return "keyPoints"
	case r.TotalArticles == nil:
		return "totalArticles"
	case r.GeneratedAt == "":
		return "generatedAt"
	}
	return ""
}

// UpdateSummaryRequest defines the request body for a partial update. Only
// the fields present in the body are applied; nil means "leave untouched".
type UpdateSummaryRequest struct {
	Title      *string  `json:"title,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	IsFavorite *bool    `json:"isFavorite,omitempty"`
}

// ValidTopic reports whether topic is one of the enumerated categories.
func ValidTopic(topic string) bool {
	for _, t := range SummaryTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// DefaultTitle derives the title used when a save request omits one,
// e.g. "technology" -> "Technology News Summary".
func DefaultTitle(topic string) string {
	if topic == "" {
		return ""
	}
	return strings.ToUpper(topic[:1]) + topic[1:] + " News Summary"
}
