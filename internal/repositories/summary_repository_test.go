package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"newsbrief/internal/models"
)

func TestBuildSummaryFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter SummaryFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: SummaryFilter{},
			want:   bson.M{},
		},
		{
			name:   "all means no topic filter",
			filter: SummaryFilter{Topic: "all"},
			want:   bson.M{},
		},
		{
			name:   "topic filter",
			filter: SummaryFilter{Topic: "sports"},
			want:   bson.M{"topic": "sports"},
		},
		{
			name:   "favorite filter",
			filter: SummaryFilter{FavoriteOnly: true},
			want:   bson.M{"is_favorite": true},
		},
		{
			name:   "combined",
			filter: SummaryFilter{Topic: "health", FavoriteOnly: true},
			want:   bson.M{"topic": "health", "is_favorite": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSummaryFilter(tt.filter))
		})
	}
}

func TestBuildSummaryUpdate(t *testing.T) {
	title := "My Summary"
	favorite := true

	assert.Empty(t, buildSummaryUpdate(SummaryUpdate{}))

	got := buildSummaryUpdate(SummaryUpdate{Title: &title})
	assert.Equal(t, bson.M{"title": "My Summary"}, got)

	got = buildSummaryUpdate(SummaryUpdate{Tags: []string{}})
	assert.Equal(t, bson.M{"tags": []string{}}, got)

	got = buildSummaryUpdate(SummaryUpdate{Title: &title, Tags: []string{"ai"}, IsFavorite: &favorite})
	assert.Equal(t, bson.M{"title": "My Summary", "tags": []string{"ai"}, "is_favorite": true}, got)

	// savedAt and content fields can never appear in an update document.
	for key := range got {
		assert.NotEqual(t, "saved_at", key)
		assert.NotEqual(t, "summary", key)
	}
}

func TestCreateRejectsSchemaViolations(t *testing.T) {
	// Schema validation runs before any connection is acquired, so a
	// repository without a reachable database is enough here.
	repo := NewMongoSummaryRepository(nil)
	ctx := context.Background()

	base := models.SavedSummary{
		Topic:         "technology",
		Summary:       "Chips got faster.",
		KeyPoints:     []string{"a"},
		TotalArticles: 5,
		GeneratedAt:   time.Now(),
		SavedAt:       time.Now(),
	}

	invalid := base
	invalid.Topic = "finance"
	err := repo.Create(ctx, &invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	invalid = base
	invalid.Topic = "Technology" // enum is lowercase
	err = repo.Create(ctx, &invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	invalid = base
	invalid.Summary = ""
	err = repo.Create(ctx, &invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestMalformedIDSurfacesAsNotFound(t *testing.T) {
	// A malformed hex id is rejected before any connection is attempted, so a
	// repository without a reachable database is enough here.
	repo := NewMongoSummaryRepository(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-a-hex-id")
	require.ErrorIs(t, err, ErrSummaryNotFound)

	_, err = repo.Update(ctx, "not-a-hex-id", SummaryUpdate{})
	require.ErrorIs(t, err, ErrSummaryNotFound)

	err = repo.Delete(ctx, "not-a-hex-id")
	require.ErrorIs(t, err, ErrSummaryNotFound)
}
