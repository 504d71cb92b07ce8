package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsbrief/internal/models"
	"newsbrief/pkg/config"
)

// ErrSummaryNotFound is returned when an id does not resolve to a stored
// summary. A malformed id maps here too, so callers cannot tell the two
// apart.
var ErrSummaryNotFound = errors.New("summary not found")

// SummaryFilter narrows List and Count. An empty filter matches everything.
type SummaryFilter struct {
	Topic        string // empty or "all" means no topic filter
	FavoriteOnly bool
}

// SummaryUpdate carries the mutable subset of a summary. Nil fields are left
// untouched.
type SummaryUpdate struct {
	Title      *string
	Tags       []string
	IsFavorite *bool
}

// SummaryRepository defines the interface for saved summary operations
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.SavedSummary) error
	List(ctx context.Context, filter SummaryFilter, skip, limit int64) ([]models.SavedSummary, error)
	Count(ctx context.Context, filter SummaryFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*models.SavedSummary, error)
	Update(ctx context.Context, id string, update SummaryUpdate) (*models.SavedSummary, error)
	Delete(ctx context.Context, id string) error
}

// MongoSummaryRepository implements SummaryRepository on the saved_summaries
// collection. The database handle is acquired lazily through the connection
// cache on each operation.
type MongoSummaryRepository struct {
	cache     *config.DatabaseCache
	validate  *validator.Validate
	indexOnce sync.Once
}

// NewMongoSummaryRepository creates a new MongoSummaryRepository
func NewMongoSummaryRepository(cache *config.DatabaseCache) *MongoSummaryRepository {
	return &MongoSummaryRepository{
		cache:    cache,
		validate: validator.New(),
	}
}

func (r *MongoSummaryRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.cache.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	coll := db.Collection("saved_summaries")
	r.indexOnce.Do(func() {
		if err := ensureSummaryIndexes(ctx, coll); err != nil {
			logrus.WithError(err).Warn("Failed to ensure saved_summaries indexes")
		}
	})
	return coll, nil
}

func ensureSummaryIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "topic", Value: 1}, {Key: "saved_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_favorite", Value: 1}}},
	})
	return err
}

// Create validates the summary against the schema rules and inserts it.
func (r *MongoSummaryRepository) Create(ctx context.Context, summary *models.SavedSummary) error {
	if err := r.validate.Struct(summary); err != nil {
		return fmt.Errorf("summary validation failed: %w", err)
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	summary.ID = primitive.NewObjectID()
	if summary.SavedAt.IsZero() {
		summary.SavedAt = time.Now()
	}
	_, err = coll.InsertOne(ctx, summary)
	return err
}

// List retrieves summaries matching the filter, most recently saved first.
// The result is never nil, even when nothing matches.
func (r *MongoSummaryRepository) List(ctx context.Context, filter SummaryFilter, skip, limit int64) ([]models.SavedSummary, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "saved_at", Value: -1}})
	cursor, err := coll.Find(ctx, buildSummaryFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.SavedSummary{}
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Count reports how many summaries match the filter, ignoring pagination.
func (r *MongoSummaryRepository) Count(ctx context.Context, filter SummaryFilter) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, buildSummaryFilter(filter))
}

// GetByID retrieves a summary by its hex id.
func (r *MongoSummaryRepository) GetByID(ctx context.Context, id string) (*models.SavedSummary, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSummaryNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var summary models.SavedSummary
	err = coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&summary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// Update applies the present fields of update and returns the resulting
// document. savedAt and the summary content are immutable through this path.
func (r *MongoSummaryRepository) Update(ctx context.Context, id string, update SummaryUpdate) (*models.SavedSummary, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSummaryNotFound
	}

	set := buildSummaryUpdate(update)
	if len(set) == 0 {
		// Nothing to change; behave like a plain fetch.
		return r.GetByID(ctx, id)
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.SavedSummary
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}

	// The three mutable fields carry no schema constraints, so this is a
	// consistency check on the stored document rather than a guard on the
	// write itself; it can only fail if the document was already invalid.
	if err := r.validate.Struct(&updated); err != nil {
		return nil, fmt.Errorf("summary validation failed: %w", err)
	}
	return &updated, nil
}

// Delete removes a summary by its hex id.
func (r *MongoSummaryRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrSummaryNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSummaryNotFound
	}
	return nil
}

func buildSummaryFilter(f SummaryFilter) bson.M {
	query := bson.M{}
	if f.Topic != "" && f.Topic != "all" {
		query["topic"] = f.Topic
	}
	if f.FavoriteOnly {
		query["is_favorite"] = true
	}
	return query
}

func buildSummaryUpdate(u SummaryUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Tags != nil {
		set["tags"] = u.Tags
	}
	if u.IsFavorite != nil {
		set["is_favorite"] = *u.IsFavorite
	}
	return set
}
