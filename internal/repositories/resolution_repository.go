package repositories

import (
	"context"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResolutionRepository defines the interface for the deep-link QA log
type ResolutionRepository interface {
	Record(ctx context.Context, event *models.ResolutionEvent) error
	Recent(ctx context.Context, limit int64) ([]models.ResolutionEvent, error)
}

// MongoResolutionRepository implements ResolutionRepository for MongoDB
type MongoResolutionRepository struct {
	collection *mongo.Collection
}

// NewMongoResolutionRepository creates a new MongoResolutionRepository
func NewMongoResolutionRepository(db *mongo.Database) *MongoResolutionRepository {
	return &MongoResolutionRepository{collection: db.Collection("deeplink_resolutions")}
}

// Record inserts a resolution event
func (r *MongoResolutionRepository) Record(ctx context.Context, event *models.ResolutionEvent) error {
	event.ID = primitive.NewObjectID()
	if event.ResolvedAt.IsZero() {
		event.ResolvedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// Recent returns the latest resolution events, newest first
func (r *MongoResolutionRepository) Recent(ctx context.Context, limit int64) ([]models.ResolutionEvent, error) {
	var events []models.ResolutionEvent
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "resolved_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
