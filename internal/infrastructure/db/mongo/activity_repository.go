package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

const activityCollection = "auth_events"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	db *mongo.Database
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert persists an activity event to the auth_events audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	doc := bson.M{
		"type":         string(event.Type),
		"user_id":      event.UserID,
		"actor_id":     event.ActorID,
		"email":        event.Email,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if len(event.Metadata) > 0 {
		meta := bson.M{}
		for k, v := range event.Metadata {
			meta[k] = v
		}
		doc["metadata"] = meta
	}

	_, err := r.db.Collection(activityCollection).InsertOne(ctx, doc)
	return err
}
