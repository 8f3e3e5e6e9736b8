package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// AuditRepository implements ports.AuditRepository using MongoDB.
// The auth_events collection is append-only.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert persists one authentication audit event.
func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"subject":     event.Subject,
		"action":      event.Action,
		"success":     event.Success,
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Kind != "" {
		doc["kind"] = event.Kind
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}

	_, err := r.db.Collection("auth_events").InsertOne(ctx, doc)
	return err
}
