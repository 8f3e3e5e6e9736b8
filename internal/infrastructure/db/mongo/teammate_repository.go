package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/datapulse/identity-api/internal/core/domain"
)

const teammateCollection = "teammates"

// MongoTeammateRepository persists internal staff principals. Teammate ids
// are ObjectID hex strings, a different id space from client-user UUIDs.
type MongoTeammateRepository struct {
	coll *mongo.Collection
}

func NewTeammateRepository(db *mongo.Database) *MongoTeammateRepository {
	return &MongoTeammateRepository{coll: db.Collection(teammateCollection)}
}

type mongoTeammate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Name       string             `bson:"name"`
	Role       string             `bson:"role"`
	Active     bool               `bson:"is_active"`
	SecretHash string             `bson:"password_hash"`
	JoinedAt   int64              `bson:"date_joined"`
}

func (m mongoTeammate) toDomain() *domain.Teammate {
	return &domain.Teammate{
		ID:         m.ID.Hex(),
		Email:      m.Email,
		Name:       m.Name,
		Role:       m.Role,
		Active:     m.Active,
		SecretHash: m.SecretHash,
		JoinedAt:   unixToTime(m.JoinedAt),
	}
}

func (r *MongoTeammateRepository) Create(ctx context.Context, t *domain.Teammate) (*domain.Teammate, error) {
	doc := mongoTeammate{
		Email:      t.Email,
		Name:       t.Name,
		Role:       t.Role,
		Active:     t.Active,
		SecretHash: t.SecretHash,
		JoinedAt:   t.JoinedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert teammate: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoTeammateRepository) FindByEmail(ctx context.Context, email string) (*domain.Teammate, error) {
	var m mongoTeammate
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find teammate: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoTeammateRepository) FindByID(ctx context.Context, id string) (*domain.Teammate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A non-ObjectID subject cannot name a teammate.
		return nil, domain.ErrUserNotFound
	}

	var m mongoTeammate
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find teammate: %w", err)
	}
	return m.toDomain(), nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
