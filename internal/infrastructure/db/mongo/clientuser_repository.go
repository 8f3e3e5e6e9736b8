package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/datapulse/identity-api/internal/core/domain"
)

const clientUserCollection = "client_users"

// MongoClientUserRepository persists external client principals. The _id is
// the UUID string generated at registration time.
type MongoClientUserRepository struct {
	coll *mongo.Collection
}

func NewClientUserRepository(db *mongo.Database) *MongoClientUserRepository {
	return &MongoClientUserRepository{coll: db.Collection(clientUserCollection)}
}

type mongoClientUser struct {
	ID                 string `bson:"_id"`
	Email              string `bson:"email"`
	FirstName          string `bson:"first_name"`
	LastName           string `bson:"last_name"`
	Phone              string `bson:"phone,omitempty"`
	Status             string `bson:"status"`
	Type               string `bson:"type"`
	SecretHash         string `bson:"password_hash,omitempty"`
	EmailNotifications bool   `bson:"email_notifications"`
	JoinedAt           int64  `bson:"date_joined"`
	LastLoginAt        int64  `bson:"last_login,omitempty"`
}

func (m mongoClientUser) toDomain() *domain.ClientUser {
	u := &domain.ClientUser{
		ID:                 m.ID,
		Email:              m.Email,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Phone:              m.Phone,
		Status:             m.Status,
		Type:               m.Type,
		SecretHash:         m.SecretHash,
		EmailNotifications: m.EmailNotifications,
		JoinedAt:           unixToTime(m.JoinedAt),
	}
	if m.LastLoginAt != 0 {
		t := unixToTime(m.LastLoginAt)
		u.LastLoginAt = &t
	}
	return u
}

func fromDomain(u *domain.ClientUser) mongoClientUser {
	m := mongoClientUser{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		Status:             u.Status,
		Type:               u.Type,
		SecretHash:         u.SecretHash,
		EmailNotifications: u.EmailNotifications,
		JoinedAt:           u.JoinedAt.Unix(),
	}
	if u.LastLoginAt != nil {
		m.LastLoginAt = u.LastLoginAt.Unix()
	}
	return m
}

func (r *MongoClientUserRepository) Create(ctx context.Context, u *domain.ClientUser) (*domain.ClientUser, error) {
	if _, err := r.coll.InsertOne(ctx, fromDomain(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert client user: %w", err)
	}
	created := *u
	return &created, nil
}

func (r *MongoClientUserRepository) FindByEmail(ctx context.Context, email string) (*domain.ClientUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoClientUserRepository) FindByID(ctx context.Context, id string) (*domain.ClientUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoClientUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.ClientUser, error) {
	var m mongoClientUser
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find client user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *MongoClientUserRepository) ListByStatus(ctx context.Context, status string) ([]domain.ClientUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_joined", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("list client users: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ClientUser
	for cur.Next(ctx) {
		var m mongoClientUser
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode client user: %w", err)
		}
		out = append(out, *m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list client users: %w", err)
	}
	return out, nil
}

func (r *MongoClientUserRepository) UpdateProfile(ctx context.Context, u *domain.ClientUser) error {
	update := bson.M{"$set": bson.M{
		"first_name":          u.FirstName,
		"last_name":           u.LastName,
		"phone":               u.Phone,
		"email_notifications": u.EmailNotifications,
	}}
	return r.updateOne(ctx, u.ID, update, "update client user profile")
}

func (r *MongoClientUserRepository) UpdateSecretHash(ctx context.Context, id, secretHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password_hash": secretHash}}, "update client user secret")
}

func (r *MongoClientUserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"status": status}}, "update client user status")
}

func (r *MongoClientUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_login": at.Unix()}}, "update client user last_login")
}

func (r *MongoClientUserRepository) updateOne(ctx context.Context, id string, update bson.M, op string) error {
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
