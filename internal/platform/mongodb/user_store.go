package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore implements the store.UserStore interface
// using a MongoDB collection as the storage backend.
type MongoUserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// Ensure MongoUserStore implements store.UserStore interface
var _ store.UserStore = (*MongoUserStore)(nil)

// NewMongoUserStore creates a user store backed by the users collection of db.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoUserStore{
		coll:   db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "user_store")),
		now:    time.Now,
	}
}

// EnsureIndexes creates the unique index on email used for lookups.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return s.fail("ensure_indexes", err)
	}
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, s.fail("get_by_email", err)
	}
	return &user, nil
}

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		user.ID = primitive.NilObjectID
		return s.fail("create", err)
	}
	return nil
}

// Count implements store.UserStore.Count
func (s *MongoUserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, s.fail("count", err)
	}
	return n, nil
}

func (s *MongoUserStore) fail(operation string, err error) error {
	mapped := mapError("user", operation, store.ErrUserNotFound, err)
	if !store.IsNotFoundError(mapped) && !store.IsDuplicateError(mapped) {
		s.logger.Error("user store operation failed",
			"operation", operation,
			"error", redact.Error(err))
	}
	return mapped
}
