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

// MongoTaskStore implements the store.TaskStore interface
// using a MongoDB collection as the storage backend.
type MongoTaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// NewMongoTaskStore creates a task store backed by the tasks collection of db.
func NewMongoTaskStore(db *mongo.Database, logger *slog.Logger) *MongoTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoTaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

// timestamp returns the current time at the precision BSON dates keep.
func (s *MongoTaskStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List implements store.TaskStore.List
func (s *MongoTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, s.fail("list", err)
	}

	var docs []domain.Task
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, s.fail("list", err)
	}

	tasks := make([]*domain.Task, len(docs))
	for i := range docs {
		tasks[i] = &docs[i]
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *MongoTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.NewStoreError("task", "get", "malformed id", store.ErrTaskNotFound)
	}

	var task domain.Task
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&task); err != nil {
		return nil, s.fail("get", err)
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = s.timestamp()
	task.UpdatedAt = nil

	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		task.ID = primitive.NilObjectID
		return s.fail("create", err)
	}
	return nil
}

// Update implements store.TaskStore.Update
func (s *MongoTaskStore) Update(
	ctx context.Context,
	id string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.NewStoreError("task", "update", "malformed id", store.ErrTaskNotFound)
	}

	set := bson.D{}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *update.Status})
	}
	set = append(set, bson.E{Key: "updated_at", Value: s.timestamp()})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task domain.Task
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(&task)
	if err != nil {
		return nil, s.fail("update", err)
	}
	return &task, nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.NewStoreError("task", "delete", "malformed id", store.ErrTaskNotFound)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return s.fail("delete", err)
	}
	if res.DeletedCount == 0 {
		return store.NewStoreError("task", "delete", "no matching document", store.ErrTaskNotFound)
	}
	return nil
}

// CountByStatus implements store.TaskStore.CountByStatus
func (s *MongoTaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, s.fail("count", err)
	}
	return n, nil
}

// Count implements store.TaskStore.Count
func (s *MongoTaskStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, s.fail("count", err)
	}
	return n, nil
}

// InsertMany implements store.TaskStore.InsertMany
func (s *MongoTaskStore) InsertMany(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	docs := make([]interface{}, len(tasks))
	for i, task := range tasks {
		if task.ID.IsZero() {
			task.ID = primitive.NewObjectID()
		}
		if task.CreatedAt.IsZero() {
			task.CreatedAt = s.timestamp()
		}
		docs[i] = task
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return s.fail("insert_many", err)
	}
	return nil
}

func (s *MongoTaskStore) fail(operation string, err error) error {
	mapped := mapError("task", operation, store.ErrTaskNotFound, err)
	if !store.IsNotFoundError(mapped) {
		s.logger.Error("task store operation failed",
			"operation", operation,
			"error", redact.Error(err))
	}
	return mapped
}
