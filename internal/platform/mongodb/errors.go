package mongodb

import (
	"errors"

	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// mapError converts a driver error into a store error for entity/operation.
// notFound is the entity-specific sentinel used for mongo.ErrNoDocuments.
func mapError(entity, operation string, notFound, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.NewStoreError(entity, operation, "no matching document", notFound)
	case mongo.IsDuplicateKeyError(err):
		dup := store.ErrDuplicate
		if entity == "user" {
			dup = store.ErrEmailExists
		}
		return store.NewStoreError(entity, operation, "duplicate key", dup)
	default:
		return store.NewStoreError(entity, operation, "document store error", err)
	}
}
