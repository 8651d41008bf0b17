// Package mongodb provides MongoDB-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of client connections, collection access, and
// mapping between domain entities and BSON documents.
package mongodb
