// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document store from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
package store
