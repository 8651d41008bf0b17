// Package mocks provides centralized test doubles for the store and auth
// interfaces.
//
// Each double has an XxxFn field per method for custom behavior and falls
// back to an in-memory implementation when the field is nil. Call counters
// let tests assert that a layer was never reached, e.g. that a request
// rejected for a missing token never touched the task store:
//
//	tasks := mocks.NewMockTaskStore()
//	// ... exercise the handler ...
//	assert.Zero(t, tasks.Calls("Create"))
//
// The in-memory fallbacks are safe for concurrent use so they can back an
// httptest server.
package mocks
