// Package service contains the application use cases for tasks and the
// startup seeding of the document store. It orchestrates domain objects and
// the store interfaces (defined in internal/store) and never depends on a
// concrete storage implementation.
//
// Error handling follows the rest of the application:
//   - validation problems surface as *domain.ValidationError
//   - store sentinels (store.ErrTaskNotFound, ...) pass through wrapped
//   - the API layer maps both to HTTP status codes in one place
package service
