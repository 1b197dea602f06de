// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection, apply
// transactional boundaries where an operation must read and write atomically,
// and translate store-level errors into service-level ones so the API layer
// can map them to HTTP responses without knowing about the database.
package service
