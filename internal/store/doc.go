// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so the resource logic stays independent of
// any specific database driver.
package store
