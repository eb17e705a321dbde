// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// It also owns the vocabulary shared by every implementation: visibility
// scopes, fetch plans describing which relations to batch-load, and the
// normalized list query produced by the query package.
package store
