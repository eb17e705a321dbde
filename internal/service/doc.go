// Package service contains the application use cases. It orchestrates the
// store, the query shapes and the renderer to fulfill every operation the
// transport exposes.
//
// The service layer sits between the delivery mechanism (the HTTP adapter in
// internal/api) and the persistence interfaces defined in internal/store. It
// never depends on a specific storage implementation.
//
// Key components:
//
// 1. CatalogService:
//   - Resolves entities by kind and public id under a visibility scope
//   - Builds list queries from query shapes and fetch plans from expansion paths
//   - Renders results through the versioned registry
//   - Applies whitelisted writes and the soft-delete lifecycle, emitting
//     lifecycle events after each committed change
//
// 2. GuildService:
//   - Records fame votes and tags on guilds and returns refreshed summaries
//
// 3. Error Handling:
//   - Store and domain sentinels stay in the error chain
//   - Unexpected failures are wrapped in ServiceError with the failed operation
//
// Every operation opens a tracing span and logs through the logger carried in
// its context.
package service
