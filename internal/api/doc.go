// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// catalog and guild operations.
//
// Every resource in Resources gets the same set of routes, bound to its
// entity kind: list, retrieve, create, partial update, soft delete, restore,
// purge and nested relation reads. Guilds add fame and tag endpoints.
package api
