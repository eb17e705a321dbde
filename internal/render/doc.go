// Package render turns entities into versioned representations.
//
// A Registry maps each API version to one renderer per entity kind. The
// external identifier is always the public id. Relations render as the
// related entity's public id unless the caller names them in an expansion
// directive, in which case they are rendered inline, recursively, up to
// MaxExpandDepth levels. An entity is never expanded inside itself: the
// renderer tracks the (kind, public id) pairs on the current path and emits
// a reference when one repeats.
//
// DecodeWrite is the inverse for the writable kinds. It keeps whitelisted
// fields and drops everything read-only or unknown.
package render
