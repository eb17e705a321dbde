// Package query declares how each entity kind is listed and traversed:
// default ordering, the fields callers may filter, search and order by, the
// fetch plan that batch-loads the relations a representation needs, and the
// nested collections reachable from an entity.
//
// The package is declarative. It turns caller input into a validated
// store.ListQuery or store.ChildQuery; the store implementation translates
// those into SQL.
package query
