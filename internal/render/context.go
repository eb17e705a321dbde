package render

import (
	"slices"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Context carries one render call's version, the expansions that apply at
// the current level and the entities on the current path.
type Context struct {
	registry *Registry
	version  Version
	expand   Expand
	path     []pathKey
	stats    *Stats
}

// Version is the version being rendered.
func (c *Context) Version() Version {
	return c.version
}

// Expanded reports whether field is expanded at this level.
func (c *Context) Expanded(field string) bool {
	return c.expand.Has(field)
}

func (c *Context) root(e domain.Entity) *Context {
	return &Context{
		registry: c.registry,
		version:  c.version,
		expand:   c.expand,
		path:     []pathKey{keyOf(e)},
		stats:    c.stats,
	}
}

func (c *Context) render(e domain.Entity, at *Context) Object {
	return c.registry.dispatch(at, e)
}

// child returns the context one level below field. The path is copied so
// siblings never see each other's entries.
func (c *Context) child(field string, key *pathKey) *Context {
	path := slices.Clone(c.path)
	if key != nil {
		path = append(path, *key)
	}
	return &Context{
		registry: c.registry,
		version:  c.version,
		expand:   c.expand[field],
		path:     path,
		stats:    c.stats,
	}
}

func (c *Context) onPath(key pathKey) bool {
	return slices.Contains(c.path, key)
}

// relation renders a loaded, non-nil related entity: inline when expanded
// and safe, otherwise as its public id.
func (c *Context) relation(field string, e domain.Entity) any {
	key := keyOf(e)
	if !c.Expanded(field) {
		return key.id
	}
	if c.onPath(key) {
		c.stats.CycleGuardTripped++
		return key.id
	}
	if len(c.path) > MaxExpandDepth {
		c.stats.DepthCapped++
		return key.id
	}
	return c.render(e, c.child(field, &key))
}

// Ref renders the relation field held in p. A relation that is not loaded,
// or whose target is hidden, renders as null.
func Ref[T any, PT interface {
	*T
	domain.Entity
}](c *Context, field string, p PT) any {
	if p == nil {
		return nil
	}
	return c.relation(field, p)
}

// collection renders each row of an expanded edge collection one level
// below field.
func collection[T any, PT interface {
	*T
	domain.Entity
}](c *Context, field string, rows []T) []Object {
	at := c.child(field, nil)
	out := make([]Object, len(rows))
	for i := range rows {
		out[i] = c.render(PT(&rows[i]), at)
	}
	return out
}
