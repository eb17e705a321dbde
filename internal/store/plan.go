package store

import "slices"

// LiveRef names a foreign key column whose target must be active for a row
// to be visible. It is used on edge rows so that an edge pointing at a
// soft-deleted endpoint drops out of traversals.
type LiveRef struct {
	Column string
	Table  string
}

// Preload is one relation path to batch-load. Path uses the association
// names of the domain structs, dotted for nested relations ("Drops.Item").
type Preload struct {
	Path string
	Live []LiveRef
}

// FetchPlan lists the relations loaded alongside a query's root rows. Each
// preload costs one extra statement regardless of how many roots there are.
type FetchPlan struct {
	Name     string
	Preloads []Preload
}

// Plan builds a named plan.
func Plan(name string, preloads ...Preload) FetchPlan {
	return FetchPlan{Name: name, Preloads: preloads}
}

// Load is shorthand for a preload without liveness checks.
func Load(path string) Preload {
	return Preload{Path: path}
}

// LoadLive is shorthand for a preload of edge rows whose endpoints must be active.
func LoadLive(path string, live ...LiveRef) Preload {
	return Preload{Path: path, Live: live}
}

// With returns a copy of p extended by preloads whose paths are not already
// present.
func (p FetchPlan) With(preloads ...Preload) FetchPlan {
	out := FetchPlan{Name: p.Name, Preloads: slices.Clone(p.Preloads)}
	for _, pl := range preloads {
		if !out.Has(pl.Path) {
			out.Preloads = append(out.Preloads, pl)
		}
	}
	return out
}

// Has reports whether the plan loads path.
func (p FetchPlan) Has(path string) bool {
	return slices.ContainsFunc(p.Preloads, func(pl Preload) bool { return pl.Path == path })
}

// Paths returns the preload paths in declaration order.
func (p FetchPlan) Paths() []string {
	out := make([]string, len(p.Preloads))
	for i, pl := range p.Preloads {
		out[i] = pl.Path
	}
	return out
}

// Len is the number of extra statements the plan costs.
func (p FetchPlan) Len() int {
	return len(p.Preloads)
}
