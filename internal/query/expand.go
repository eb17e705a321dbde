package query

import (
	"strings"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/store"
)

// ExpandPlan extends plan so that every expandable relation named by paths
// is loaded, together with the relations the expanded entity needs to render
// its own references. Expanding an edge collection loads its rows with the
// collection's liveness checks. Paths are dotted external field names rooted at kind
// ("prerequisite_quest.started_by"). Unknown or non-expandable fields end
// the walk along that path.
func ExpandPlan(kind domain.Kind, plan store.FetchPlan, paths []string) store.FetchPlan {
	for _, path := range paths {
		cur := kind
		var assoc []string
		for _, field := range strings.Split(path, ".") {
			shape, err := Lookup(cur)
			if err != nil {
				break
			}
			link, ok := shape.Links[field]
			if !ok {
				break
			}
			assoc = append(assoc, link.Association)
			prefix := strings.Join(assoc, ".")
			plan = plan.With(store.Preload{Path: prefix, Live: link.Live})

			if target, err := Lookup(link.Kind); err == nil {
				plan = plan.With(nested(prefix, target.Plan)...)
			}
			cur = link.Kind
		}
	}
	return plan
}

func nested(prefix string, plan store.FetchPlan) []store.Preload {
	out := make([]store.Preload, len(plan.Preloads))
	for i, pl := range plan.Preloads {
		out[i] = store.Preload{Path: prefix + "." + pl.Path, Live: pl.Live}
	}
	return out
}
