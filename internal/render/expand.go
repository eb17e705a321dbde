package render

import (
	"sort"
	"strings"
)

// MaxExpandDepth bounds how many relation levels one directive can expand.
const MaxExpandDepth = 4

// Expand is a parsed expansion directive: each key is an expanded field and
// its value the expansions nested under it.
type Expand map[string]Expand

// ParseExpand parses a comma-separated list of dotted field paths
// ("started_by,prerequisite_quest.required_job"). Whitespace is trimmed,
// empty segments are ignored and paths are cut at MaxExpandDepth.
func ParseExpand(raw string) Expand {
	root := Expand{}
	for _, path := range strings.Split(raw, ",") {
		node := root
		depth := 0
		for _, field := range strings.Split(path, ".") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if depth == MaxExpandDepth {
				break
			}
			next, ok := node[field]
			if !ok {
				next = Expand{}
				node[field] = next
			}
			node = next
			depth++
		}
	}
	return root
}

// Has reports whether field is expanded at this level.
func (e Expand) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Paths returns the dotted paths of every leaf, sorted.
func (e Expand) Paths() []string {
	var out []string
	var walk func(prefix string, node Expand)
	walk = func(prefix string, node Expand) {
		for field, child := range node {
			path := field
			if prefix != "" {
				path = prefix + "." + field
			}
			if len(child) == 0 {
				out = append(out, path)
				continue
			}
			walk(path, child)
		}
	}
	walk("", e)
	sort.Strings(out)
	return out
}

// String formats the directive back into its canonical form.
func (e Expand) String() string {
	return strings.Join(e.Paths(), ",")
}
