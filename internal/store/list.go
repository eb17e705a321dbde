package store

import (
	"github.com/mintyhq/minty-api/internal/domain"
)

// Filter is an equality condition on a column. When RefTable is set, Value
// is the public id of a row in RefTable and the condition matches rows whose
// Column references it.
type Filter struct {
	Column   string
	RefTable string
	Value    any
}

// Order is one ordering term.
type Order struct {
	Column string
	Desc   bool
}

// ListQuery is a fully validated list request: filters, then a substring
// search across SearchColumns, then ordering, then one page.
type ListQuery struct {
	Scope         Scope
	Filters       []Filter
	Search        string
	SearchColumns []string
	Order         []Order
	Page          int
	PageSize      int
	Plan          FetchPlan
}

// Offset returns the number of rows before the requested page.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Page is one page of a list query.
type Page struct {
	Items    []domain.Entity
	Page     int
	PageSize int
	Total    int64
}

// HasNext reports whether rows exist past this page.
func (p Page) HasNext() bool {
	return int64(p.Page)*int64(p.PageSize) < p.Total
}

// ChildQuery loads the rows of Kind whose ForeignKey column points at
// ParentID: a reverse relation or an edge collection.
type ChildQuery struct {
	Kind       domain.Kind
	ForeignKey string
	ParentID   int64
	Live       []LiveRef
	Order      []Order
	Plan       FetchPlan
}
