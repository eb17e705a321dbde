package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.einride.tech/aip/ordering"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/store"
)

// Reserved list parameters. Every other parameter is a candidate filter.
const (
	ParamExpand  = "expand"
	ParamOrderBy = "order_by"
	ParamSearch  = "search"
	ParamPage    = "page"
	ParamScope   = "scope"
)

var reserved = map[string]bool{
	ParamExpand:  true,
	ParamOrderBy: true,
	ParamSearch:  true,
	ParamPage:    true,
	ParamScope:   true,
}

// ListRequest is the caller's list input before it is checked against a
// kind's shape.
type ListRequest struct {
	Filters map[string]string
	Search  string
	OrderBy string
	Page    int
	Scope   store.Scope

	// PageSize overrides the shape's page size when positive.
	PageSize int
}

// ParseListRequest reads a list request from query parameters. Filters on
// fields the kind does not declare are ignored later by Build.
func ParseListRequest(values url.Values) (ListRequest, error) {
	req := ListRequest{
		Filters: map[string]string{},
		Search:  strings.TrimSpace(values.Get(ParamSearch)),
		OrderBy: strings.TrimSpace(values.Get(ParamOrderBy)),
		Page:    1,
	}

	if raw := strings.TrimSpace(values.Get(ParamPage)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return ListRequest{}, domain.NewValidationError(ParamPage, "must be a positive integer", nil)
		}
		req.Page = page
	}

	scope, err := store.ParseScope(values.Get(ParamScope))
	if err != nil {
		return ListRequest{}, err
	}
	req.Scope = scope

	for name, vals := range values {
		if reserved[name] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		req.Filters[name] = vals[0]
	}
	return req, nil
}

// Build validates req against the shape of kind and produces the store
// query: filters, then search, then ordering, then one page.
func Build(kind domain.Kind, req ListRequest) (store.ListQuery, error) {
	shape, err := Lookup(kind)
	if err != nil {
		return store.ListQuery{}, err
	}

	filters, err := shape.filters(req.Filters)
	if err != nil {
		return store.ListQuery{}, err
	}

	order, err := shape.order(req.OrderBy)
	if err != nil {
		return store.ListQuery{}, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := shape.PageSize
	if req.PageSize > 0 {
		size = req.PageSize
	}

	return store.ListQuery{
		Scope:         req.Scope,
		Filters:       filters,
		Search:        req.Search,
		SearchColumns: shape.SearchFields,
		Order:         order,
		Page:          page,
		PageSize:      size,
		Plan:          shape.Plan,
	}, nil
}

func (s Shape) filters(raw map[string]string) ([]store.Filter, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		if _, ok := s.FilterFields[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]store.Filter, 0, len(names))
	for _, name := range names {
		field := s.FilterFields[name]
		value := raw[name]
		f := store.Filter{Column: field.Column, RefTable: field.RefTable}

		switch field.Type {
		case FieldInt:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, domain.NewValidationError(name, "must be an integer", nil)
			}
			f.Value = n
		case FieldRef:
			id, err := uuid.Parse(value)
			if err != nil {
				return nil, domain.NewValidationError(name, "must be a valid id", domain.ErrInvalidID)
			}
			f.Value = id
		default:
			f.Value = value
		}
		out = append(out, f)
	}
	return out, nil
}

// order parses an AIP-132 order_by value ("price desc, name"). A leading
// minus ("-price") is accepted as shorthand for desc.
func (s Shape) order(raw string) ([]store.Order, error) {
	if raw == "" {
		return s.DefaultOrder, nil
	}

	var ob ordering.OrderBy
	if err := ob.UnmarshalString(normalizeOrderBy(raw)); err != nil {
		return nil, domain.NewValidationError(ParamOrderBy, fmt.Sprintf("%q is not a valid ordering", raw), nil)
	}

	paths := make([]string, 0, len(s.OrderFields))
	for name := range s.OrderFields {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	if err := ob.ValidateForPaths(paths...); err != nil {
		return nil, domain.NewValidationError(ParamOrderBy,
			fmt.Sprintf("can order by %s", strings.Join(paths, ", ")), nil)
	}

	out := make([]store.Order, len(ob.Fields))
	for i, f := range ob.Fields {
		out[i] = store.Order{Column: s.OrderFields[f.Path], Desc: f.Desc}
	}
	return out, nil
}

func normalizeOrderBy(raw string) string {
	terms := strings.Split(raw, ",")
	for i, term := range terms {
		term = strings.TrimSpace(term)
		if rest, ok := strings.CutPrefix(term, "-"); ok {
			term = strings.TrimSpace(rest) + " desc"
		}
		terms[i] = term
	}
	return strings.Join(terms, ",")
}
