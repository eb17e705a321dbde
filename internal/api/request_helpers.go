package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
	"github.com/mintyhq/minty-api/internal/store"
)

// Path parameters shared by the routes.
const (
	paramVersion  = "version"
	paramID       = "id"
	paramUser     = "user"
	paramValue    = "value"
	paramRelation = "relation"
)

// getPathUUID extracts a public id from the URL path parameters. A value
// that is not a UUID names no record, so it is reported as store.ErrNotFound
// rather than a validation failure.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not an id", store.ErrNotFound, paramName, pathParam)
	}
	return id, nil
}

// requestFor builds the service request for kind from the version path
// parameter and the expand and scope query parameters. The id is left empty.
func requestFor(r *http.Request, kind domain.Kind) (service.Request, error) {
	values := r.URL.Query()
	scope, err := store.ParseScope(values.Get(query.ParamScope))
	if err != nil {
		return service.Request{}, err
	}
	return service.Request{
		Version: render.ParseVersion(chi.URLParam(r, paramVersion)),
		Kind:    kind,
		Scope:   scope,
		Expand:  render.ParseExpand(values.Get(query.ParamExpand)),
	}, nil
}

// entityRequest is requestFor plus the {id} path parameter.
func entityRequest(r *http.Request, kind domain.Kind) (service.Request, error) {
	req, err := requestFor(r, kind)
	if err != nil {
		return service.Request{}, err
	}
	id, err := getPathUUID(r, paramID)
	if err != nil {
		return service.Request{}, err
	}
	req.ID = id
	return req, nil
}

// pageURL returns the request URL with the page parameter set to page.
func pageURL(r *http.Request, page int) *string {
	u := url.URL{Path: r.URL.Path}
	values := r.URL.Query()
	values.Set(query.ParamPage, strconv.Itoa(page))
	u.RawQuery = values.Encode()
	s := u.String()
	return &s
}
