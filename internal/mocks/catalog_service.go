package mocks

import (
	"context"

	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/service"
)

// MockCatalogService implements service.CatalogService for testing
type MockCatalogService struct {
	// Custom behavior functions
	ListFn     func(ctx context.Context, r service.Request, list query.ListRequest) (*service.ListResult, error)
	RetrieveFn func(ctx context.Context, r service.Request) (render.Object, error)
	RelationFn func(ctx context.Context, r service.Request, name string) ([]render.Object, error)
	CreateFn   func(ctx context.Context, r service.Request, body []byte) (render.Object, error)
	UpdateFn   func(ctx context.Context, r service.Request, body []byte) (render.Object, error)
	DeleteFn   func(ctx context.Context, r service.Request) error
	RestoreFn  func(ctx context.Context, r service.Request) (render.Object, bool, error)
	PurgeFn    func(ctx context.Context, r service.Request) error

	// Default return values
	Object       render.Object
	Result       *service.ListResult
	DefaultError error
}

var _ service.CatalogService = (*MockCatalogService)(nil)

// List implements the CatalogService.List method
func (m *MockCatalogService) List(ctx context.Context, r service.Request, list query.ListRequest) (*service.ListResult, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, r, list)
	}
	return m.Result, m.DefaultError
}

// Retrieve implements the CatalogService.Retrieve method
func (m *MockCatalogService) Retrieve(ctx context.Context, r service.Request) (render.Object, error) {
	if m.RetrieveFn != nil {
		return m.RetrieveFn(ctx, r)
	}
	return m.Object, m.DefaultError
}

// Relation implements the CatalogService.Relation method
func (m *MockCatalogService) Relation(ctx context.Context, r service.Request, name string) ([]render.Object, error) {
	if m.RelationFn != nil {
		return m.RelationFn(ctx, r, name)
	}
	if m.Object == nil {
		return nil, m.DefaultError
	}
	return []render.Object{m.Object}, m.DefaultError
}

// Create implements the CatalogService.Create method
func (m *MockCatalogService) Create(ctx context.Context, r service.Request, body []byte) (render.Object, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r, body)
	}
	return m.Object, m.DefaultError
}

// Update implements the CatalogService.Update method
func (m *MockCatalogService) Update(ctx context.Context, r service.Request, body []byte) (render.Object, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, r, body)
	}
	return m.Object, m.DefaultError
}

// Delete implements the CatalogService.Delete method
func (m *MockCatalogService) Delete(ctx context.Context, r service.Request) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, r)
	}
	return m.DefaultError
}

// Restore implements the CatalogService.Restore method
func (m *MockCatalogService) Restore(ctx context.Context, r service.Request) (render.Object, bool, error) {
	if m.RestoreFn != nil {
		return m.RestoreFn(ctx, r)
	}
	return m.Object, m.DefaultError == nil, m.DefaultError
}

// Purge implements the CatalogService.Purge method
func (m *MockCatalogService) Purge(ctx context.Context, r service.Request) error {
	if m.PurgeFn != nil {
		return m.PurgeFn(ctx, r)
	}
	return m.DefaultError
}
