package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/events"
	"github.com/mintyhq/minty-api/internal/platform/logger"
	"github.com/mintyhq/minty-api/internal/platform/tracing"
	"github.com/mintyhq/minty-api/internal/query"
	"github.com/mintyhq/minty-api/internal/redact"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/store"
)

var tracer = tracing.Tracer("github.com/mintyhq/minty-api/internal/service")

// Request addresses one entity of a kind, or the kind itself when ID is
// uuid.Nil, and says how to render the result.
type Request struct {
	Version render.Version
	Kind    domain.Kind
	ID      uuid.UUID
	// Scope applies to Retrieve; list requests carry their own.
	Scope  store.Scope
	Expand render.Expand
}

// ListResult is one rendered page.
type ListResult struct {
	Items    []render.Object
	Page     int
	PageSize int
	Total    int64
	HasNext  bool
}

// CatalogService provides the read, write and lifecycle operations shared by
// every routed kind.
type CatalogService interface {
	// List returns one page of kind, shaped by list.
	List(ctx context.Context, r Request, list query.ListRequest) (*ListResult, error)

	// Retrieve renders a single entity visible in r.Scope.
	Retrieve(ctx context.Context, r Request) (render.Object, error)

	// Relation renders a nested collection of an active entity.
	Relation(ctx context.Context, r Request, name string) ([]render.Object, error)

	// Create inserts an entity of a writable kind from a JSON body.
	Create(ctx context.Context, r Request, body []byte) (render.Object, error)

	// Update changes the fields present in a JSON body of an active entity.
	Update(ctx context.Context, r Request, body []byte) (render.Object, error)

	// Delete soft-deletes an entity. Deleting it again moves the stamp.
	Delete(ctx context.Context, r Request) error

	// Restore undoes a soft delete and reports whether anything changed.
	Restore(ctx context.Context, r Request) (render.Object, bool, error)

	// Purge removes an entity for good.
	Purge(ctx context.Context, r Request) error
}

// CatalogOption configures a catalog service.
type CatalogOption func(*catalogService)

// WithPageSize overrides every kind's page size when n is positive.
func WithPageSize(n int) CatalogOption {
	return func(s *catalogService) { s.pageSize = n }
}

// WithClock sets the time source used to stamp lifecycle events.
func WithClock(now func() time.Time) CatalogOption {
	return func(s *catalogService) { s.now = now }
}

type catalogService struct {
	records  store.RecordStore
	registry *render.Registry
	emitter  events.EventEmitter
	logger   *slog.Logger
	pageSize int
	now      func() time.Time
}

// NewCatalogService creates a CatalogService.
// It returns an error if any of the required dependencies are nil.
func NewCatalogService(
	records store.RecordStore,
	registry *render.Registry,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...CatalogOption,
) (CatalogService, error) {
	if records == nil {
		return nil, &ServiceError{Service: "catalog", Op: "create_service", Err: errors.New("records cannot be nil")}
	}
	if registry == nil {
		return nil, &ServiceError{Service: "catalog", Op: "create_service", Err: errors.New("registry cannot be nil")}
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &catalogService{
		records:  records,
		registry: registry,
		emitter:  emitter,
		logger:   logger.With("component", "catalog_service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *catalogService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func startSpan(ctx context.Context, name string, kind domain.Kind) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("minty.kind", string(kind))))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// routable rejects kinds that cannot be addressed on their own.
func routable(kind domain.Kind) error {
	if _, err := domain.Lookup(kind); err != nil {
		return err
	}
	if !query.Listable(kind) {
		return fmt.Errorf("%w: %s", ErrUnroutableKind, kind)
	}
	return nil
}

// observe records what the renderer had to cut short.
func (s *catalogService) observe(ctx context.Context, span trace.Span, stats render.Stats) {
	if stats.CycleGuardTripped == 0 && stats.DepthCapped == 0 {
		return
	}
	span.SetAttributes(
		attribute.Int("minty.render.cycle_guard_tripped", stats.CycleGuardTripped),
		attribute.Int("minty.render.depth_capped", stats.DepthCapped),
	)
	s.log(ctx).Debug("expansion cut short",
		slog.Int("cycle_guard_tripped", stats.CycleGuardTripped),
		slog.Int("depth_capped", stats.DepthCapped))
}

func (s *catalogService) emit(ctx context.Context, eventType string, e domain.Entity, payload any) {
	event, err := events.NewLifecycleEvent(eventType, string(e.Kind()), e.Base().PublicID, s.now(), payload)
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		// the change is committed; a lost event is logged, not returned
		s.log(ctx).Error("failed to emit lifecycle event",
			slog.String("type", eventType),
			slog.String("kind", string(e.Kind())),
			slog.String("public_id", e.Base().PublicID.String()),
			redact.ErrorAttr(err))
	}
}

// List implements CatalogService.
func (s *catalogService) List(ctx context.Context, r Request, list query.ListRequest) (_ *ListResult, err error) {
	ctx, span := startSpan(ctx, "catalog.List", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return nil, err
	}
	if list.PageSize == 0 {
		list.PageSize = s.pageSize
	}
	q, err := query.Build(r.Kind, list)
	if err != nil {
		return nil, err
	}
	q.Plan = query.ExpandPlan(r.Kind, q.Plan, r.Expand.Paths())

	page, err := s.records.List(ctx, r.Kind, q)
	if err != nil {
		return nil, NewServiceError("catalog", "list", err)
	}

	items, stats := s.registry.RenderList(r.Version, page.Items, r.Expand)
	s.observe(ctx, span, stats)

	s.log(ctx).Debug("listed entities",
		slog.String("kind", string(r.Kind)),
		slog.Int("page", page.Page),
		slog.Int64("total", page.Total))

	return &ListResult{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasNext:  page.HasNext(),
	}, nil
}

// Retrieve implements CatalogService.
func (s *catalogService) Retrieve(ctx context.Context, r Request) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "catalog.Retrieve", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return nil, err
	}
	return s.retrieve(ctx, span, r)
}

func (s *catalogService) retrieve(ctx context.Context, span trace.Span, r Request) (render.Object, error) {
	shape, err := query.Lookup(r.Kind)
	if err != nil {
		return nil, err
	}
	plan := query.ExpandPlan(r.Kind, shape.Plan, r.Expand.Paths())

	e, err := s.records.Resolve(ctx, r.Kind, r.ID, r.Scope, plan)
	if err != nil {
		return nil, NewServiceError("catalog", "retrieve", err)
	}

	obj, stats := s.registry.Render(r.Version, e, r.Expand)
	s.observe(ctx, span, stats)
	return obj, nil
}

// Relation implements CatalogService.
func (s *catalogService) Relation(ctx context.Context, r Request, name string) (_ []render.Object, err error) {
	ctx, span := startSpan(ctx, "catalog.Relation", r.Kind)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("minty.relation", name))

	if err := routable(r.Kind); err != nil {
		return nil, err
	}
	c, err := query.CollectionFor(r.Kind, name)
	if err != nil {
		return nil, err
	}

	parent, err := s.records.Resolve(ctx, r.Kind, r.ID, store.ScopeActive, store.FetchPlan{})
	if err != nil {
		return nil, NewServiceError("catalog", "relation", err)
	}

	cq := c.Query(parent.Base().ID)
	cq.Plan = query.ExpandPlan(c.Kind, cq.Plan, r.Expand.Paths())
	rows, err := s.records.Children(ctx, cq)
	if err != nil {
		return nil, NewServiceError("catalog", "relation", err)
	}
	if c.Sort != nil {
		c.Sort(rows)
	}

	items, stats := s.registry.RenderList(r.Version, rows, r.Expand)
	s.observe(ctx, span, stats)
	return items, nil
}

// Create implements CatalogService.
func (s *catalogService) Create(ctx context.Context, r Request, body []byte) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "catalog.Create", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return nil, err
	}
	w, err := render.DecodeWrite(r.Kind, body)
	if err != nil {
		return nil, err
	}
	if err := w.CheckRequired(); err != nil {
		return nil, err
	}

	d, err := domain.Lookup(r.Kind)
	if err != nil {
		return nil, err
	}
	e := d.New()
	if _, err := applyWrite(ctx, s.records, e, w); err != nil {
		return nil, NewServiceError("catalog", "create", err)
	}
	if err := s.records.Create(ctx, e); err != nil {
		return nil, NewServiceError("catalog", "create", err)
	}

	s.log(ctx).Info("entity created",
		slog.String("kind", string(r.Kind)),
		slog.String("public_id", e.Base().PublicID.String()))
	s.emit(ctx, events.TypeCreated, e, map[string][]string{"fields": w.Fields()})

	r.ID, r.Scope = e.Base().PublicID, store.ScopeActive
	return s.retrieve(ctx, span, r)
}

// Update implements CatalogService.
func (s *catalogService) Update(ctx context.Context, r Request, body []byte) (_ render.Object, err error) {
	ctx, span := startSpan(ctx, "catalog.Update", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return nil, err
	}
	w, err := render.DecodeWrite(r.Kind, body)
	if err != nil {
		return nil, err
	}

	e, err := s.records.Resolve(ctx, r.Kind, r.ID, store.ScopeActive, store.FetchPlan{})
	if err != nil {
		return nil, NewServiceError("catalog", "update", err)
	}
	columns, err := applyWrite(ctx, s.records, e, w)
	if err != nil {
		return nil, NewServiceError("catalog", "update", err)
	}
	if err := s.records.Update(ctx, e, columns); err != nil {
		return nil, NewServiceError("catalog", "update", err)
	}

	if len(columns) > 0 {
		s.emit(ctx, events.TypeUpdated, e, map[string][]string{"fields": w.Fields()})
	}

	r.Scope = store.ScopeActive
	return s.retrieve(ctx, span, r)
}

// Delete implements CatalogService.
func (s *catalogService) Delete(ctx context.Context, r Request) (err error) {
	ctx, span := startSpan(ctx, "catalog.Delete", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return err
	}
	e, err := s.records.Resolve(ctx, r.Kind, r.ID, store.ScopeAll, store.FetchPlan{})
	if err != nil {
		return NewServiceError("catalog", "delete", err)
	}
	if err := s.records.SoftDelete(ctx, e); err != nil {
		return NewServiceError("catalog", "delete", err)
	}
	s.emit(ctx, events.TypeDeleted, e, nil)
	return nil
}

// Restore implements CatalogService. Restoring an active entity changes
// nothing and still renders it.
func (s *catalogService) Restore(ctx context.Context, r Request) (_ render.Object, _ bool, err error) {
	ctx, span := startSpan(ctx, "catalog.Restore", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return nil, false, err
	}
	e, err := s.records.Resolve(ctx, r.Kind, r.ID, store.ScopeAll, store.FetchPlan{})
	if err != nil {
		return nil, false, NewServiceError("catalog", "restore", err)
	}
	restored, err := s.records.Restore(ctx, e)
	if err != nil {
		return nil, false, NewServiceError("catalog", "restore", err)
	}
	if restored {
		s.emit(ctx, events.TypeRestored, e, nil)
	}

	r.Scope = store.ScopeActive
	obj, err := s.retrieve(ctx, span, r)
	if err != nil {
		return nil, false, err
	}
	return obj, restored, nil
}

// Purge implements CatalogService.
func (s *catalogService) Purge(ctx context.Context, r Request) (err error) {
	ctx, span := startSpan(ctx, "catalog.Purge", r.Kind)
	defer func() { endSpan(span, err) }()

	if err := routable(r.Kind); err != nil {
		return err
	}
	e, err := s.records.Resolve(ctx, r.Kind, r.ID, store.ScopeAll, store.FetchPlan{})
	if err != nil {
		return NewServiceError("catalog", "purge", err)
	}
	if err := s.records.HardDelete(ctx, e); err != nil {
		return NewServiceError("catalog", "purge", err)
	}
	s.emit(ctx, events.TypePurged, e, nil)
	return nil
}
