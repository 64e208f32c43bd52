package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gecapi/internal/directory"
	"gecapi/internal/events"
	"gecapi/internal/lock"
	"gecapi/internal/model"
	"gecapi/internal/repository"
	"gecapi/internal/workflow"
)

// CourrierListResult is the service-level DTO for paginated courriers.
type CourrierListResult struct {
	Items []model.Courrier `json:"data"`
	Total int              `json:"total"`
}

// ListRequest filters a courrier listing. Empty fields match everything.
type ListRequest struct {
	Limit    int
	Offset   int
	Flow     model.Flow
	Status   model.CourrierStatus
	Priority string
	EntityID string
	HolderID string
	Search   string
}

func (r ListRequest) filter() workflow.Filter {
	return workflow.Filter{
		Flow:     r.Flow,
		Status:   r.Status,
		Priority: r.Priority,
		EntityID: r.EntityID,
		HolderID: r.HolderID,
		Search:   r.Search,
	}
}

// MutationResult is returned by operations that grow a courrier graph.
type MutationResult struct {
	Courrier *model.Courrier `json:"courrier"`
	Action   *model.Action   `json:"action,omitempty"`
	NewNodes []model.Node    `json:"newNodes,omitempty"`
}

// CourrierService defines the courrier workflow use cases. Every mutation
// runs under a per-courrier lock and is persisted with an optimistic version
// check, so concurrent writers never lose each other's actions.
type CourrierService interface {
	// Create allocates the next GEC number and registers a courrier.
	Create(ctx context.Context, in workflow.CreateCourrierInput) (*model.Courrier, error)

	// Get returns a courrier with display names resolved.
	Get(ctx context.Context, id string) (*model.Courrier, error)

	// List returns courriers using limit/offset and a total count.
	List(ctx context.Context, req ListRequest) (*CourrierListResult, error)

	// Transmit forwards a courrier from one of its active nodes.
	Transmit(ctx context.Context, courrierID string, in workflow.TransmitInput) (*MutationResult, error)

	// ApplyAction records a non-routing action on a node.
	ApplyAction(ctx context.Context, courrierID string, in workflow.ApplyActionInput) (*MutationResult, error)

	// MarkRead flags a node as read by its holder.
	MarkRead(ctx context.Context, courrierID, nodeID string) (*model.Courrier, error)

	// History returns the courrier timeline, most recent first.
	History(ctx context.Context, id string) ([]model.HistoryEntry, error)

	// Documents returns every file attached to the courrier, in graph order.
	Documents(ctx context.Context, id string) ([]model.DataDocument, error)

	// Stats aggregates dashboard counters over the courriers matching req.
	Stats(ctx context.Context, req ListRequest) (*model.Stats, error)

	// Entities lists the organizational units a courrier can be sent to.
	Entities(ctx context.Context) ([]model.Entity, error)
}

// CourrierDeps wires a CourrierService. Only Repo and Directory are required.
type CourrierDeps struct {
	Repo      repository.CourrierRepository
	Directory directory.Directory
	Locker    lock.Locker
	Publisher events.Publisher
	Engine    *workflow.Engine
	Metrics   *Metrics
	Logger    *slog.Logger
	// Now gives the wall time in the registry's zone; its year numbers new courriers.
	Now      func() time.Time
	LockTTL  time.Duration
	LockWait time.Duration
}

type courrierService struct {
	repo      repository.CourrierRepository
	dir       directory.Directory
	locker    lock.Locker
	publisher events.Publisher
	engine    *workflow.Engine
	metrics   *Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	lockTTL   time.Duration
	lockWait  time.Duration
}

// NewCourrierService constructs a new CourrierService.
func NewCourrierService(d CourrierDeps) CourrierService {
	s := &courrierService{
		repo:      d.Repo,
		dir:       d.Directory,
		locker:    d.Locker,
		publisher: d.Publisher,
		engine:    d.Engine,
		metrics:   d.Metrics,
		logger:    d.Logger,
		tracer:    otel.Tracer("gecapi/internal/service"),
		now:       d.Now,
		lockTTL:   d.LockTTL,
		lockWait:  d.LockWait,
	}
	if s.locker == nil {
		s.locker = lock.NewLocal()
	}
	if s.engine == nil {
		s.engine = workflow.NewEngine()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.lockTTL <= 0 {
		s.lockTTL = 10 * time.Second
	}
	if s.lockWait <= 0 {
		s.lockWait = 5 * time.Second
	}
	return s
}

func (s *courrierService) Create(ctx context.Context, in workflow.CreateCourrierInput) (_ *model.Courrier, err error) {
	ctx, span := s.tracer.Start(ctx, "CourrierService.Create")
	defer func() { s.finish(span, "create", err) }()

	year := s.now().Year()
	seq, err := s.repo.NextNumber(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("allocate number: %w", err)
	}
	in.ID = ""
	in.Number = workflow.FormatNumber(year, seq)

	c, err := s.engine.CreateCourrier(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save courrier: %w", err)
	}
	span.SetAttributes(attribute.String("courrier.id", c.ID), attribute.String("courrier.number", c.Number))

	e := events.NewEvent(events.CourrierCreated, c)
	for _, n := range c.Nodes[1:] {
		e.NewNodeIDs = append(e.NewNodeIDs, n.ID)
	}
	s.publish(ctx, e)
	s.logger.InfoContext(ctx, "courrier_created", "courrier_id", c.ID, "number", c.Number, "destinations", len(c.Nodes)-1)

	return s.resolver(ctx).Decorate(c), nil
}

func (s *courrierService) Get(ctx context.Context, id string) (*model.Courrier, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver(ctx).Decorate(c), nil
}

// List returns paginated courriers without exposing repository types.
func (s *courrierService) List(ctx context.Context, req ListRequest) (*CourrierListResult, error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	if err := checkListRequest(req); err != nil {
		return nil, err
	}

	res, err := s.repo.List(ctx, repository.ListQuery{
		PageQuery: repository.PageQuery{Limit: req.Limit, Offset: req.Offset},
		Flow:      req.Flow,
		Status:    req.Status,
		Priority:  req.Priority,
		EntityID:  req.EntityID,
		HolderID:  req.HolderID,
		Search:    req.Search,
	})
	if err != nil {
		return nil, err
	}

	r := s.resolver(ctx)
	items := make([]model.Courrier, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, *r.Decorate(&res.Items[i]))
	}
	return &CourrierListResult{Items: items, Total: res.Total}, nil
}

func (s *courrierService) Transmit(ctx context.Context, courrierID string, in workflow.TransmitInput) (_ *MutationResult, err error) {
	ctx, span := s.tracer.Start(ctx, "CourrierService.Transmit")
	defer func() { s.finish(span, "transmit", err) }()

	var res *workflow.TransmitResult
	c, err := s.mutate(ctx, courrierID, func(c *model.Courrier) error {
		var err error
		res, err = s.engine.Transmit(c, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	e := events.NewEvent(events.CourrierTransmitted, c)
	e.NodeID = in.SourceNodeID
	e.ActionID = res.Action.ID
	e.ActionType = res.Action.Type
	for _, n := range res.NewNodes {
		e.NewNodeIDs = append(e.NewNodeIDs, n.ID)
	}
	s.publish(ctx, e)
	s.logger.InfoContext(ctx, "courrier_transmitted",
		"courrier_id", c.ID, "node_id", in.SourceNodeID, "recipients", len(res.NewNodes), "version", c.Version)

	r := s.resolver(ctx)
	decorated := r.Decorate(c)
	action := res.Action
	return &MutationResult{
		Courrier: decorated,
		Action:   &action,
		NewNodes: decorated.Nodes[len(decorated.Nodes)-len(res.NewNodes):],
	}, nil
}

func (s *courrierService) ApplyAction(ctx context.Context, courrierID string, in workflow.ApplyActionInput) (_ *MutationResult, err error) {
	ctx, span := s.tracer.Start(ctx, "CourrierService.ApplyAction")
	span.SetAttributes(attribute.String("action.type", string(in.Type)))
	defer func() { s.finish(span, "apply_action", err) }()

	var action *model.Action
	c, err := s.mutate(ctx, courrierID, func(c *model.Courrier) error {
		var err error
		action, err = s.engine.ApplyAction(c, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	e := events.NewEvent(events.CourrierActionApplied, c)
	e.NodeID = action.NodeID
	e.ActionID = action.ID
	e.ActionType = action.Type
	s.publish(ctx, e)
	s.logger.InfoContext(ctx, "courrier_action_applied",
		"courrier_id", c.ID, "node_id", action.NodeID, "action_type", action.Type, "status", c.Status, "version", c.Version)

	return &MutationResult{Courrier: s.resolver(ctx).Decorate(c), Action: action}, nil
}

func (s *courrierService) MarkRead(ctx context.Context, courrierID, nodeID string) (_ *model.Courrier, err error) {
	ctx, span := s.tracer.Start(ctx, "CourrierService.MarkRead")
	defer func() { s.finish(span, "mark_read", err) }()

	c, err := s.mutate(ctx, courrierID, func(c *model.Courrier) error {
		return s.engine.MarkRead(c, nodeID)
	})
	if err != nil {
		return nil, err
	}

	e := events.NewEvent(events.CourrierNodeRead, c)
	e.NodeID = nodeID
	s.publish(ctx, e)

	return s.resolver(ctx).Decorate(c), nil
}

func (s *courrierService) History(ctx context.Context, id string) ([]model.HistoryEntry, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.ProjectHistory(c, s.resolver(ctx)), nil
}

func (s *courrierService) Documents(ctx context.Context, id string) ([]model.DataDocument, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.AggregateDocuments(c), nil
}

// Stats loads every courrier and filters in memory; the dashboard needs the
// whole population anyway.
func (s *courrierService) Stats(ctx context.Context, req ListRequest) (*model.Stats, error) {
	if err := checkListRequest(req); err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, repository.ListQuery{})
	if err != nil {
		return nil, err
	}
	stats := workflow.ComputeStats(workflow.FilterCourriers(res.Items, req.filter()))
	return &stats, nil
}

func (s *courrierService) Entities(ctx context.Context) ([]model.Entity, error) {
	return s.dir.ListEntities(ctx)
}

// mutate loads a courrier under its lock, applies fn, re-validates the graph
// and persists it against the version it was loaded at.
func (s *courrierService) mutate(ctx context.Context, id string, fn func(c *model.Courrier) error) (*model.Courrier, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	unlock, err := s.locker.Lock(lockCtx, "courrier:"+id, s.lockTTL)
	cancel()
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("lock courrier: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "courrier_unlock_failed", "courrier_id", id, "error", err)
		}
	}()

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := c.Version
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := workflow.ValidateCourrier(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, expected); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *courrierService) load(ctx context.Context, id string) (*model.Courrier, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *courrierService) resolver(ctx context.Context) *directory.Resolver {
	return directory.NewResolver(ctx, s.dir, s.logger)
}

// publish is best effort: the courrier is already persisted.
func (s *courrierService) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "event_publish_failed", "event_type", e.Type, "courrier_id", e.CourrierID, "error", err)
	}
}

func (s *courrierService) finish(span trace.Span, operation string, err error) {
	s.metrics.observe(operation, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func checkListRequest(req ListRequest) error {
	if req.Flow != "" && !req.Flow.Valid() {
		return &workflow.ValidationError{Reason: fmt.Sprintf("unknown flow %q", req.Flow)}
	}
	if req.Status != "" && !req.Status.Valid() {
		return &workflow.ValidationError{Reason: fmt.Sprintf("unknown status %q", req.Status)}
	}
	return nil
}
