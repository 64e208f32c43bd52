package directory

import (
	"context"
	"errors"
	"log/slog"

	"gecapi/internal/model"
	"gecapi/internal/workflow"
)

// Resolver adapts a Directory to workflow.NameResolver for the duration of
// one request. Lookups are memoized, including misses, and failures degrade
// to placeholders instead of surfacing.
type Resolver struct {
	ctx    context.Context
	dir    Directory
	logger *slog.Logger

	entities map[string]string
	users    map[string]string
}

var _ workflow.NameResolver = (*Resolver)(nil)

// NewResolver binds dir to ctx. A nil logger discards lookup failures.
func NewResolver(ctx context.Context, dir Directory, logger *slog.Logger) *Resolver {
	return &Resolver{
		ctx:      ctx,
		dir:      dir,
		logger:   logger,
		entities: map[string]string{},
		users:    map[string]string{},
	}
}

// EntityName returns the entity's display name.
func (r *Resolver) EntityName(id string) (string, bool) {
	if name, ok := r.entities[id]; ok {
		return name, name != ""
	}
	var name string
	if r.dir != nil && id != "" {
		e, err := r.dir.Entity(r.ctx, id)
		switch {
		case err != nil:
			r.warn("entity_lookup_failed", id, err)
		case e != nil:
			name = e.Name
		}
	}
	r.entities[id] = name
	return name, name != ""
}

// UserName returns the user's full name.
func (r *Resolver) UserName(id string) (string, bool) {
	if name, ok := r.users[id]; ok {
		return name, name != ""
	}
	var name string
	if r.dir != nil && id != "" {
		u, err := r.dir.User(r.ctx, id)
		switch {
		case err != nil:
			r.warn("user_lookup_failed", id, err)
		case u != nil:
			name = u.FullName()
		}
	}
	r.users[id] = name
	return name, name != ""
}

// Decorate returns a copy of c with every node's entityName and userFullName
// filled, using placeholders for unknown ids. c is left untouched.
func (r *Resolver) Decorate(c *model.Courrier) *model.Courrier {
	out := c.Clone()
	for i := range out.Nodes {
		n := &out.Nodes[i]
		if name, ok := r.EntityName(n.EntityID); ok {
			n.EntityName = name
		} else {
			n.EntityName = workflow.UnknownEntity
		}
		if name, ok := r.UserName(n.UserID); ok {
			n.UserFullName = name
		} else {
			n.UserFullName = workflow.UserPlaceholder(n.UserID)
		}
	}
	return out
}

func (r *Resolver) warn(msg, id string, err error) {
	if r.logger == nil {
		return
	}
	level := slog.LevelWarn
	if errors.Is(err, ErrNotFound) {
		level = slog.LevelDebug
	}
	r.logger.Log(r.ctx, level, msg, "component", "directory", "id", id, "error", err.Error())
}
