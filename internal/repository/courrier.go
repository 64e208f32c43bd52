package repository

import (
	"context"

	"gecapi/internal/model"
)

// ListQuery narrows a courrier listing. Empty fields are ignored.
type ListQuery struct {
	PageQuery
	Flow     model.Flow
	Status   model.CourrierStatus
	Priority string
	EntityID string
	// HolderID keeps courriers with an active node held by this user.
	HolderID string
	Search   string
}

// CourrierRepository persists courriers as whole aggregates.
// No business logic here: the graph is validated before it reaches storage.
type CourrierRepository interface {
	// Create inserts a new courrier. Its version is set to 1.
	Create(ctx context.Context, c *model.Courrier) error

	// FindByID loads one courrier with its full graph. Returns ErrNotFound when missing.
	FindByID(ctx context.Context, id string) (*model.Courrier, error)

	// List returns a page of courriers, most recent first, and the total number of matches.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Courrier], error)

	// Update replaces the stored aggregate if its version still equals
	// expectedVersion and bumps c.Version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, c *model.Courrier, expectedVersion int) error

	// NextNumber allocates the next courrier sequence value for year, starting at 1.
	NextNumber(ctx context.Context, year int) (int, error)
}
