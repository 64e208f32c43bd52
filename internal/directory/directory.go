// Package directory looks up the entities and users a courrier is routed
// between. The workflow only stores their ids; names are resolved here.
package directory

import (
	"context"
	"errors"

	"gecapi/internal/model"
)

// ErrNotFound is returned when an entity or user id is unknown.
var ErrNotFound = errors.New("directory entry not found")

// Directory is the read side of the organization chart.
type Directory interface {
	// Entity returns one entity with its main user, if any.
	Entity(ctx context.Context, id string) (*model.Entity, error)
	// User returns one user.
	User(ctx context.Context, id string) (*model.User, error)
	// ListEntities returns every entity ordered by name.
	ListEntities(ctx context.Context) ([]model.Entity, error)
}
