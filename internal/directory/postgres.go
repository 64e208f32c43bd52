package directory

import (
	"context"
	"database/sql"
	"errors"

	"gecapi/internal/model"
)

// Postgres reads the directory from the entities and users tables.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Directory backed by PostgreSQL.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Directory = (*Postgres)(nil)

const entitySelect = `
	SELECT e.id, e.name, e.description, e.is_active,
	       u.id, u.firstname, u.lastname, u.email
	FROM entities e
	LEFT JOIN users u ON u.id = e.main_user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*model.Entity, error) {
	var (
		e                       model.Entity
		uid, first, last, email sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.IsActive, &uid, &first, &last, &email); err != nil {
		return nil, err
	}
	if uid.Valid {
		e.MainUser = &model.User{
			ID:        uid.String,
			Firstname: first.String,
			Lastname:  last.String,
			Email:     email.String,
			EntityID:  e.ID,
		}
	}
	return &e, nil
}

// Entity fetches one entity and its main user.
func (p *Postgres) Entity(ctx context.Context, id string) (*model.Entity, error) {
	row := p.db.QueryRowContext(ctx, entitySelect+` WHERE e.id = $1`, id)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// User fetches one user.
func (p *Postgres) User(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, firstname, lastname, email, COALESCE(entity_id, '')
		FROM users
		WHERE id = $1
	`
	var u model.User
	if err := p.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.EntityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListEntities returns all entities ordered by name.
func (p *Postgres) ListEntities(ctx context.Context) ([]model.Entity, error) {
	rows, err := p.db.QueryContext(ctx, entitySelect+` ORDER BY e.name, e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
