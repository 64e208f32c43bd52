package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gecapi/internal/database"
	"gecapi/internal/model"
	"gecapi/internal/repository"
)

// CourrierPostgres is a PostgreSQL implementation of repository.CourrierRepository.
// The aggregate is stored as JSONB; flow, status, priority and number are
// duplicated into columns for filtering.
type CourrierPostgres struct {
	db *sql.DB
}

// NewCourrierPostgres creates a new CourrierPostgres repository.
func NewCourrierPostgres(db *sql.DB) *CourrierPostgres {
	return &CourrierPostgres{db: db}
}

var _ repository.CourrierRepository = (*CourrierPostgres)(nil)

// Create inserts a new courrier row at version 1.
func (r *CourrierPostgres) Create(ctx context.Context, c *model.Courrier) error {
	const q = `
		INSERT INTO courriers (id, number, flow, status, priority, version, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	c.Version = 1
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode courrier %s: %w", c.ID, err)
	}
	_, err = r.db.ExecContext(ctx, q,
		c.ID,
		c.Number,
		string(c.Flow),
		string(c.Status),
		c.Metadata.Priorite,
		c.Version,
		body,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

// FindByID loads a courrier by id.
func (r *CourrierPostgres) FindByID(ctx context.Context, id string) (*model.Courrier, error) {
	const q = `SELECT version, body FROM courriers WHERE id = $1`
	c, err := scanCourrier(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns a filtered page ordered by creation date, newest first.
// A non-positive limit returns every match.
func (r *CourrierPostgres) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.Courrier], error) {
	where, args := buildFilter(lq)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courriers`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT version, body FROM courriers` + where + ` ORDER BY created_at DESC, id DESC`
	if lq.Limit > 0 {
		args = append(args, lq.Limit, lq.Offset)
		q += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Courrier, 0)
	for rows.Next() {
		c, err := scanCourrier(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Courrier]{
		Items: items,
		Total: total,
	}, nil
}

// Update writes c if the stored version equals expectedVersion. The row is
// locked for the duration of the check.
func (r *CourrierPostgres) Update(ctx context.Context, c *model.Courrier, expectedVersion int) error {
	next := *c
	next.Version = expectedVersion + 1
	body, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode courrier %s: %w", c.ID, err)
	}

	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var current int
		err := tx.QueryRowContext(ctx, `SELECT version FROM courriers WHERE id = $1 FOR UPDATE`, c.ID).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}
		if current != expectedVersion {
			return fmt.Errorf("%w: courrier %s is at version %d, expected %d",
				repository.ErrVersionConflict, c.ID, current, expectedVersion)
		}

		const q = `
			UPDATE courriers
			SET status = $2, priority = $3, version = $4, body = $5, updated_at = $6
			WHERE id = $1
		`
		_, err = tx.ExecContext(ctx, q,
			c.ID,
			string(c.Status),
			c.Metadata.Priorite,
			next.Version,
			body,
			c.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return err
	}
	c.Version = next.Version
	return nil
}

// NextNumber increments and returns the sequence for year.
func (r *CourrierPostgres) NextNumber(ctx context.Context, year int) (int, error) {
	const q = `
		INSERT INTO courrier_sequences (year, value) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET value = courrier_sequences.value + 1
		RETURNING value
	`
	var seq int
	if err := r.db.QueryRowContext(ctx, q, year).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourrier(row rowScanner) (*model.Courrier, error) {
	var (
		version int
		body    []byte
	)
	if err := row.Scan(&version, &body); err != nil {
		return nil, err
	}
	var c model.Courrier
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("decode courrier: %w", err)
	}
	c.Version = version
	return &c, nil
}

func buildFilter(lq repository.ListQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if lq.Flow != "" {
		add("flow = $%d", string(lq.Flow))
	}
	if lq.Status != "" {
		add("status = $%d", string(lq.Status))
	}
	if lq.Priority != "" {
		add("priority = $%d", lq.Priority)
	}
	if lq.EntityID != "" {
		node, _ := json.Marshal([]map[string]string{{"entityId": lq.EntityID}})
		add("body -> 'nodes' @> $%d::jsonb", string(node))
	}
	if lq.HolderID != "" {
		node, _ := json.Marshal([]map[string]string{{"userId": lq.HolderID, "status": string(model.NodeActive)}})
		add("body -> 'nodes' @> $%d::jsonb", string(node))
	}
	if s := strings.TrimSpace(lq.Search); s != "" {
		add("(number ILIKE $%[1]d OR body -> 'metadata' ->> 'objet' ILIKE $%[1]d OR body -> 'metadata' ->> 'expediteur' ILIKE $%[1]d)",
			"%"+escapeLike(s)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
