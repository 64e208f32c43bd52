package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entityColumns = []string{"id", "name", "description", "is_active", "id", "firstname", "lastname", "email"}

func TestPostgres_Entity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := NewPostgres(db)
	ctx := context.Background()

	t.Run("with main user", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities e LEFT JOIN users u (.+) WHERE e.id = ").
			WithArgs("daf").
			WillReturnRows(sqlmock.NewRows(entityColumns).
				AddRow("daf", "Direction Financière", "Budget et comptabilité", true, "u3", "Moussa", "Traoré", "m.traore@example.org"))

		e, err := dir.Entity(ctx, "daf")

		require.NoError(t, err)
		assert.Equal(t, "Direction Financière", e.Name)
		assert.True(t, e.IsActive)
		require.NotNil(t, e.MainUser)
		assert.Equal(t, "Moussa Traoré", e.MainUser.FullName())
		assert.Equal(t, "daf", e.MainUser.EntityID)
	})

	t.Run("without main user", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities e").
			WithArgs("cellule").
			WillReturnRows(sqlmock.NewRows(entityColumns).
				AddRow("cellule", "Cellule Communication", "", false, nil, nil, nil, nil))

		e, err := dir.Entity(ctx, "cellule")

		require.NoError(t, err)
		assert.Nil(t, e.MainUser)
		assert.False(t, e.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities e").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		e, err := dir.Entity(ctx, "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, e)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_User(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := NewPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname", "email", "entity_id"}).
			AddRow("u1", "Awa", "Diallo", "a.diallo@example.org", "secretariat"))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
		WithArgs("u2").
		WillReturnError(errors.New("connection reset"))

	u, err := dir.User(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "secretariat", u.EntityID)

	_, err = dir.User(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = dir.User(ctx, "u2")
	assert.EqualError(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListEntities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM entities e (.+) ORDER BY e.name").
		WillReturnRows(sqlmock.NewRows(entityColumns).
			AddRow("daf", "Direction Financière", "", true, "u3", "Moussa", "Traoré", "").
			AddRow("drh", "Ressources Humaines", "", true, nil, nil, nil, nil))

	items, err := NewPostgres(db).ListEntities(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "daf", items[0].ID)
	assert.NotNil(t, items[0].MainUser)
	assert.Nil(t, items[1].MainUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}
