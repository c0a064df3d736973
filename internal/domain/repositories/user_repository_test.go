package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/entities"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByEmailNormalizesInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = \$1 AND active = \$2`).
		WithArgs("ana@minedu.gob.pe", true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "active"}).
			AddRow(3, "ana@minedu.gob.pe", "Ana", "admin", true))

	user, err := repo.FindByEmail(context.Background(), "  Ana@Minedu.gob.pe ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "admin", user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "nadie@minedu.gob.pe")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entities.User{Email: "Ana@minedu.gob.pe", Name: "Ana"})
	assert.True(t, errors.Is(err, errs.ErrConflict))
}
