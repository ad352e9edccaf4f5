package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	"github.com/oksasatya/coursehub-user-service/internal/domain/repository"
)

func newMockRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewUserRepository(mock), mock
}

var selectCols = []string{"id", "name", "email", "password_hash", "role", "reset_token", "reset_token_expiry", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "Ada", "ada@x.com", "hash", "student").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &entity.User{ID: "u-1", Name: "Ada", Email: "ada@x.com", PasswordHash: "hash", Role: entity.RoleStudent}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, now, u.CreatedAt)
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "Ada", "ada@x.com", "hash", "student").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	u := &entity.User{ID: "u-1", Name: "Ada", Email: "ada@x.com", PasswordHash: "hash", Role: entity.RoleStudent}
	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "Ada", "ada@x.com", "hash", "student").
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &entity.User{ID: "u-1", Name: "Ada", Email: "ada@x.com", PasswordHash: "hash", Role: entity.RoleStudent})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "db down")
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	tok := "abc"
	exp := now.Add(time.Hour)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ada@x.com").
		WillReturnRows(pgxmock.NewRows(selectCols).
			AddRow("u-1", "Ada", "ada@x.com", "hash", "instructor", &tok, &exp, now, now))

	u, err := repo.GetByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, entity.RoleInstructor, u.Role)
	require.NotNil(t, u.ResetToken)
	assert.Equal(t, "abc", *u.ResetToken)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	exp := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users\s+SET reset_token = \$1, reset_token_expiry = \$2`).
		WithArgs("tok", exp, "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetResetToken(context.Background(), "u-1", "tok", exp))
}

func TestSetResetToken_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	exp := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users`).
		WithArgs("tok", exp, "gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.SetResetToken(context.Background(), "gone", "tok", exp), repository.ErrNotFound)
}

func TestUpdatePassword(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE users\s+SET password_hash = \$1`).
		WithArgs("newhash", "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u-1", "newhash"))
}

func TestUpdateProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE users\s+SET name = \$1`).
		WithArgs("Ada L", pgxmock.AnyArg(), "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	u := &entity.User{ID: "u-1", Name: "Ada L"}
	require.NoError(t, repo.UpdateProfile(context.Background(), u))
	assert.False(t, u.UpdatedAt.IsZero())
}
