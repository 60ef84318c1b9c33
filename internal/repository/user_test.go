package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"comunidad/internal/models"
	"comunidad/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateIsConflict(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &models.User{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "ana", Email: "ana@example.com", Password: "h"}))
	err := repo.Create(ctx, &models.User{Username: "ana", Email: "otra@example.com", Password: "h"})
	assert.True(t, models.IsCode(err, models.CodeConflict))

	got, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana@example.com", got.Email)

	missing, err := repo.GetByEmail(ctx, "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       uint
		mockBehavior func()
		wantCode     string
	}{
		{
			name:   "found",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).AddRow(1, "ana", "ana@example.com"))
			},
		},
		{
			name:   "not found",
			userID: 2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(2, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantCode: models.CodeNotFound,
		},
		{
			name:   "store error",
			userID: 3,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WithArgs(3, 1).
					WillReturnError(errors.New("db error"))
			},
			wantCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)
			if tt.wantCode != "" {
				assert.True(t, models.IsCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ana", user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWriteError_ClassifiesPostgresCodes(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}

	assert.True(t, models.IsCode(writeError(unique, "User"), models.CodeConflict))
	assert.True(t, models.IsCode(writeError(fk, "Reply"), models.CodeNotFound))
	assert.True(t, models.IsCode(writeError(errors.New("boom"), "Reply"), models.CodeInternal))
	assert.Nil(t, writeError(nil, "Reply"))

	validation := models.NewValidationError("bad")
	assert.Same(t, validation, writeError(validation, "Reply"))
}
