package postgres

import (
	"testing"

	domainerrors "bazaar/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConstraintClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uni_users_username"}

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(unique, "failed to create user")))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection reset by peer")))

	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgNotNullViolation}))

	assert.Equal(t, "uni_users_username", uniqueConstraintName(unique))
	assert.Empty(t, uniqueConstraintName(errors.New("connection reset by peer")))
}

func TestClassifyUserConflict(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{
			name:       "email constraint maps to email conflict",
			constraint: "uni_users_email",
			want:       domainerrors.ErrEmailTaken,
		},
		{
			name:       "username constraint maps to username conflict",
			constraint: "uni_users_username",
			want:       domainerrors.ErrUsernameTaken,
		},
		{
			name:       "unknown constraint still surfaces as a conflict",
			constraint: "users_pkey",
			want:       domainerrors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyUserConflict(&pgconn.PgError{
				Code:           pgUniqueViolation,
				ConstraintName: tt.constraint,
			})

			assert.ErrorIs(t, err, tt.want)
		})
	}
}
