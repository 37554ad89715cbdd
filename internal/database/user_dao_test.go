package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/avoronov/cadscreen/internal/model"
)

func pgUniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func TestUniqueViolationError_MapsConstraintToField(t *testing.T) {
	t.Parallel()

	err := uniqueViolationError(pgUniqueViolation("users_email_idx"))
	assert.ErrorIs(t, err, model.ErrEmailTaken)

	err = uniqueViolationError(pgUniqueViolation("users_username_idx"))
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestUniqueViolationError_IsExists(t *testing.T) {
	t.Parallel()

	// Both field-level errors unwrap to the generic exists sentinel.
	for _, constraint := range []string{"users_email_idx", "users_username_idx"} {
		assert.ErrorIs(t, uniqueViolationError(pgUniqueViolation(constraint)), model.ErrExists)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgUniqueViolation("users_email_idx")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgUniqueViolation("users_username_idx"))))

	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
}

func TestUniqueConstraint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users_email_idx", UniqueConstraint(pgUniqueViolation("users_email_idx")))
	assert.Equal(t, "", UniqueConstraint(errors.New("connection refused")))
}
