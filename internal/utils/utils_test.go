package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsPGUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.True(t, IsPGUniqueViolation(dup))
	assert.True(t, IsPGUniqueViolation(fmt.Errorf("create user: %w", dup)))

	assert.False(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsPGUniqueViolation(errors.New("plain error")))
	assert.False(t, IsPGUniqueViolation(nil))
}

func TestPGUniqueConstraint(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_handle_key"}

	name, ok := PGUniqueConstraint(fmt.Errorf("create user: %w", dup))
	assert.True(t, ok)
	assert.Equal(t, "users_handle_key", name)

	name, ok = PGUniqueConstraint(&pgconn.PgError{Code: "23503", ConstraintName: "posts_fk"})
	assert.False(t, ok)
	assert.Empty(t, name)

	_, ok = PGUniqueConstraint(errors.New("plain error"))
	assert.False(t, ok)
}
