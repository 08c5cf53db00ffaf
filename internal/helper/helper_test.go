package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicatePendingRequest(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: PendingRequestIndex}
	assert.True(t, IsDuplicatePendingRequest(err))
	assert.False(t, IsDuplicateActiveNDA(err))

	wrapped := fmt.Errorf("create: %w", err)
	assert.True(t, IsDuplicatePendingRequest(wrapped))
}

func TestIsDuplicateActiveNDA(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: ActiveNDAIndex}
	assert.True(t, IsDuplicateActiveNDA(err))
	assert.False(t, IsDuplicatePendingRequest(err))
}

func TestUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, IsDuplicatePendingRequest(errors.New("connection reset")))
	assert.False(t, IsDuplicatePendingRequest(&pgconn.PgError{Code: "23503", ConstraintName: PendingRequestIndex}))
	assert.False(t, IsDuplicatePendingRequest(&pgconn.PgError{Code: "23505", ConstraintName: "some_other_index"}))
	assert.False(t, IsDuplicatePendingRequest(nil))
}
