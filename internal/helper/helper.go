package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Index names created during migration. The unique-violation mapping below is
// what turns a lost insert race into a client-visible 409.
const (
	PendingRequestIndex = "uidx_nda_requests_pending"
	ActiveNDAIndex      = "uidx_signed_ndas_active"
)

func IsDuplicatePendingRequest(err error) bool {
	return isUniqueViolation(err, PendingRequestIndex)
}

func IsDuplicateActiveNDA(err error) bool {
	return isUniqueViolation(err, ActiveNDAIndex)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}
