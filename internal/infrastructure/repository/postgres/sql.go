package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolationCode = "23505"
	// Raised when a path id is not a valid UUID literal.
	invalidTextRepresentationCode = "22P02"
)

// isNotFound also covers malformed ids: no row can match an id the UUID
// columns cannot represent.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || hasPQCode(err, invalidTextRepresentationCode)
}

func isUniqueViolation(err error) bool {
	return hasPQCode(err, uniqueViolationCode)
}

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

// execAffected runs a write and reports whether any row matched it.
func execAffected(ctx context.Context, db *sqlx.DB, op, query string, args []any) (bool, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if hasPQCode(err, invalidTextRepresentationCode) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return affected > 0, nil
}
