package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
	ErrInvalidFieldValue        = errors.New("invalid field value")
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"

	dataExceptionClass        = "22"
	integrityConstraintsClass = "23"
)

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsPermanent reports errors that retrying the same statement cannot fix:
// rejected input, data exceptions (class 22) and constraint violations
// (class 23).
func IsPermanent(err error) bool {
	if errors.Is(err, ErrFieldsNotAllowedToUpdate) || errors.Is(err, ErrInvalidFieldValue) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, dataExceptionClass) || strings.HasPrefix(pgErr.Code, integrityConstraintsClass)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
