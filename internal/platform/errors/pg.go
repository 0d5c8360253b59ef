package errors

// Postgres-specific helpers mapping pgx errors to project codes

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrNotNullViolation    = "23502"
	pgErrCheckViolation      = "23514"

	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrCannotConnectNow     = "57P03"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsForeignKeyViolation reports whether the error is a foreign key constraint violation
func IsForeignKeyViolation(err error) bool { return IsSQLState(err, pgErrForeignKeyViolation) }

// IsRetryable reports whether a Postgres error is worth retrying
func IsRetryable(err error) bool {
	return IsSQLState(err, pgErrSerializationFailure) ||
		IsSQLState(err, pgErrDeadlockDetected) ||
		IsSQLState(err, pgErrCannotConnectNow)
}

// FromPG maps a pgx error into a project *Error, passing nil through
func FromPG(err error, op string) error {
	if err == nil {
		return nil
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return WithOp(Wrap(err, ErrorCodeDuplicateKey, "duplicate key"), op)
		case pgErrNotNullViolation, pgErrCheckViolation:
			return WithOp(Wrap(err, ErrorCodeValidation, "constraint violation"), op)
		}
	}
	return WithOp(Wrap(err, ErrorCodeDB, "database error"), op)
}
