package errors

import (
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres SQLSTATE values with a dedicated mapping; classes cover the rest
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlUndefinedTable      = "42P01"
	sqlCannotConnectNow    = "57P03"
	sqlReadOnlyTx          = "25006"

	classDataException     = "22"
	classIntegrity         = "23"
	classConnection        = "08"
	classResourceExhausted = "53"
	classOperatorAction    = "57"
)

// pgCode maps a postgres error to a code; ok is false for non postgres errors
func pgCode(err error) (ErrorCode, *pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeDB, nil, false
	}
	switch pgErr.Code {
	case sqlUniqueViolation:
		return ErrorCodeConflict, pgErr, true
	case sqlForeignKeyViolation:
		return ErrorCodeInvalidArgument, pgErr, true
	case sqlUndefinedTable, sqlCannotConnectNow, sqlReadOnlyTx:
		return ErrorCodeUnavailable, pgErr, true
	}
	if len(pgErr.Code) < 2 {
		return ErrorCodeDB, pgErr, true
	}
	switch pgErr.Code[:2] {
	case classDataException:
		return ErrorCodeInvalidArgument, pgErr, true
	case classIntegrity:
		return ErrorCodeValidation, pgErr, true
	case classConnection, classResourceExhausted, classOperatorAction:
		return ErrorCodeUnavailable, pgErr, true
	}
	return ErrorCodeDB, pgErr, true
}

// FromPostgres wraps err with the code its SQLSTATE maps to. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _, _ := pgCode(err)
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// FromPostgresWithField is FromPostgres plus the offending column as field,
// taken from the column name or the constraint suffix (filters_name_key -> name)
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	_, pgErr, ok := pgCode(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(out, col)
	}
	c := strings.TrimSuffix(strings.TrimSpace(pgErr.ConstraintName), "_key")
	if i := strings.LastIndex(c, "_"); i >= 0 && i+1 < len(c) {
		return WithField(out, c[i+1:])
	}
	return out
}
