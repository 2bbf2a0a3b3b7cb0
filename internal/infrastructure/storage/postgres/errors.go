package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"ricemill/internal/core/apperror"
)

// SQLSTATE codes for values that do not fit their column.
const (
	codeNumericOutOfRange = "22003"
	codeStringTooLong     = "22001"
)

// AsValueError reports whether err is a Postgres data error caused by the
// submitted values and converts it to a 400.
func AsValueError(err error) (*apperror.AppError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	var appErr *apperror.AppError
	switch pgErr.Code {
	case codeNumericOutOfRange:
		appErr = apperror.NewValidation("numeric value out of range")
	case codeStringTooLong:
		appErr = apperror.NewValidation("value too long")
	default:
		return nil, false
	}
	if pgErr.ColumnName != "" {
		appErr = appErr.WithDetail("column", pgErr.ColumnName)
	}
	return appErr, true
}
