package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/b4ugo/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// It understands both already-converted *Error values and raw
// *pgconn.PgError values anywhere in the chain.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Detail returns the value that is passed through to clients as the
// underlying store error.
//
// PostgreSQL errors become a structured *Error; anything else is reduced
// to its message, since arbitrary Go errors don't serialize usefully.
func Detail(err error) any {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	return err.Error()
}

// StoreFailure wraps a failed list/get/delete call into a 500 response
// carrying the store error.
func StoreFailure(message string, err error) *errs.HTTPError {
	return errs.NewStoreFailure(message, err, Detail(err))
}

// ValidationFailure wraps a failed create/update call into a 400
// response carrying the store error.
func ValidationFailure(message string, err error) *errs.HTTPError {
	return errs.NewValidationFailure(message, err, Detail(err))
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"famous_food" -> "Famous Food"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// getEntityName infers a human entity name from a table name,
// singularized crudely by dropping a trailing "s".
func getEntityName(tableName string) string {
	if tableName == "" {
		return "record"
	}

	entity := tableName
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

// HandleError converts an error nobody classified into an application error.
//
// This is the global error handler's fallback, so anything reaching it
// escaped the service layer:
//   - *errs.HTTPError: returned unchanged
//   - client-fault PostgreSQL errors: 400 with the structured detail
//   - other PostgreSQL errors: 500 with the structured detail
//   - ErrNoRows: 404
//   - anything else: generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		message := fmt.Sprintf("Error processing %s", strings.ToLower(getEntityName(sqlErr.TableName)))

		if sqlErr.Code.IsClientFault() {
			return errs.NewValidationFailure(message, err, sqlErr)
		}
		return errs.NewStoreFailure(message, err, sqlErr)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found")
	}

	return errs.NewInternalServerError()
}
