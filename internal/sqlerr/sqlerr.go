// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into structured values (e.g. converting SQLSTATE
// 23502 into NotNullViolation) that can be logged, switched on,
// and handed to API clients as the underlying store error.
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	InvalidText         Code = "invalid_text_representation"
	InvalidJSON         Code = "invalid_json_text"
	StringTooLong       Code = "string_data_right_truncation"
	ConnectionFailure   Code = "connection_failure"
	UndefinedTable      Code = "undefined_table"
	QueryCanceled       Code = "query_canceled"
)

// MapCode maps a PostgreSQL SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidText
	case "22P05", "22032":
		return InvalidJSON
	case "22001":
		return StringTooLong
	case "08000", "08003", "08006", "08001", "08004", "57P01":
		return ConnectionFailure
	case "42P01":
		return UndefinedTable
	case "57014":
		return QueryCanceled
	default:
		return Other
	}
}

// IsClientFault reports whether the code points at bad input rather than
// a broken store.
func (c Code) IsClientFault() bool {
	switch c {
	case NotNullViolation, ForeignKeyViolation, UniqueViolation, CheckViolation,
		InvalidText, InvalidJSON, StringTooLong:
		return true
	}
	return false
}

// Severity mirrors PostgreSQL's message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps a PostgreSQL severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is the structured form of a PostgreSQL error.
//
// It is serialized as-is into the "error" field of failure responses.
type Error struct {
	Code           Code     `json:"code"`
	Severity       Severity `json:"severity"`
	DatabaseCode   string   `json:"databaseCode"`
	Message        string   `json:"message"`
	SchemaName     string   `json:"schemaName,omitempty"`
	TableName      string   `json:"tableName,omitempty"`
	ColumnName     string   `json:"columnName,omitempty"`
	DataTypeName   string   `json:"dataTypeName,omitempty"`
	ConstraintName string   `json:"constraintName,omitempty"`

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

// Unwrap returns the driver error this Error was built from.
func (e *Error) Unwrap() error {
	return e.driverErr
}
