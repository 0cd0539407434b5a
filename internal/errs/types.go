// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for payload validation or HTTPError for API responses)
// so every failure reaches the client with the same shape:
//
//	{ "message": "...", "error": <store detail>, "errors": [<field errors>] }
//
// - Return consistent error shapes to API clients (JSON).
// - Support field-level validation errors for request payloads.
// - Carry the underlying store error through to the client untouched.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "country", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND"), logged only.
//   - Status: HTTP status code, used for the response line only.
//   - Message: human-friendly message.
//   - Errors: per-field validation errors.
//   - Detail: opaque underlying error, serialized as "error".
//   - Err: the original Go error, kept for logging and errors.Unwrap.
type HTTPError struct {
	Code    string       `json:"-"`
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Detail  any          `json:"error,omitempty"`
	Err     error        `json:"-"`
}

// Error returns the Message, so printing/logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the original error to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status; it only matches on type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
