// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields) defined in struct tags and extracts
// validation errors into a format the client can understand.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/b4ugo/internal/errs"
)

// DefaultBindFailureMessage is used for bind errors on requests that do
// not name their own message.
const DefaultBindFailureMessage = "Invalid request body"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validator.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// BindFailureMessager is implemented by requests whose body decoding
// failures should carry an operation-specific message, e.g. "Error
// creating service".
type BindFailureMessager interface {
	BindFailureMessage() string
}

// PathParamsHolder is implemented by requests with fields bound from
// path parameters. PathParams maps each parameter name to its field.
type PathParamsHolder interface {
	PathParams() map[string]*string
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the request struct from path params and body.
// 2) path parameters are percent-decoded (see decodePathParams).
// 3) payload.Validate() applies validation rules.
//
// A body that cannot be decoded (bad JSON, a number where a list is
// expected) becomes a 400 ValidationFailure whose "error" is the decoder's
// complaint. Rule violations become a 400 with field-level errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := DefaultBindFailureMessage
		if m, ok := payload.(BindFailureMessager); ok {
			message = m.BindFailureMessage()
		}
		return errs.NewValidationFailure(message, err, bindErrorDetail(err))
	}

	if fieldErrors := decodePathParams(c, payload); fieldErrors != nil {
		return errs.NewBadRequestError("Validation failed", fieldErrors)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, fieldErrors)
	}

	return nil
}

// bindErrorDetail extracts the client-facing text from an echo bind
// error. Echo puts a readable summary in Message and the decoder error in
// Internal.
func bindErrorDetail(err error) string {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return err.Error()
	}

	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		return msg
	}
	if echoErr.Internal != nil {
		return echoErr.Internal.Error()
	}
	return err.Error()
}

// decodePathParams percent-decodes the path parameters of payload.
//
// Echo routes on URL.RawPath when the client's escaping differs from Go's
// default, and then hands out parameters still encoded ("Trinidad%20%26%20Tobago").
// When RawPath is empty the parameters are already decoded and are left
// alone, so a literal '%' in a name survives.
func decodePathParams(c echo.Context, payload any) []errs.FieldError {
	holder, ok := payload.(PathParamsHolder)
	if !ok || c.Request().URL.RawPath == "" {
		return nil
	}

	var fieldErrors []errs.FieldError
	for name, field := range holder.PathParams() {
		decoded, err := url.PathUnescape(*field)
		if err != nil {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: name,
				Error: "is not a valid escaped path segment",
			})
			continue
		}
		*field = decoded
	}
	return fieldErrors
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Neither shape: report it as a single request-level problem.
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min means length for strings, value for numbers.
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "dive":
			msg = "some items are invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
