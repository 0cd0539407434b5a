package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// errors is an optional slice of field errors (validation errors).
func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusBadRequest),
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Not-found responses never carry an underlying error.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusNotFound),
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Status:  http.StatusTooManyRequests,
		Message: message,
	}
}

// NewInternalServerError creates a 500 with the generic status text and
// no detail.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// NewValidationFailure reports that the store (or the body decoder)
// rejected a create/update payload: 400 with the raw error attached.
//
// detail is what the client sees under "error"; a nil detail falls back
// to err's message.
func NewValidationFailure(message string, err error, detail any) *HTTPError {
	return &HTTPError{
		Code:    "VALIDATION_FAILURE",
		Status:  http.StatusBadRequest,
		Message: message,
		Detail:  detailOrMessage(err, detail),
		Err:     err,
	}
}

// NewStoreFailure reports any other store-level fault: 500 with the raw
// error attached.
func NewStoreFailure(message string, err error, detail any) *HTTPError {
	return &HTTPError{
		Code:    "STORE_FAILURE",
		Status:  http.StatusInternalServerError,
		Message: message,
		Detail:  detailOrMessage(err, detail),
		Err:     err,
	}
}

func detailOrMessage(err error, detail any) any {
	if detail != nil || err == nil {
		return detail
	}
	return err.Error()
}
