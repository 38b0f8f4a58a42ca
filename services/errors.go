package services

import "net/http"

// Detail messages returned to clients.
const (
	MsgDatabaseUnavailable = "Database not available"
	MsgInvalidProductID    = "Invalid product id"
	MsgProductNotFound     = "Product not found"
	MsgEmptyOrder          = "Order must contain at least one item"
	MsgInternal            = "Internal server error"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func validationFailure(msg string, err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg, Err: err}
}

func notFound(msg string, err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg, Err: err}
}

// storageUnavailable is returned when no database connection is configured.
func storageUnavailable() *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: MsgDatabaseUnavailable}
}

// storageFailure is returned when a configured database fails an operation.
func storageFailure(err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
