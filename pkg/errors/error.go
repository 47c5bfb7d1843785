package errors

import (
	"bytes"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ValidationError represents an error for a record that failed validation.
	ValidationError ErrorCode = "validation_error"
	// AggregationContractError represents an invalid timeframe aggregation request.
	AggregationContractError ErrorCode = "aggregation_contract_error"
	// ExchangeFetchError represents an error fetching data from an exchange.
	ExchangeFetchError ErrorCode = "exchange_fetch_error"
	// StoreFlushError represents an error flushing a batch to the durable store.
	StoreFlushError ErrorCode = "store_flush_error"

	// CacheConfigError represents an error when the cache configuration is invalid or nil.
	CacheConfigError ErrorCode = "cache_config_error"
	// CacheConnectionError represents an error when connecting to the cache.
	CacheConnectionError ErrorCode = "cache_connection_error"
	// CacheGetError represents an error when getting a value from the cache.
	CacheGetError ErrorCode = "cache_get_error"
	// CacheSetError represents an error when setting a value in the cache.
	CacheSetError ErrorCode = "cache_set_error"
	// CacheDelError represents an error when deleting a value from the cache.
	CacheDelError ErrorCode = "cache_del_error"
	// CachePingError represents an error when pinging the cache.
	CachePingError ErrorCode = "cache_ping_error"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	Message string

	// Code (required) is the user-defined error code string.
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code string) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == code
}

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}
