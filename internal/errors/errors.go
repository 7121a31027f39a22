package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrItemNotFound is returned when no listing exists for an id.
	ErrItemNotFound = errors.New("item not found")
	// ErrBlankTitle is returned when a listing is submitted without a title.
	ErrBlankTitle = errors.New("title is required")
	// ErrMissingCredential is returned when no bearer credential accompanies
	// a mutating request.
	ErrMissingCredential = errors.New("missing bearer credential")
	// ErrInvalidToken is returned when a token fails signature, expiry or
	// parse checks. Callers cannot distinguish which.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotOwner is returned in enforcement mode when the token subject does
	// not match the item owner.
	ErrNotOwner = errors.New("not the item owner")
	// ErrInvalidMessage is returned when a message is missing required fields.
	ErrInvalidMessage = errors.New("invalid message")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case ErrBlankTitle:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_REQUIRED")
	case ErrMissingCredential:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_CREDENTIAL")
	case ErrInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case ErrNotOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrInvalidMessage:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_MESSAGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
