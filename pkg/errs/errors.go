package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusNoPermission           = http.StatusForbidden
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrBadGateway                   = http.StatusBadGateway
)

var (
	ErrInternalServer  = errors.New("Internal server error")
	ErrClient          = errors.New("Bad request")
	ErrNotLoggedIn     = errors.New("Unauthorized access")
	ErrNoSellerRole    = errors.New("Seller role is required")
	ErrNotFound        = errors.New("Resource not found")
	ErrProductNotFound = errors.New("Product not found in the current collection")
	ErrModalMismatch   = errors.New("The requested modal is not open")
	ErrFileTooLarge    = errors.New("File size exceeds 2MB limit")
	ErrInvalidFileType = errors.New("Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed")
	ErrUpstream        = errors.New("Upstream service request failed")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrClient:          ErrStatusClient,
	ErrNotLoggedIn:     ErrStatusNotLoggedIn,
	ErrNoSellerRole:    ErrStatusNoPermission,
	ErrNotFound:        ErrStatusNotFound,
	ErrProductNotFound: ErrStatusNotFound,
	ErrModalMismatch:   ErrStatusClient,
	ErrFileTooLarge:    ErrStatusFileSizeExceedingLimit,
	ErrInvalidFileType: ErrStatusClient,
	ErrUpstream:        ErrBadGateway,
}

// RemoteError carries a backend failure through to the caller with the
// upstream message intact when one was provided.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrUpstream.Error()
}

func GetErrorStatusCode(err error) int {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode
	}

	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
