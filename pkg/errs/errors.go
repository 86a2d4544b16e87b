package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
)

var (
	ErrInternalServer  = errors.New("Internal server error")
	ErrClient          = errors.New("Bad request")
	ErrNotFound        = errors.New("Product not found")
	ErrInvalidID       = errors.New("Invalid product id")
	ErrInvalidPrice    = errors.New("Price must be a non-negative number")
	ErrEmptyUpdate     = errors.New("No fields to update")
	ErrNoImage         = errors.New("No image uploaded")
	ErrInvalidFilename = errors.New("Invalid image filename")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrClient:          ErrStatusClient,
	ErrNotFound:        ErrStatusNotFound,
	ErrInvalidID:       ErrStatusClient,
	ErrInvalidPrice:    ErrStatusClient,
	ErrEmptyUpdate:     ErrStatusClient,
	ErrNoImage:         ErrStatusClient,
	ErrInvalidFilename: ErrStatusInternalServer,
}

// GetErrorStatusCode maps err, or the first known error it wraps, to an HTTP
// status. Anything unknown is an internal server error.
func GetErrorStatusCode(err error) int {
	if statusCode, ok := errorMap[err]; ok {
		return statusCode
	}

	for known, statusCode := range errorMap {
		if errors.Is(err, known) {
			return statusCode
		}
	}

	return errorMap[ErrInternalServer]
}
