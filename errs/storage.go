package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrStorageWrite = errors.New("attachment write failed")
	ErrStorageRead  = errors.New("attachment read failed")
)

// NewStorageError maps a blob store failure to a 500. Attachment-delete
// failures are never wrapped with this: those are logged and swallowed because
// the primary entity mutation already succeeded.
func NewStorageError(operation, name string, cause error) *ApiErr {
	sentinel := ErrStorageWrite
	if operation == "read" || operation == "open" {
		sentinel = ErrStorageRead
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        sentinel,
		Details:    fmt.Sprintf("Failed to %s attachment %s", operation, name),
		Cause:      cause,
	}
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageWrite) || errors.Is(err, ErrStorageRead)
}
