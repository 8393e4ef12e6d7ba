package httputils

import (
	"net/http"

	"github.com/ModernExodus/tontoken/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,
		errors.NotInitialized.Code:            http.StatusServiceUnavailable,
		errors.CandidateNotFound.Code:         http.StatusNotFound,
	}
)

// StatusCode maps err to the http status; validation errors are bad
// requests and state errors conflicts.
func StatusCode(err error) int {
	e, ok := err.(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}

	if status, found := ErrorsToStatus[e.Code]; found {
		return status
	}

	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsState(err):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
