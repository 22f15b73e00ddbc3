package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx backend response, with the error message already
// normalized out of whatever payload shape the backend used.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is a backend 401. This is the one
// signal the refresh coordinator acts on.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized
}
