package fetcher

import (
	"errors"
	"fmt"
)

// Error kinds. Check them with errors.Is.
var (
	// ErrNetwork means the call did not complete: connection refused,
	// timeout, cancelled context.
	ErrNetwork = errors.New("fetcher: network error")

	// ErrHTTPStatus means the backend answered with a non-2xx status.
	ErrHTTPStatus = errors.New("fetcher: unsuccessful http status")

	// ErrDecode means a 2xx body was not valid JSON.
	ErrDecode = errors.New("fetcher: malformed response body")
)

// Op names the operation a request belonged to.
type Op string

const (
	OpList   Op = "fetch students"
	OpCreate Op = "create student"
	OpUpdate Op = "update student"
	OpDelete Op = "delete student"
)

// RequestError is returned by every API method when a request fails.
type RequestError struct {
	Op Op
	// Kind is one of ErrNetwork, ErrHTTPStatus or ErrDecode.
	Kind error
	// StatusCode is set for ErrHTTPStatus.
	StatusCode int
	// Body holds the start of an error response body, if any.
	Body string
	// Err is the underlying cause, nil for ErrHTTPStatus.
	Err error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: %s: HTTP %d: %s", e.Op, e.Kind, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: HTTP %d", e.Op, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *RequestError) Is(target error) bool { return errors.Is(e.Kind, target) }
func (e *RequestError) Unwrap() error        { return e.Err }

// Message is the text shown to the user, e.g. "Failed to fetch students".
func (e *RequestError) Message() string {
	return "Failed to " + string(e.Op)
}

// Message returns the user-facing text for err: the operation summary for
// a *RequestError, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message()
	}
	return err.Error()
}
