package github

import (
	"errors"
	"fmt"

	gh "github.com/google/go-github/v72/github"
)

// ErrUpstream is the sentinel every failed API call wraps
var ErrUpstream = errors.New("upstream request failed")

// UpstreamError is a failed API call. Message is meant for the user.
type UpstreamError struct {
	Op      string
	Message string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

// UserMessage returns the user facing text for err, or err.Error()
func UserMessage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}

func upstreamError(op, message string, resp *gh.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	return &UpstreamError{Op: op, Message: message, Status: status, Err: err}
}
