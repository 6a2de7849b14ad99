package channel

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoHandler is returned by Send when nothing listens on the channel.
	ErrNoHandler = errors.New("no handler registered for channel")

	// ErrNotImplemented is returned by InvokeMethod when the handler
	// declined the call.
	ErrNotImplemented = errors.New("method not implemented")
)

// Error codes used in error envelopes produced by this package.
const (
	CodeBadCall   = "bad_call"
	CodePanic     = "panic"
	CodeEncode    = "encode_failed"
	CodeNoHandler = "no_handler"
)

// Error is the decoded form of an error envelope.
type Error struct {
	Code    string
	Message string
	Details json.RawMessage
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
