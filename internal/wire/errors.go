package wire

import (
	"errors"
	"fmt"
)

// ErrConnectionClosed reports a short read: the peer closed the stream before
// or during a frame.
var ErrConnectionClosed = errors.New("connection closed")

// FramingError reports a frame whose length fields cannot be trusted.
type FramingError struct {
	Field  string
	Value  int32
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s=%d: %s", e.Field, e.Value, e.Reason)
}

// BadRequestError reports a fully read request with invalid contents.
type BadRequestError struct {
	Reason string
	Err    error
}

func (e *BadRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Reason, e.Err)
	}
	return "bad request: " + e.Reason
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}
