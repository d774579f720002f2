package protocol

import (
	"errors"
	"fmt"
	"net"
)

// Kinds of decoding failures. Use errors.Is to test a *DecodingError against them.
var (
	ErrTooShort         = errors.New("datagram too short")
	ErrUnexpectedAction = errors.New("unexpected action")
	ErrTruncated        = errors.New("truncated field")
	ErrInvalidField     = errors.New("invalid field")
)

// DecodingError is returned by every decode function when a datagram is rejected.
// Expected and Actual hold the length or action code that caused the rejection.
type DecodingError struct {
	Message  string
	Kind     error
	Detail   string
	Expected uint64
	Actual   uint64
	Err      error
}

func (e *DecodingError) Error() string {
	s := e.Message + ": " + e.Kind.Error()
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *DecodingError) Is(target error) bool {
	return target == e.Kind
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

func tooShort(message string, min, actual int) error {
	return &DecodingError{
		Message:  message,
		Kind:     ErrTooShort,
		Detail:   fmt.Sprintf("should be at least %d bytes long, got %d", min, actual),
		Expected: uint64(min),
		Actual:   uint64(actual),
	}
}

func unexpectedAction(message string, expected, actual Action) error {
	return &DecodingError{
		Message:  message,
		Kind:     ErrUnexpectedAction,
		Detail:   fmt.Sprintf("expected action %s (%#x) but got (%#x)", expected, uint32(expected), uint32(actual)),
		Expected: uint64(expected),
		Actual:   uint64(actual),
	}
}

func truncated(message string, err error) error {
	return &DecodingError{
		Message: message,
		Kind:    ErrTruncated,
		Err:     err,
	}
}

func invalidField(message string, err error) error {
	return &DecodingError{
		Message: message,
		Kind:    ErrInvalidField,
		Err:     err,
	}
}

// InvalidPeerError describes a peer record that has the right length but unusable content.
type InvalidPeerError struct {
	IP     []byte
	Port   int
	Reason string
}

func (e *InvalidPeerError) Error() string {
	return fmt.Sprintf("invalid peer %v:%d: %s", net.IP(e.IP), e.Port, e.Reason)
}

func (e *InvalidPeerError) Is(target error) bool {
	return target == ErrInvalidField
}
