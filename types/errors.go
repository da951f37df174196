package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structured error below unwraps to one of these so
// callers can test the class with errors.Is.
var (
	ErrTransport            = errors.New("transport failure")
	ErrProtocol             = errors.New("unrecognized device response")
	ErrInvalidSlot          = errors.New("invalid slot number")
	ErrAddressFormat        = errors.New("wrong address format")
	ErrPortFormat           = errors.New("wrong port name structure")
	ErrUnsupportedOperation = errors.New("operation not supported")
	ErrMissingParameter     = errors.New("missing command parameter")
	ErrDeviceRejected       = errors.New("command rejected by device")
	ErrNotConnected         = errors.New("not connected to device")
)

// TransportError wraps a failure of the underlying session.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	return fmt.Sprintf("transport failure on %q: %v", e.Command, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ProtocolError reports a reply carrying neither the ACCEPTED nor the ERROR marker.
type ProtocolError struct {
	Command  string
	Response string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unrecognized response to %q: %q", e.Command, e.Response)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}

// InvalidSlotError reports that the device declared the slot out of range.
type InvalidSlotError struct {
	Slot string
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("invalid slot number %s", e.Slot)
}

func (e *InvalidSlotError) Unwrap() error {
	return ErrInvalidSlot
}

// CommandError carries an ERROR reply that the operation cannot fold into an
// empty result.
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %s", e.Command, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return ErrDeviceRejected
}

// FormatKind tells which grammar rejected the input.
type FormatKind string

const (
	FormatAddress FormatKind = "address"
	FormatPort    FormatKind = "port"
)

// FormatError reports malformed caller input.
type FormatError struct {
	Kind     FormatKind
	Input    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wrong %s format %q, expected %s", e.Kind, e.Input, e.Expected)
}

func (e *FormatError) Unwrap() error {
	if e.Kind == FormatPort {
		return ErrPortFormat
	}
	return ErrAddressFormat
}

// MissingParameterError reports a template placeholder without a value.
type MissingParameterError struct {
	Template  string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("template %q: no value for {%s}", e.Template, e.Parameter)
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// UnsupportedError names the operation the device family does not implement.
type UnsupportedError struct {
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Operation)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedOperation
}
