package telebyte

import (
	"strings"

	"github.com/nanoncore/nano-layer1/types"
	"github.com/nanoncore/nano-layer1/vendors/common"
)

// ResponseStatus is the classification of one device reply.
type ResponseStatus int

const (
	StatusUnrecognized ResponseStatus = iota
	StatusAccepted
	StatusError
)

func (s ResponseStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusError:
		return "error"
	default:
		return "unrecognized"
	}
}

// Reply markers. Matching is case-insensitive.
const (
	markerAccepted = "ACCEPTED"
	markerError    = "ERROR"
)

// Response is a classified reply.
type Response struct {
	// Command is the command text that produced the reply
	Command string

	Status ResponseStatus

	// Payload is the full reply when accepted or unrecognized, and the text
	// after the ERROR marker otherwise
	Payload string

	// Raw is the reply as received
	Raw string
}

// Classify assigns exactly one status to raw. ACCEPTED anywhere wins over
// ERROR anywhere; replies with neither are unrecognized.
func Classify(raw string) Response {
	if common.ContainsFold(raw, markerAccepted) {
		return Response{Status: StatusAccepted, Payload: raw, Raw: raw}
	}
	if i := common.IndexFold(raw, markerError); i >= 0 {
		return Response{Status: StatusError, Payload: raw[i+len(markerError):], Raw: raw}
	}
	return Response{Status: StatusUnrecognized, Payload: raw, Raw: raw}
}

// Accepted reports whether the device accepted the command.
func (r Response) Accepted() bool {
	return r.Status == StatusAccepted
}

// Reason returns the trimmed error phrase of an Error reply.
func (r Response) Reason() string {
	if r.Status != StatusError {
		return ""
	}
	return strings.TrimSpace(r.Payload)
}

// Err converts a non-accepted reply into the matching driver error.
func (r Response) Err() error {
	switch r.Status {
	case StatusAccepted:
		return nil
	case StatusError:
		return &types.CommandError{Command: r.Command, Reason: r.Reason()}
	default:
		return &types.ProtocolError{Command: r.Command, Response: r.Raw}
	}
}
