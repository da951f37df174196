package telebyte

import "strings"

// ErrorCode is a normalized Telebyte device error
type ErrorCode string

const (
	ErrCodeInvalidSlot    ErrorCode = "INVALID_SLOT"
	ErrCodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	ErrCodeNoData         ErrorCode = "DATA_NOT_AVAILABLE"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT_CHANNEL"
	ErrCodeInvalidOutput  ErrorCode = "INVALID_OUTPUT"
	ErrCodeUnknown        ErrorCode = "UNKNOWN"
)

// ErrorClass tells an operation what to do with an ERROR reply.
type ErrorClass int

const (
	// ClassAbsent means "nothing here": fold into an empty result
	ClassAbsent ErrorClass = iota
	// ClassInvalidSlot means the slot is out of range
	ClassInvalidSlot
	// ClassRejected means the device refused a write
	ClassRejected
)

// ErrorMapping describes one known device reason
type ErrorMapping struct {
	Code  ErrorCode
	Human string
	Class ErrorClass
}

// invalidSlotReason is matched case-sensitively, as the device prints it.
const invalidSlotReason = "Invalid Slot Number"

// telebyteErrorPatterns maps device reasons (lower case) to structured errors
var telebyteErrorPatterns = []struct {
	pattern string
	mapping ErrorMapping
}{
	{"module not found", ErrorMapping{ErrCodeModuleNotFound, "No module is inserted in this slot", ClassAbsent}},
	{"data is not available", ErrorMapping{ErrCodeNoData, "Module data is not available yet", ClassAbsent}},
	{"invalid input channel", ErrorMapping{ErrCodeInvalidInput, "Input channel is out of range for this module", ClassRejected}},
	{"invalid output", ErrorMapping{ErrCodeInvalidOutput, "Output channel does not exist on this module", ClassRejected}},
}

// TranslateReason classifies a device error phrase. Unknown reasons are
// treated as absent data, matching how slot queries handle them.
func TranslateReason(reason string) ErrorMapping {
	if strings.Contains(reason, invalidSlotReason) {
		return ErrorMapping{ErrCodeInvalidSlot, "Slot number is out of range for this chassis", ClassInvalidSlot}
	}
	lower := strings.ToLower(reason)
	for _, p := range telebyteErrorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.mapping
		}
	}
	return ErrorMapping{ErrCodeUnknown, strings.TrimSpace(reason), ClassAbsent}
}
