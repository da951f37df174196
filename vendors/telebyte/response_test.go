package telebyte

import (
	"errors"
	"testing"

	"github.com/nanoncore/nano-layer1/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantStatus  ResponseStatus
		wantPayload string
	}{
		{"accepted with echo", "ACCEPTED  set con 1 b:1", StatusAccepted, "ACCEPTED  set con 1 b:1"},
		{"accepted lower case", "accepted successfully", StatusAccepted, "accepted successfully"},
		{"accepted in noise", "garbage\n\x00 xx AcCePtEd yy", StatusAccepted, "garbage\n\x00 xx AcCePtEd yy"},
		{"accepted wins over error", "ERROR  x\nACCEPTED", StatusAccepted, "ERROR  x\nACCEPTED"},
		{"error", "ERROR  Module Not Found", StatusError, "  Module Not Found"},
		{"error lower case", "error  Data is not available", StatusError, "  Data is not available"},
		{"error after text", "\nERROR  Invalid Slot Number\n", StatusError, "  Invalid Slot Number\n"},
		{"first error marker used", "ERROR a ERROR b", StatusError, " a ERROR b"},
		{"unrecognized", "-sh: foo: command not found", StatusUnrecognized, "-sh: foo: command not found"},
		{"empty", "", StatusUnrecognized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw)
			if got.Status != tt.wantStatus {
				t.Errorf("Classify(%q).Status = %v, want %v", tt.raw, got.Status, tt.wantStatus)
			}
			if got.Payload != tt.wantPayload {
				t.Errorf("Classify(%q).Payload = %q, want %q", tt.raw, got.Payload, tt.wantPayload)
			}
			if got.Raw != tt.raw {
				t.Errorf("Classify(%q).Raw = %q", tt.raw, got.Raw)
			}
		})
	}
}

func TestResponseErr(t *testing.T) {
	accepted := Classify("ACCEPTED  set con 1 b:1")
	if err := accepted.Err(); err != nil {
		t.Errorf("accepted Err() = %v, want nil", err)
	}

	rejected := Classify("ERROR  Invalid Input Channel")
	rejected.Command = "set con 1 b:3"
	err := rejected.Err()
	if !errors.Is(err, types.ErrDeviceRejected) {
		t.Errorf("error Err() = %v, want ErrDeviceRejected", err)
	}
	var ce *types.CommandError
	if !errors.As(err, &ce) || ce.Reason != "Invalid Input Channel" {
		t.Errorf("error Err() = %#v, want reason %q", err, "Invalid Input Channel")
	}

	if err := Classify("???").Err(); !errors.Is(err, types.ErrProtocol) {
		t.Errorf("unrecognized Err() = %v, want ErrProtocol", err)
	}
}

func TestResponseStatusString(t *testing.T) {
	for status, want := range map[ResponseStatus]string{
		StatusAccepted:     "accepted",
		StatusError:        "error",
		StatusUnrecognized: "unrecognized",
	} {
		if got := status.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestTranslateReason(t *testing.T) {
	tests := []struct {
		reason    string
		wantCode  ErrorCode
		wantClass ErrorClass
	}{
		{"  Invalid Slot Number", ErrCodeInvalidSlot, ClassInvalidSlot},
		{"  invalid slot number", ErrCodeUnknown, ClassAbsent},
		{"  Module Not Found", ErrCodeModuleNotFound, ClassAbsent},
		{"  Data is not available", ErrCodeNoData, ClassAbsent},
		{"  Invalid Input Channel", ErrCodeInvalidInput, ClassRejected},
		{"  Invalid Output", ErrCodeInvalidOutput, ClassRejected},
		{"  Fan failure", ErrCodeUnknown, ClassAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			got := TranslateReason(tt.reason)
			if got.Code != tt.wantCode || got.Class != tt.wantClass {
				t.Errorf("TranslateReason(%q) = %v/%v, want %v/%v", tt.reason, got.Code, got.Class, tt.wantCode, tt.wantClass)
			}
		})
	}
}
