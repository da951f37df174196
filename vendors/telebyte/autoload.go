package telebyte

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/nano-layer1/types"
)

// AutoloadActions runs the read-only inventory queries on one session.
type AutoloadActions struct {
	exec *CommandExecutor
	log  *logrus.Entry
}

// NewAutoloadActions wraps a session.
func NewAutoloadActions(cli types.CLIExecutor, log *logrus.Entry) *AutoloadActions {
	return &AutoloadActions{exec: NewCommandExecutor(cli, log), log: log}
}

// DeviceSoftware returns the software version, or "" when the device does
// not accept the query.
//
//	ACCEPTED  show system software
//
//	"software" Mux-2.6.0.1
func (a *AutoloadActions) DeviceSoftware(ctx context.Context) (string, error) {
	resp, err := a.exec.Query(ctx, CmdSystemSoftware, nil)
	if err != nil {
		return "", err
	}
	if !resp.Accepted() {
		return "", nil
	}
	return ParseSoftwareVersion(resp.Payload), nil
}

// DeviceInfo returns the chassis part and serial number. Missing lines and
// non-accepted replies yield empty fields.
func (a *AutoloadActions) DeviceInfo(ctx context.Context) (DeviceIdentity, error) {
	resp, err := a.exec.Query(ctx, CmdSystemInfo, nil)
	if err != nil {
		return DeviceIdentity{}, err
	}
	if !resp.Accepted() {
		return DeviceIdentity{}, nil
	}
	return ParseDeviceIdentity(resp.Payload), nil
}

// SlotInfo returns the module in slotID. An empty SlotInfo means the module
// is absent or has no data; an out-of-range slot is *types.InvalidSlotError.
func (a *AutoloadActions) SlotInfo(ctx context.Context, slotID string) (SlotInfo, error) {
	resp, err := a.exec.Query(ctx, CmdSlotInfo, Params{"slot_id": slotID})
	if err != nil {
		return SlotInfo{}, err
	}
	if err := slotResult(resp, slotID); err != nil {
		return SlotInfo{}, err
	}
	if !resp.Accepted() {
		return SlotInfo{}, nil
	}

	a.log.WithField("slot", slotID).Debugf("slot detailed info: %s", resp.Raw)

	info, ok := ParseSlotInfo(resp.Payload)
	if !ok {
		return SlotInfo{}, nil
	}
	return info, nil
}

// SlotConnections returns the output-to-input map of slotID, empty if the
// module is absent.
//
//	ACCEPTED  show con 1 all
//
//	Slot: 1
//	A:1;
//	B:0;
func (a *AutoloadActions) SlotConnections(ctx context.Context, slotID string) (ConnectionMap, error) {
	resp, err := a.exec.Query(ctx, CmdGetConnections, Params{"slot_id": slotID})
	if err != nil {
		return nil, err
	}
	if err := slotResult(resp, slotID); err != nil {
		return nil, err
	}
	if !resp.Accepted() {
		return ConnectionMap{}, nil
	}

	a.log.WithField("slot", slotID).Debugf("slot connections info: %s", resp.Raw)

	return ParseConnectionMap(resp.Payload), nil
}

// slotResult applies the slot query rules: Invalid Slot Number is an error,
// other device errors mean "nothing here", unmarked replies are a protocol
// violation.
func slotResult(resp Response, slotID string) error {
	switch resp.Status {
	case StatusAccepted:
		return nil
	case StatusError:
		if TranslateReason(resp.Payload).Class == ClassInvalidSlot {
			return &types.InvalidSlotError{Slot: slotID}
		}
		return nil
	default:
		return resp.Err()
	}
}
