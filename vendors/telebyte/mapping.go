package telebyte

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/nano-layer1/types"
)

// Connection links a lettered output channel to a numeric input.
type Connection struct {
	Channel string
	Input   int
}

// String renders the "set con" token, e.g. "B:1".
func (c Connection) String() string {
	return fmt.Sprintf("%s:%d", c.Channel, c.Input)
}

// InferConnection decides which argument is the numeric input. portA is
// tried as the input first (portB is then the channel); if portA is not an
// integer the roles are swapped.
func InferConnection(portA, portB string) (Connection, error) {
	for _, try := range [][2]string{{portA, portB}, {portB, portA}} {
		input, err := strconv.Atoi(try[0])
		if err == nil {
			return Connection{Channel: try[1], Input: input}, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return Connection{}, &types.FormatError{
				Kind:     types.FormatPort,
				Input:    try[0],
				Expected: "an input number in range",
			}
		}
	}
	return Connection{}, &types.FormatError{
		Kind:     types.FormatPort,
		Input:    portA + "," + portB,
		Expected: "one numeric input and one output channel",
	}
}

// MappingActions runs the connection commands on one session.
type MappingActions struct {
	exec *CommandExecutor
	log  *logrus.Entry
}

// NewMappingActions wraps a session.
func NewMappingActions(cli types.CLIExecutor, log *logrus.Entry) *MappingActions {
	return &MappingActions{exec: NewCommandExecutor(cli, log), log: log}
}

// MapBidi connects portA and portB on slotID, inferring roles with
// InferConnection.
//
//	ACCEPTED  set con 1 b:1
//	ERROR  Invalid Input Channel
func (m *MappingActions) MapBidi(ctx context.Context, slotID, portA, portB string) (Response, error) {
	conn, err := InferConnection(portA, portB)
	if err != nil {
		return Response{}, err
	}
	return m.Connect(ctx, slotID, conn)
}

// Connect sends one "set con" command for an explicit connection.
func (m *MappingActions) Connect(ctx context.Context, slotID string, conn Connection) (Response, error) {
	return m.exec.Query(ctx, CmdSetConnection, Params{"slot_id": slotID, "connection": conn.String()})
}

// MapClear terminates the connection of one output channel on slotID.
func (m *MappingActions) MapClear(ctx context.Context, slotID, channel string) (Response, error) {
	return m.exec.Query(ctx, CmdClearConnection, Params{"slot_id": slotID, "connection": channel})
}
