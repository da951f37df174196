package telebyte

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nanoncore/nano-layer1/types"
)

// fakeSession answers commands from a fixed table and records them.
type fakeSession struct {
	replies  map[string]string
	err      error
	commands []string
	closed   bool
}

func (f *fakeSession) ExecCommand(ctx context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return "", f.err
	}
	reply, ok := f.replies[command]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", command)
	}
	return reply, nil
}

func (f *fakeSession) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	var out []string
	for _, c := range commands {
		r, err := f.ExecCommand(ctx, c)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

// fakeDialer hands out one fakeSession and counts dials.
type fakeDialer struct {
	session *fakeSession
	err     error
	dials   int
	configs []*types.EquipmentConfig
}

func (d *fakeDialer) Dial(ctx context.Context, config *types.EquipmentConfig) (types.Session, error) {
	d.dials++
	d.configs = append(d.configs, config)
	if d.err != nil {
		return nil, d.err
	}
	return d.session, nil
}

func testLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}

// Replies captured from a 600-6SL chassis
const (
	softwareReply = "ACCEPTED  show system software\n\n\"software\" Mux-2.6.0.1\n"
	sysIDReply    = `ACCEPTED SUCCESSFULLY

System P/N: 600-6SL
System Rev: A
System S/N: TB8216
Carrier P/N: 0519-0727
Carrier Rev: C
Carrier S/N: SUB1453
SBC P/N: TS4200
SBC Rev: E
SBC S/N: 4EFF30
`
	slotOneReply = `ACCEPTED  show slot-id 1

Slot: 1
  PN: 600-SM-16-1-2
  Rev: A.1
  SN: TB8129
`
	conOneReply = `ACCEPTED  show con 1 all

Slot: 1
A:1;
B:0;
C:1;
D:2;
E:0;
`
)
