package mock

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/nanoncore/nano-layer1/types"
	"github.com/nanoncore/nano-layer1/vendors/common"
)

// Device simulates a Telebyte 600-6SL chassis speaking its line protocol.
// It is shared by every session dialed from it.
type Device struct {
	mu         sync.Mutex
	model      string
	revision   string
	serial     string
	software   string
	slotCount  int
	slots      map[int]*Module
	absent     map[int]string
	cmdHistory []string
	failNext   error
	sessions   int
}

// Module is a populated slot.
type Module struct {
	Model    string
	Revision string
	Serial   string
	Outputs  int
	Inputs   int

	// connections maps an output letter to an input number (0 = none)
	connections map[string]int
}

// NewDevice returns a 600-6SL with one 600-SM-16-1-2 module in slot 1 and
// slots 2..6 empty, matching the reference transcript.
func NewDevice() *Device {
	d := &Device{
		model:     "600-6SL",
		revision:  "A",
		serial:    "TB8216",
		software:  "Mux-2.6.0.1",
		slotCount: 6,
		slots:     make(map[int]*Module),
		absent: map[int]string{
			2: "Module Not Found",
			3: "Data is not available",
			4: "Module Not Found",
			5: "Data is not available",
			6: "Module Not Found",
		},
	}
	m := d.InsertModule(1, "600-SM-16-1-2", "A.1", "TB8129", 16, 2)
	m.connections["A"] = 1
	m.connections["C"] = 1
	m.connections["D"] = 2
	return d
}

// InsertModule places a module in slot, replacing whatever was there.
func (d *Device) InsertModule(slot int, model, revision, serial string, outputs, inputs int) *Module {
	d.mu.Lock()
	defer d.mu.Unlock()

	m := &Module{
		Model:       model,
		Revision:    revision,
		Serial:      serial,
		Outputs:     outputs,
		Inputs:      inputs,
		connections: make(map[string]int, outputs),
	}
	for i := 0; i < outputs; i++ {
		m.connections[common.OutputLabel(i)] = 0
	}
	d.slots[slot] = m
	delete(d.absent, slot)
	if slot > d.slotCount {
		d.slotCount = slot
	}
	return m
}

// RemoveModule empties slot; reason is the device error reported for it.
func (d *Device) RemoveModule(slot int, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.slots, slot)
	d.absent[slot] = reason
}

// Connections returns a copy of the connection table of slot.
func (d *Device) Connections(slot int) map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.slots[slot]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(m.connections))
	for k, v := range m.connections {
		out[k] = v
	}
	return out
}

// FailNext makes the next command fail at the transport level.
func (d *Device) FailNext(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNext = err
}

// CommandHistory returns every command received so far.
func (d *Device) CommandHistory() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.cmdHistory...)
}

// OpenSessions returns the number of sessions not yet closed.
func (d *Device) OpenSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessions
}

// Dial opens a session on the device. It implements types.Dialer.
func (d *Device) Dial(ctx context.Context, config *types.EquipmentConfig) (types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, &types.TransportError{Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return nil, &types.TransportError{Err: err}
	}
	d.sessions++
	d.cmdHistory = append(d.cmdHistory, "connect")
	return &Session{device: d}, nil
}

// Session is one simulated CLI session.
type Session struct {
	device *Device
	closed bool
}

// ExecCommand returns the device reply to command.
func (s *Session) ExecCommand(ctx context.Context, command string) (string, error) {
	if s.closed {
		return "", &types.TransportError{Command: command, Err: types.ErrNotConnected}
	}
	if err := ctx.Err(); err != nil {
		return "", &types.TransportError{Command: command, Err: err}
	}
	return s.device.handle(command)
}

// ExecCommands runs commands in order, stopping at the first failure.
func (s *Session) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		out, err := s.ExecCommand(ctx, cmd)
		if err != nil {
			return results, err
		}
		results = append(results, out)
	}
	return results, nil
}

// Close ends the session. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	s.device.sessions--
	s.device.cmdHistory = append(s.device.cmdHistory, "disconnect")
	return nil
}

var (
	showSlotRe = regexp.MustCompile(`^show slot-id (\S+)$`)
	showConRe  = regexp.MustCompile(`^show con (\S+) all$`)
	setConRe   = regexp.MustCompile(`^set con (\S+) (\S+)$`)
	setTermRe  = regexp.MustCompile(`^set term (\S+) (\S+)$`)
	tokenRe    = regexp.MustCompile(`^([A-Za-z]+):(\d+)$`)
)

func (d *Device) handle(command string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cmdHistory = append(d.cmdHistory, command)
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return "", &types.TransportError{Command: command, Err: err}
	}

	cmd := strings.TrimSpace(command)
	switch {
	case cmd == "show system software":
		return accepted(cmd, fmt.Sprintf("%q %s", "software", d.software)), nil
	case cmd == "show sys-id":
		return "ACCEPTED SUCCESSFULLY\n\n" + d.sysID(), nil
	case showSlotRe.MatchString(cmd):
		slot := showSlotRe.FindStringSubmatch(cmd)[1]
		m, reason := d.module(slot)
		if m == nil {
			return rejected(reason), nil
		}
		return accepted(cmd, fmt.Sprintf("Slot: %s\n  PN: %s\n  Rev: %s\n  SN: %s\n", slot, m.Model, m.Revision, m.Serial)), nil
	case showConRe.MatchString(cmd):
		slot := showConRe.FindStringSubmatch(cmd)[1]
		m, reason := d.module(slot)
		if m == nil {
			return rejected(reason), nil
		}
		return accepted(cmd, "Slot: "+slot+"\n"+m.connectionTable()), nil
	case setConRe.MatchString(cmd):
		parts := setConRe.FindStringSubmatch(cmd)
		m, reason := d.module(parts[1])
		if m == nil {
			return rejected(reason), nil
		}
		token := tokenRe.FindStringSubmatch(parts[2])
		if token == nil {
			return rejected("Invalid Input"), nil
		}
		out := strings.ToUpper(token[1])
		if _, ok := m.connections[out]; !ok {
			return rejected("Invalid Output"), nil
		}
		in, _ := strconv.Atoi(token[2])
		if in < 1 || in > m.Inputs {
			return rejected("Invalid Input Channel"), nil
		}
		m.connections[out] = in
		return accepted(strings.ToLower(cmd), ""), nil
	case setTermRe.MatchString(cmd):
		parts := setTermRe.FindStringSubmatch(cmd)
		m, reason := d.module(parts[1])
		if m == nil {
			return rejected(reason), nil
		}
		out := strings.ToUpper(parts[2])
		if _, ok := m.connections[out]; !ok {
			return rejected("Invalid Output"), nil
		}
		m.connections[out] = 0
		return accepted(strings.ToLower(cmd), ""), nil
	default:
		return fmt.Sprintf("-sh: %s: command not found", cmd), nil
	}
}

// module resolves a slot argument; on failure it returns the device reason.
func (d *Device) module(arg string) (*Module, string) {
	slot, err := strconv.Atoi(arg)
	if err != nil || slot < 1 || slot > d.slotCount {
		return nil, "Invalid Slot Number"
	}
	if m, ok := d.slots[slot]; ok {
		return m, ""
	}
	if reason, ok := d.absent[slot]; ok {
		return nil, reason
	}
	return nil, "Module Not Found"
}

func (d *Device) sysID() string {
	var b strings.Builder
	fmt.Fprintf(&b, "System P/N: %s\n", d.model)
	fmt.Fprintf(&b, "System Rev: %s\n", d.revision)
	fmt.Fprintf(&b, "System S/N: %s\n", d.serial)
	b.WriteString("Carrier P/N: 0519-0727\nCarrier Rev: C\nCarrier S/N: SUB1453\n")
	b.WriteString("SBC P/N: TS4200\nSBC Rev: E\nSBC S/N: 4EFF30\n")
	return b.String()
}

func (m *Module) connectionTable() string {
	labels := make([]string, 0, len(m.connections))
	for label := range m.connections {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(labels[i]) != len(labels[j]) {
			return len(labels[i]) < len(labels[j])
		}
		return labels[i] < labels[j]
	})
	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, "%s:%d;\n", label, m.connections[label])
	}
	return b.String()
}

func accepted(cmd, payload string) string {
	if payload == "" {
		return "ACCEPTED  " + cmd
	}
	return "ACCEPTED  " + cmd + "\n\n" + payload
}

func rejected(reason string) string {
	return "ERROR  " + reason
}

var (
	_ types.Dialer  = (*Device)(nil)
	_ types.Session = (*Session)(nil)
)
