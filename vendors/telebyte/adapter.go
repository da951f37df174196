package telebyte

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/nano-layer1/logging"
	"github.com/nanoncore/nano-layer1/model"
	"github.com/nanoncore/nano-layer1/types"
	"github.com/nanoncore/nano-layer1/vendors/common"
)

// Adapter implements types.Driver for Telebyte Layer-1 chassis.
// Every operation opens its own session and closes it before returning, so
// concurrent operations never share a session.
type Adapter struct {
	dialer types.Dialer
	log    *logrus.Entry

	mu     sync.Mutex
	config *types.EquipmentConfig
}

// NewAdapter creates a Telebyte driver. log may be nil.
func NewAdapter(dialer types.Dialer, config *types.EquipmentConfig, log *logrus.Entry) *Adapter {
	if config == nil {
		config = &types.EquipmentConfig{}
	}
	config = config.Clone()
	if config.Vendor == "" {
		config.Vendor = types.VendorTelebyte
	}
	if log == nil {
		log = logging.WithDevice(config.Address)
	}
	return &Adapter{dialer: dialer, config: config, log: log.WithField("vendor", string(types.VendorTelebyte))}
}

// sessionConfig returns a copy of the current config, pointed at host if set.
func (a *Adapter) sessionConfig(host string) *types.EquipmentConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	cfg := a.config.Clone()
	if host != "" {
		cfg.Address = host
	}
	return cfg
}

// withSession acquires a session, runs fn and releases the session on every
// exit path.
func (a *Adapter) withSession(ctx context.Context, host string, fn func(types.Session) error) (err error) {
	cfg := a.sessionConfig(host)
	if cfg.Address == "" {
		return &types.TransportError{Err: fmt.Errorf("no device address: %w", types.ErrNotConnected)}
	}

	session, err := a.dialer.Dial(ctx, cfg)
	if err != nil {
		var te *types.TransportError
		if errors.As(err, &te) {
			return err
		}
		return &types.TransportError{Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			a.log.WithError(cerr).Warn("failed to close session")
		}
	}()

	return fn(session)
}

// Login stores the credentials and verifies them by reading the device
// identity. address may be a bare host or a discovery address.
func (a *Adapter) Login(ctx context.Context, address, username, password string) error {
	host := LoginHost(address)

	a.mu.Lock()
	a.config.Address = host
	a.config.Username = username
	a.config.Password = password
	a.mu.Unlock()

	return a.withSession(ctx, host, func(s types.Session) error {
		id, err := NewAutoloadActions(s, a.log).DeviceInfo(ctx)
		if err != nil {
			return err
		}
		a.log.WithField("host", host).Infof("Model: %s, Serial: %s", id.Model, id.Serial)
		return nil
	})
}

// GetResourceDescription discovers the chassis and the blade named in a
// "<host>:<blade>:<port1>:<port2>" address. A missing module yields a
// chassis without children.
func (a *Adapter) GetResourceDescription(ctx context.Context, address string) (*model.ResourceDescription, error) {
	addr, err := ParseDiscoveryAddress(address)
	if err != nil {
		return nil, err
	}

	var chassis *model.Chassis
	err = a.withSession(ctx, addr.Host, func(s types.Session) error {
		actions := NewAutoloadActions(s, a.log)

		c, err := a.describeChassis(ctx, actions, addr.Host)
		if err != nil {
			return err
		}

		slot, err := actions.SlotInfo(ctx, addr.Blade)
		if err != nil {
			return err
		}
		a.log.WithField("slot", addr.Blade).Debugf("slot info: %+v", slot)

		if !slot.Empty() {
			c.AddBlade(buildModule(addr, slot))
		}
		chassis = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.ResourceDescription{Chassis: []*model.Chassis{chassis}}, nil
}

func (a *Adapter) describeChassis(ctx context.Context, actions *AutoloadActions, host string) (*model.Chassis, error) {
	id, err := actions.DeviceInfo(ctx)
	if err != nil {
		return nil, err
	}
	software, err := actions.DeviceSoftware(ctx)
	if err != nil {
		return nil, err
	}
	c := model.NewChassis("", host, id.Serial)
	c.Model = id.Model
	c.OSVersion = software
	return c, nil
}

// buildModule creates the module with one port group per address port
// label and ports <label>1 and <label>2 under each.
func buildModule(addr DiscoveryAddress, slot SlotInfo) *model.Blade {
	module := model.NewBlade(addr.Port1, slot.Serial)
	module.Model = slot.Model

	for _, label := range []string{addr.Port1, addr.Port2} {
		group := module.AddBlade(model.NewBlade(label, ""))
		for i := 1; i <= 2; i++ {
			portID := fmt.Sprintf("%s%d", label, i)
			group.AddPort(model.NewPort(portID, portSerial(slot.Serial, portID)))
		}
	}
	return module
}

func portSerial(slotSerial, portID string) string {
	return slotSerial + "." + portID
}

// ScanInventory probes slots 1..slot_count, stopping at the first slot the
// device reports as invalid, and describes every populated slot with its
// output and input ports and current connections.
func (a *Adapter) ScanInventory(ctx context.Context, host string) (*model.ResourceDescription, error) {
	cfg := a.sessionConfig(host)
	slotCount := common.MetadataIntWithDefault(cfg.Metadata, types.DefaultSlotCount, types.MetadataSlotCount)

	var chassis *model.Chassis
	err := a.withSession(ctx, host, func(s types.Session) error {
		actions := NewAutoloadActions(s, a.log)

		c, err := a.describeChassis(ctx, actions, cfg.Address)
		if err != nil {
			return err
		}

		for slot := 1; slot <= slotCount; slot++ {
			slotID := strconv.Itoa(slot)
			info, err := actions.SlotInfo(ctx, slotID)
			if errors.Is(err, types.ErrInvalidSlot) {
				a.log.WithField("slot", slotID).Debug("slot scan stopped at invalid slot")
				break
			}
			if err != nil {
				return err
			}
			if info.Empty() {
				continue
			}

			blade, err := a.scanSlot(ctx, actions, slotID, info)
			if err != nil {
				return err
			}
			c.AddBlade(blade)
		}
		chassis = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.ResourceDescription{Chassis: []*model.Chassis{chassis}}, nil
}

func (a *Adapter) scanSlot(ctx context.Context, actions *AutoloadActions, slotID string, info SlotInfo) (*model.Blade, error) {
	outputs, inputs, ok := ParsePortCounts(info.Model)
	if !ok {
		return nil, fmt.Errorf("slot %s: cannot determine port count from model %q", slotID, info.Model)
	}
	log := a.log.WithField("slot", slotID)
	log.Debugf("out ports: %d, in ports: %d", outputs, inputs)

	blade := model.NewBlade(slotID, info.Serial)
	blade.Model = info.Model

	for i := 0; i < outputs; i++ {
		id := common.OutputLabel(i)
		blade.AddPort(model.NewPort(id, portSerial(info.Serial, id)))
	}
	for i := 1; i <= inputs; i++ {
		id := strconv.Itoa(i)
		blade.AddPort(model.NewPort(id, portSerial(info.Serial, id)))
	}

	conns, err := actions.SlotConnections(ctx, slotID)
	if err != nil {
		return nil, err
	}
	for _, out := range conns.Labels() {
		in := conns[out]
		if in == 0 {
			continue
		}
		outPort := blade.FindPort(out)
		inPort := blade.FindPort(strconv.Itoa(in))
		if outPort == nil || inPort == nil {
			log.Warnf("connection %s:%d refers to a port outside the module", out, in)
			continue
		}
		outPort.AddMapping(inPort)
		inPort.AddMapping(outPort)
	}
	return blade, nil
}

// GetSlotConnections returns the connection map of one slot.
func (a *Adapter) GetSlotConnections(ctx context.Context, host, slotID string) (ConnectionMap, error) {
	var conns ConnectionMap
	err := a.withSession(ctx, host, func(s types.Session) error {
		var err error
		conns, err = NewAutoloadActions(s, a.log).SlotConnections(ctx, slotID)
		return err
	})
	return conns, err
}

// MapBidi connects two ports given as "<host>/<blade>/<channel>/<port>".
// One "set con" is sent per port, pairing its channel with the trailing
// digits of its port token.
func (a *Adapter) MapBidi(ctx context.Context, srcPort, dstPort string) error {
	ports, err := parsePortAddresses(append([]string{srcPort}, dstPort))
	if err != nil {
		return err
	}
	host, err := sessionHost(ports)
	if err != nil {
		return err
	}

	return a.withSession(ctx, host, func(s types.Session) error {
		actions := NewMappingActions(s, a.log)
		for _, p := range ports {
			resp, err := actions.MapBidi(ctx, p.Blade, p.ChannelID, p.Channel)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return fmt.Errorf("bidirectional mapping %s: %w", p.Port, err)
			}
		}
		return nil
	})
}

// MapClear clears the channel of every port, one command per port.
// Device refusals are logged; only malformed addresses and transport
// failures are returned.
func (a *Adapter) MapClear(ctx context.Context, ports []string) error {
	parsed, err := parsePortAddresses(ports)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		return nil
	}
	host, err := sessionHost(parsed)
	if err != nil {
		return err
	}

	return a.withSession(ctx, host, func(s types.Session) error {
		actions := NewMappingActions(s, a.log)
		for _, p := range parsed {
			resp, err := actions.MapClear(ctx, p.Blade, p.Channel)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				a.log.WithError(err).WithField("port", p.Port).Warn("clear connection not accepted")
			}
		}
		return nil
	})
}

// MapClearTo clears srcPort and every destination port.
func (a *Adapter) MapClearTo(ctx context.Context, srcPort string, dstPorts []string) error {
	a.log.Debugf("SRC: %s, DST: %v", srcPort, dstPorts)
	return a.MapClear(ctx, append([]string{srcPort}, dstPorts...))
}

func parsePortAddresses(ports []string) ([]PortAddress, error) {
	parsed := make([]PortAddress, 0, len(ports))
	for _, port := range ports {
		p, err := ParsePortAddress(port)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// sessionHost returns the host shared by every port. One operation runs on
// one session, so ports on different chassis are rejected.
func sessionHost(ports []PortAddress) (string, error) {
	host := ports[0].Host
	for _, p := range ports[1:] {
		if p.Host != host {
			return "", &types.FormatError{
				Kind:     types.FormatPort,
				Input:    p.Host + "/" + p.Blade + "/" + p.Channel + "/" + p.Port,
				Expected: "a port on host " + host,
			}
		}
	}
	return host, nil
}

// MapUni is not supported: the mux only cross-connects bidirectionally.
func (a *Adapter) MapUni(ctx context.Context, srcPort string, dstPorts []string) error {
	return &types.UnsupportedError{Operation: "unidirectional connection"}
}

// MapTap is not supported.
func (a *Adapter) MapTap(ctx context.Context, srcPort string, dstPorts []string) error {
	return &types.UnsupportedError{Operation: "tap connection"}
}

// SetSpeedManual is not supported.
func (a *Adapter) SetSpeedManual(ctx context.Context, srcPort, dstPort, speed, duplex string) error {
	return &types.UnsupportedError{Operation: "manual speed"}
}

// GetAttributeValue is not supported.
func (a *Adapter) GetAttributeValue(ctx context.Context, address, name string) (string, error) {
	return "", &types.UnsupportedError{Operation: "get attribute value"}
}

// SetAttributeValue is not supported.
func (a *Adapter) SetAttributeValue(ctx context.Context, address, name, value string) (string, error) {
	return "", &types.UnsupportedError{Operation: "set attribute value"}
}

// GetStateID always reports that no sync state is kept.
func (a *Adapter) GetStateID(ctx context.Context) (string, error) {
	a.log.Info("Command 'get state id' called")
	return types.SyncStateUnused, nil
}

// SetStateID only logs the id; the device has nowhere to store it.
func (a *Adapter) SetStateID(ctx context.Context, stateID string) error {
	a.log.Infof("set_state_id %s", stateID)
	return nil
}

var _ types.Driver = (*Adapter)(nil)
