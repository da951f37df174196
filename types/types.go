package types

import (
	"context"
	"time"

	"github.com/nanoncore/nano-layer1/model"
)

// Protocol represents the southbound protocol type
type Protocol string

const (
	ProtocolCLI Protocol = "cli"
)

// Vendor represents the Layer-1 equipment vendor
type Vendor string

const (
	VendorTelebyte Vendor = "telebyte"
	VendorMock     Vendor = "mock" // For testing/simulation
)

// EquipmentType represents the type of Layer-1 equipment
type EquipmentType string

const (
	EquipmentTypeMux   EquipmentType = "mux"
	EquipmentTypePatch EquipmentType = "patch"
)

// Metadata keys understood by the drivers
const (
	// MetadataSlotCount bounds the slot scan (default DefaultSlotCount)
	MetadataSlotCount = "slot_count"

	// MetadataPrompt overrides the CLI prompt regular expression
	MetadataPrompt = "prompt"
)

// DefaultSlotCount is the number of module bays probed when scanning a chassis
const DefaultSlotCount = 6

// SyncStateUnused is the state id reported when the device keeps no sync state
const SyncStateUnused = "-1"

// EquipmentConfig contains configuration for a Layer-1 chassis
type EquipmentConfig struct {
	// Name is a unique identifier for this equipment
	Name string

	// Type is the equipment type
	Type EquipmentType

	// Vendor is the equipment vendor
	Vendor Vendor

	// Address is the management IP/hostname
	Address string

	// Port is the management port (if not default)
	Port int

	// Protocol is the management protocol
	Protocol Protocol

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Timeout for a single command round trip
	Timeout time.Duration

	// Metadata contains vendor-specific configuration
	Metadata map[string]string
}

// Clone returns a copy of the config that can be modified independently.
func (c *EquipmentConfig) Clone() *EquipmentConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Metadata != nil {
		out.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

// CLIExecutor sends text commands to a device and returns the raw replies.
// Vendor code uses this to drive vendor-specific command sets.
type CLIExecutor interface {
	// ExecCommand executes a CLI command and returns the output
	ExecCommand(ctx context.Context, command string) (string, error)

	// ExecCommands executes multiple CLI commands sequentially
	ExecCommands(ctx context.Context, commands []string) ([]string, error)
}

// Session is an exclusively owned CLI session. It must be closed by whoever
// opened it, and carries at most one in-flight command at a time.
type Session interface {
	CLIExecutor

	// Close releases the session and its underlying connection
	Close() error
}

// Dialer opens sessions to a device.
type Dialer interface {
	Dial(ctx context.Context, config *EquipmentConfig) (Session, error)
}

// Driver is the Layer-1 operation surface exposed to the orchestration host.
// Port addresses use the "<host>/<blade>/<channel>/<port>" form, discovery
// addresses the "<host>:<blade>:<port1>:<port2>" form.
type Driver interface {
	// Login stores credentials and verifies them by opening a session
	Login(ctx context.Context, address, username, password string) error

	// GetResourceDescription discovers the chassis and the blade named in address
	GetResourceDescription(ctx context.Context, address string) (*model.ResourceDescription, error)

	// MapBidi creates a bidirectional connection between two ports
	MapBidi(ctx context.Context, srcPort, dstPort string) error

	// MapUni creates unidirectional connections (not supported by every family)
	MapUni(ctx context.Context, srcPort string, dstPorts []string) error

	// MapClear removes the connections of every listed port
	MapClear(ctx context.Context, ports []string) error

	// MapClearTo removes the connections between src and each destination
	MapClearTo(ctx context.Context, srcPort string, dstPorts []string) error

	// MapTap adds a monitoring connection
	MapTap(ctx context.Context, srcPort string, dstPorts []string) error

	// SetSpeedManual sets a fixed connection speed
	SetSpeedManual(ctx context.Context, srcPort, dstPort, speed, duplex string) error

	// GetAttributeValue reads a resource attribute from the device
	GetAttributeValue(ctx context.Context, address, name string) (string, error)

	// SetAttributeValue writes a resource attribute to the device
	SetAttributeValue(ctx context.Context, address, name, value string) (string, error)

	// GetStateID reports the synchronization state id
	GetStateID(ctx context.Context) (string, error)

	// SetStateID records the synchronization state id
	SetStateID(ctx context.Context, stateID string) error
}
