package layer1

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/nano-layer1/drivers/cli"
	"github.com/nanoncore/nano-layer1/drivers/mock"
	"github.com/nanoncore/nano-layer1/vendors/telebyte"
)

// CapabilityMatrix defines what each vendor supports
var CapabilityMatrix = map[Vendor]VendorCapabilities{
	VendorTelebyte: {
		PrimaryProtocol:    ProtocolCLI,
		SupportedProtocols: []Protocol{ProtocolCLI},
		Bidirectional:      true,
	},
	VendorMock: {
		PrimaryProtocol:    ProtocolCLI,
		SupportedProtocols: []Protocol{ProtocolCLI},
		Bidirectional:      true,
	},
}

// VendorCapabilities defines what protocols and features a vendor supports
type VendorCapabilities struct {
	PrimaryProtocol    Protocol
	SupportedProtocols []Protocol
	Bidirectional      bool
	Unidirectional     bool
	Tap                bool
}

// NewDriver creates a Layer-1 driver for config.Vendor
func NewDriver(config *EquipmentConfig, log *logrus.Entry) (Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	vendor := config.Vendor
	if vendor == "" {
		vendor = VendorTelebyte
	}

	caps, ok := CapabilityMatrix[vendor]
	if !ok {
		return nil, fmt.Errorf("unsupported vendor: %s", vendor)
	}

	protocol := config.Protocol
	if protocol == "" {
		protocol = caps.PrimaryProtocol
	}
	supported := false
	for _, p := range caps.SupportedProtocols {
		if p == protocol {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("vendor %s does not support protocol %s", vendor, protocol)
	}

	var dialer Dialer
	switch vendor {
	case VendorMock:
		// Mock vendor talks to an in-memory Telebyte chassis
		dialer = mock.NewDevice()
	default:
		dialer = cli.NewDialer()
	}

	return NewDriverWithDialer(config, dialer, log), nil
}

// NewDriverWithDialer creates a Telebyte driver on a caller-supplied transport
func NewDriverWithDialer(config *EquipmentConfig, dialer Dialer, log *logrus.Entry) *telebyte.Adapter {
	return telebyte.NewAdapter(dialer, config, log)
}
