package layer1

// Re-export types from the types sub-package so callers can use layer1.Driver, etc.

import (
	"github.com/nanoncore/nano-layer1/types"
)

// Type aliases
type (
	Protocol        = types.Protocol
	Vendor          = types.Vendor
	EquipmentType   = types.EquipmentType
	EquipmentConfig = types.EquipmentConfig
	Driver          = types.Driver
	CLIExecutor     = types.CLIExecutor
	Session         = types.Session
	Dialer          = types.Dialer
)

// Re-export constants
const (
	ProtocolCLI = types.ProtocolCLI

	VendorTelebyte = types.VendorTelebyte
	VendorMock     = types.VendorMock

	EquipmentTypeMux   = types.EquipmentTypeMux
	EquipmentTypePatch = types.EquipmentTypePatch
)
