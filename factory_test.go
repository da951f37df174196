package layer1

import (
	"context"
	"testing"

	"github.com/nanoncore/nano-layer1/drivers/mock"
	"github.com/nanoncore/nano-layer1/vendors/telebyte"
)

func TestNewDriver(t *testing.T) {
	tests := []struct {
		name    string
		config  *EquipmentConfig
		wantErr bool
	}{
		{"telebyte", &EquipmentConfig{Vendor: VendorTelebyte, Address: "10.0.0.1"}, false},
		{"default vendor", &EquipmentConfig{Address: "10.0.0.1"}, false},
		{"mock", &EquipmentConfig{Vendor: VendorMock, Address: "mock"}, false},
		{"explicit cli", &EquipmentConfig{Vendor: VendorTelebyte, Protocol: ProtocolCLI}, false},
		{"nil config", nil, true},
		{"unknown vendor", &EquipmentConfig{Vendor: "calient"}, true},
		{"unsupported protocol", &EquipmentConfig{Vendor: VendorTelebyte, Protocol: "snmp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv, err := NewDriver(tt.config, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDriver() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if _, ok := drv.(*telebyte.Adapter); !ok {
					t.Errorf("NewDriver() = %T, want *telebyte.Adapter", drv)
				}
			}
		})
	}
}

func TestNewDriverMockDiscovery(t *testing.T) {
	drv, err := NewDriver(&EquipmentConfig{Vendor: VendorMock, Address: "mock"}, nil)
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	desc, err := drv.GetResourceDescription(context.Background(), "mock:1:A:B")
	if err != nil {
		t.Fatalf("GetResourceDescription() error = %v", err)
	}
	if got := desc.Chassis[0].SerialNumber; got != "TB8216" {
		t.Errorf("chassis serial = %q, want TB8216", got)
	}
}

func TestNewDriverWithDialer(t *testing.T) {
	dev := mock.NewDevice()
	drv := NewDriverWithDialer(&EquipmentConfig{Address: "10.0.0.1"}, dev, nil)

	if err := drv.MapBidi(context.Background(), "10.0.0.1/1/B/B1", "10.0.0.1/1/C/C2"); err != nil {
		t.Fatalf("MapBidi() error = %v", err)
	}
	if got := dev.Connections(1)["C"]; got != 2 {
		t.Errorf("connection C = %d, want 2", got)
	}
}

func TestCapabilityMatrix(t *testing.T) {
	caps := CapabilityMatrix[VendorTelebyte]
	if !caps.Bidirectional || caps.Unidirectional || caps.Tap {
		t.Errorf("telebyte capabilities = %+v, want bidirectional only", caps)
	}
}
