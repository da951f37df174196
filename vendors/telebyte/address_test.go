package telebyte

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nanoncore/nano-layer1/types"
)

func TestParseDiscoveryAddress(t *testing.T) {
	got, err := ParseDiscoveryAddress("192.168.42.240:1:A:B")
	if err != nil {
		t.Fatalf("ParseDiscoveryAddress() error = %v", err)
	}
	want := DiscoveryAddress{Host: "192.168.42.240", Blade: "1", Port1: "A", Port2: "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDiscoveryAddress() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDiscoveryAddressInvalid(t *testing.T) {
	for _, address := range []string{
		"",
		"192.168.42.240",
		"192.168.42.240:1:A",
		"192.168.42.240:x:A:B",
		"192.168.42.240:1:AB:C",
		"192.168.42.240:1:A:B:C",
		"192.168.42.240/1/A/B",
	} {
		t.Run(address, func(t *testing.T) {
			_, err := ParseDiscoveryAddress(address)
			if !errors.Is(err, types.ErrAddressFormat) {
				t.Fatalf("ParseDiscoveryAddress(%q) error = %v, want ErrAddressFormat", address, err)
			}
			var fe *types.FormatError
			if !errors.As(err, &fe) || fe.Input != address {
				t.Errorf("error = %#v, want input %q", err, address)
			}
		})
	}
}

func TestParsePortAddress(t *testing.T) {
	tests := []struct {
		address string
		want    PortAddress
	}{
		{"192.168.42.240/1/B/A1", PortAddress{Host: "192.168.42.240", Blade: "1", Channel: "B", Port: "A1", ChannelID: "1"}},
		{"192.168.42.240/2/A/A12", PortAddress{Host: "192.168.42.240", Blade: "2", Channel: "A", Port: "A12", ChannelID: "12"}},
		{"host/1/C/7", PortAddress{Host: "host", Blade: "1", Channel: "C", Port: "7", ChannelID: "7"}},
		{"host/1/C/port-3", PortAddress{Host: "host", Blade: "1", Channel: "C", Port: "port-3", ChannelID: "3"}},
		{"host/1/B/A1B2", PortAddress{Host: "host", Blade: "1", Channel: "B", Port: "A1B2", ChannelID: "2"}},
		{"host/1/P/P2-1", PortAddress{Host: "host", Blade: "1", Channel: "P", Port: "P2-1", ChannelID: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			got, err := ParsePortAddress(tt.address)
			if err != nil {
				t.Fatalf("ParsePortAddress() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePortAddress() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePortAddressInvalid(t *testing.T) {
	for _, address := range []string{
		"",
		"192.168.42.240/1/B",
		"192.168.42.240/1/B/A1/x",
		"192.168.42.240/1/B/A",
		"192.168.42.240/1/B/1A",
		"192.168.42.240/1/B/A1B",
		"192.168.42.240:1:B:A1",
	} {
		t.Run(address, func(t *testing.T) {
			_, err := ParsePortAddress(address)
			if !errors.Is(err, types.ErrPortFormat) {
				t.Errorf("ParsePortAddress(%q) error = %v, want ErrPortFormat", address, err)
			}
			if errors.Is(err, types.ErrAddressFormat) {
				t.Errorf("ParsePortAddress(%q) error also matches ErrAddressFormat", address)
			}
		})
	}
}

func TestParsePortToken(t *testing.T) {
	tests := map[string]string{"A1": "1", "12": "12", "A1B2": "2", "P2-1": "1", "B10": "10"}
	for token, want := range tests {
		got, err := ParsePortToken(token)
		if err != nil || got != want {
			t.Errorf("ParsePortToken(%q) = %q, %v, want %q", token, got, err, want)
		}
	}
	for _, token := range []string{"", "A", "1A", "A1-"} {
		if _, err := ParsePortToken(token); !errors.Is(err, types.ErrPortFormat) {
			t.Errorf("ParsePortToken(%q) error = %v, want ErrPortFormat", token, err)
		}
	}
}

func TestLoginHost(t *testing.T) {
	tests := map[string]string{
		"192.168.42.240":       "192.168.42.240",
		"192.168.42.240:1:A:B": "192.168.42.240",
		"tb-lab-1":             "tb-lab-1",
	}
	for address, want := range tests {
		if got := LoginHost(address); got != want {
			t.Errorf("LoginHost(%q) = %q, want %q", address, got, want)
		}
	}
}
