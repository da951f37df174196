package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModuleTree(t *testing.T) {
	c := NewChassis("", "192.168.42.240", "TB8216")
	module := c.AddBlade(NewBlade("1", "TB8129"))
	group := module.AddBlade(NewBlade("A", ""))
	a1 := group.AddPort(NewPort("A1", "TB8129.A1"))
	in := module.AddPort(NewPort("1", "TB8129.1"))

	if got := module.FindPort("A1"); got != a1 {
		t.Errorf("FindPort(A1) = %v, want nested port", got)
	}
	if got := module.FindPort("1"); got != in {
		t.Errorf("FindPort(1) = %v, want direct port", got)
	}
	if got := module.FindPort("Z9"); got != nil {
		t.Errorf("FindPort(Z9) = %v, want nil", got)
	}

	a1.AddMapping(in)
	a1.AddMapping(in)
	in.AddMapping(a1)
	if diff := cmp.Diff([]string{"1"}, a1.Mappings); diff != "" {
		t.Errorf("A1 mappings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A1"}, in.Mappings); diff != "" {
		t.Errorf("input mappings mismatch (-want +got):\n%s", diff)
	}

	if c.ModelName != ChassisModelName || module.ModelName != BladeModelName || a1.ModelName != PortModelName {
		t.Errorf("default model names not applied: %q %q %q", c.ModelName, module.ModelName, a1.ModelName)
	}
}

func TestResourceDescriptionJSON(t *testing.T) {
	c := NewChassis("", "10.0.0.1", "TB1")
	desc := &ResourceDescription{Chassis: []*Chassis{c}}

	data, err := json.Marshal(desc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"chassis":[{"id":"","address":"10.0.0.1","model_name":"Telebyte Chassis","model":"","serial_number":"TB1","os_version":""}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
