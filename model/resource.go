// Package model contains the inventory records produced by Layer-1 discovery.
// They are plain data; an adapter on the host side converts them into the
// orchestration platform's resource tree.
package model

// Default model names reported to the host
const (
	ChassisModelName = "Telebyte Chassis"
	BladeModelName   = "Generic L1 Module"
	PortModelName    = "Generic L1 Port"
)

// ResourceDescription is the result of an autoload: one or more chassis.
type ResourceDescription struct {
	Chassis []*Chassis `json:"chassis"`
}

// Chassis is the top-level discovered resource.
type Chassis struct {
	// ID is the resource id (empty for a single chassis)
	ID string `json:"id"`

	// Address is the management address
	Address string `json:"address"`

	// ModelName is the host resource model
	ModelName string `json:"model_name"`

	// Model is the part number reported by the device
	Model string `json:"model"`

	// SerialNumber is the chassis serial number
	SerialNumber string `json:"serial_number"`

	// OSVersion is the software version
	OSVersion string `json:"os_version"`

	// Blades are the modules (or port groups) in the chassis
	Blades []*Blade `json:"blades,omitempty"`
}

// Blade is a module or a port group. Port groups nest under the module.
type Blade struct {
	ID           string   `json:"id"`
	ModelName    string   `json:"model_name"`
	Model        string   `json:"model,omitempty"`
	SerialNumber string   `json:"serial_number"`
	Blades       []*Blade `json:"blades,omitempty"`
	Ports        []*Port  `json:"ports,omitempty"`
}

// Port is a leaf resource. Mappings hold the ids of connected ports.
type Port struct {
	ID           string   `json:"id"`
	ModelName    string   `json:"model_name"`
	SerialNumber string   `json:"serial_number"`
	Mappings     []string `json:"mappings,omitempty"`
}

// NewChassis returns a chassis with the default model name.
func NewChassis(id, address, serial string) *Chassis {
	return &Chassis{ID: id, Address: address, ModelName: ChassisModelName, SerialNumber: serial}
}

// NewBlade returns a blade with the default model name.
func NewBlade(id, serial string) *Blade {
	return &Blade{ID: id, ModelName: BladeModelName, SerialNumber: serial}
}

// NewPort returns a port with the default model name.
func NewPort(id, serial string) *Port {
	return &Port{ID: id, ModelName: PortModelName, SerialNumber: serial}
}

// AddBlade attaches a child blade and returns it.
func (c *Chassis) AddBlade(b *Blade) *Blade {
	c.Blades = append(c.Blades, b)
	return b
}

// AddBlade attaches a child port group and returns it.
func (b *Blade) AddBlade(child *Blade) *Blade {
	b.Blades = append(b.Blades, child)
	return child
}

// AddPort attaches a port and returns it.
func (b *Blade) AddPort(p *Port) *Port {
	b.Ports = append(b.Ports, p)
	return p
}

// AddMapping records a connection from p to other, once.
func (p *Port) AddMapping(other *Port) {
	for _, id := range p.Mappings {
		if id == other.ID {
			return
		}
	}
	p.Mappings = append(p.Mappings, other.ID)
}

// FindPort looks a port up by id, searching nested port groups.
func (b *Blade) FindPort(id string) *Port {
	for _, p := range b.Ports {
		if p.ID == id {
			return p
		}
	}
	for _, child := range b.Blades {
		if p := child.FindPort(id); p != nil {
			return p
		}
	}
	return nil
}
