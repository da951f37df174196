// Package config loads driver configuration files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nanoncore/nano-layer1/types"
)

// Defaults applied by Load
const (
	DefaultPort     = 22
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// File is the on-disk configuration
type File struct {
	Name      string            `yaml:"name"`
	Vendor    string            `yaml:"vendor"`
	Address   string            `yaml:"address"`
	Port      int               `yaml:"port"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Timeout   time.Duration     `yaml:"timeout"`
	LogLevel  string            `yaml:"log_level"`
	LogFormat string            `yaml:"log_format"`
	Metadata  map[string]string `yaml:"metadata"`
}

// Load reads and validates a YAML config file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and applies defaults
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Default returns a config with only defaults set
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

func (f *File) applyDefaults() {
	if f.Vendor == "" {
		f.Vendor = string(types.VendorTelebyte)
	}
	if f.Port == 0 {
		f.Port = DefaultPort
	}
	if f.Timeout == 0 {
		f.Timeout = DefaultTimeout
	}
	if f.LogLevel == "" {
		f.LogLevel = DefaultLogLevel
	}
}

// Validate checks field values
func (f *File) Validate() error {
	switch types.Vendor(f.Vendor) {
	case types.VendorTelebyte, types.VendorMock:
	default:
		return fmt.Errorf("unsupported vendor %q", f.Vendor)
	}
	if f.Port < 1 || f.Port > 65535 {
		return fmt.Errorf("port %d out of range", f.Port)
	}
	if f.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch f.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log_format %q", f.LogFormat)
	}
	return nil
}

// Equipment converts the file into a driver config
func (f *File) Equipment() *types.EquipmentConfig {
	cfg := &types.EquipmentConfig{
		Name:     f.Name,
		Type:     types.EquipmentTypeMux,
		Vendor:   types.Vendor(f.Vendor),
		Address:  f.Address,
		Port:     f.Port,
		Protocol: types.ProtocolCLI,
		Username: f.Username,
		Password: f.Password,
		Timeout:  f.Timeout,
	}
	if len(f.Metadata) > 0 {
		cfg.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			cfg.Metadata[k] = v
		}
	}
	return cfg
}
