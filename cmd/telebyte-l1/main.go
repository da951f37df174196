// telebyte-l1 - Telebyte Layer-1 chassis driver tool
//
// Runs the driver operations the orchestration host calls, from a shell:
//
//	telebyte-l1 --address 192.168.42.240 -u admin -p admin login
//	telebyte-l1 discover 192.168.42.240:1:A:B
//	telebyte-l1 map-bidi 192.168.42.240/1/A/A1 192.168.42.240/1/B/B2
//	telebyte-l1 map-clear 192.168.42.240/1/A/A1
//	telebyte-l1 scan
//	telebyte-l1 --mock discover mock:1:A:B    # in-memory chassis
//
// Settings come from --config (YAML) and are overridden by flags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	layer1 "github.com/nanoncore/nano-layer1"
	"github.com/nanoncore/nano-layer1/config"
	"github.com/nanoncore/nano-layer1/logging"
	"github.com/nanoncore/nano-layer1/model"
	"github.com/nanoncore/nano-layer1/types"
	"github.com/nanoncore/nano-layer1/vendors/telebyte"
)

var (
	configPath string
	address    string
	username   string
	password   string
	port       int
	timeout    time.Duration
	logLevel   string
	mockMode   bool

	cfg *config.File
)

// inventory is the part of the Telebyte driver beyond types.Driver
type inventory interface {
	ScanInventory(ctx context.Context, host string) (*model.ResourceDescription, error)
	GetSlotConnections(ctx context.Context, host, slotID string) (telebyte.ConnectionMap, error)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "telebyte-l1",
	Short:             "Telebyte Layer-1 chassis driver",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		applyFlags(cmd)

		if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		if cfg.LogFormat == "json" {
			logging.SetJSONFormat()
		}
		return nil
	},
}

// applyFlags overrides file settings with flags the user set explicitly.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Address = address
	}
	if flags.Changed("username") {
		cfg.Username = username
	}
	if flags.Changed("password") {
		cfg.Password = password
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if mockMode {
		cfg.Vendor = string(types.VendorMock)
		if cfg.Address == "" {
			cfg.Address = "mock"
		}
	}
}

func newDriver(cmd *cobra.Command) (layer1.Driver, error) {
	eq := cfg.Equipment()
	return layer1.NewDriver(eq, commandLogger(cmd, eq.Address))
}

// commandLogger tags driver logs with the subcommand and the device.
func commandLogger(cmd *cobra.Command, device string) *logrus.Entry {
	return logging.WithOperation(cmd.Name()).WithField("device", device)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&address, "address", "a", "", "chassis management address")
	pf.StringVarP(&username, "username", "u", "", "login username")
	pf.StringVarP(&password, "password", "p", "", "login password")
	pf.IntVar(&port, "port", config.DefaultPort, "SSH port")
	pf.DurationVar(&timeout, "timeout", config.DefaultTimeout, "per-command timeout")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&mockMode, "mock", false, "use the in-memory chassis simulator")

	rootCmd.AddCommand(
		loginCmd,
		discoverCmd,
		scanCmd,
		connectionsCmd,
		mapBidiCmd,
		mapClearCmd,
		mapClearToCmd,
		stateCmd,
	)
}
