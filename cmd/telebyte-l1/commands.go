package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify credentials against the chassis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		if err := drv.Login(context.Background(), cfg.Address, cfg.Username, cfg.Password); err != nil {
			return err
		}
		fmt.Println("login ok")
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover <host>:<blade>:<port1>:<port2>",
	Short: "Describe the chassis and one blade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		desc, err := drv.GetResourceDescription(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(desc)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [host]",
	Short: "Probe every slot and report modules, ports and connections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := newInventory(cmd)
		if err != nil {
			return err
		}
		host := cfg.Address
		if len(args) == 1 {
			host = args[0]
		}
		desc, err := inv.ScanInventory(context.Background(), host)
		if err != nil {
			return err
		}
		return printJSON(desc)
	},
}

var connectionsCmd = &cobra.Command{
	Use:   "connections <slot>",
	Short: "Show the output-to-input connections of a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := newInventory(cmd)
		if err != nil {
			return err
		}
		conns, err := inv.GetSlotConnections(context.Background(), cfg.Address, args[0])
		if err != nil {
			return err
		}
		for _, label := range conns.Labels() {
			fmt.Printf("%s:%d\n", label, conns[label])
		}
		return nil
	},
}

var mapBidiCmd = &cobra.Command{
	Use:   "map-bidi <src-port> <dst-port>",
	Short: "Create a bidirectional connection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		return drv.MapBidi(context.Background(), args[0], args[1])
	},
}

var mapClearCmd = &cobra.Command{
	Use:   "map-clear <port>...",
	Short: "Clear the connections of the given ports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		return drv.MapClear(context.Background(), args)
	},
}

var mapClearToCmd = &cobra.Command{
	Use:   "map-clear-to <src-port> <dst-port>...",
	Short: "Clear the connections between a source and destination ports",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		return drv.MapClearTo(context.Background(), args[0], args[1:])
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Synchronization state id",
}

var stateGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the state id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		id, err := drv.GetStateID(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var stateSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Record the state id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver(cmd)
		if err != nil {
			return err
		}
		return drv.SetStateID(context.Background(), args[0])
	},
}

func newInventory(cmd *cobra.Command) (inventory, error) {
	drv, err := newDriver(cmd)
	if err != nil {
		return nil, err
	}
	inv, ok := drv.(inventory)
	if !ok {
		return nil, fmt.Errorf("driver does not support slot scanning")
	}
	return inv, nil
}

func init() {
	stateCmd.AddCommand(stateGetCmd, stateSetCmd)
}
