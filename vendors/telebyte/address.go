package telebyte

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-layer1/types"
)

// DiscoveryAddress is "<host>:<blade>:<port1>:<port2>".
type DiscoveryAddress struct {
	Host  string
	Blade string
	Port1 string
	Port2 string
}

// PortAddress is "<host>/<blade>/<channel>/<port>". Channel is the aggregate
// (lettered output) and ChannelID the trailing digits of the port token.
type PortAddress struct {
	Host      string
	Blade     string
	Channel   string
	Port      string
	ChannelID string
}

const (
	discoveryAddressFormat = "<address>:<blade_number>:<literal_port_1>:<literal_port_2>"
	portAddressFormat      = "<address>/<blade>/<channel>/<port>"
)

var (
	discoveryAddressRe = regexp.MustCompile(`^([^:]+):(\d+):(\w):(\w)$`)
	portTokenRe        = regexp.MustCompile(`(\d+)$`)
)

// ParseDiscoveryAddress splits a discovery address, e.g. "192.168.42.240:1:A:B".
func ParseDiscoveryAddress(address string) (DiscoveryAddress, error) {
	m := discoveryAddressRe.FindStringSubmatch(address)
	if m == nil {
		return DiscoveryAddress{}, &types.FormatError{Kind: types.FormatAddress, Input: address, Expected: discoveryAddressFormat}
	}
	return DiscoveryAddress{Host: m[1], Blade: m[2], Port1: m[3], Port2: m[4]}, nil
}

// ParsePortAddress splits a mapping address, e.g. "192.168.42.240/1/B/A1".
func ParsePortAddress(address string) (PortAddress, error) {
	fields := strings.Split(address, "/")
	if len(fields) != 4 {
		return PortAddress{}, &types.FormatError{Kind: types.FormatPort, Input: address, Expected: portAddressFormat}
	}
	id, err := ParsePortToken(fields[3])
	if err != nil {
		return PortAddress{}, &types.FormatError{Kind: types.FormatPort, Input: address, Expected: portAddressFormat + " with <port> ending in digits"}
	}
	return PortAddress{
		Host:      fields[0],
		Blade:     fields[1],
		Channel:   fields[2],
		Port:      fields[3],
		ChannelID: id,
	}, nil
}

// ParsePortToken returns the trailing digit run of token ("A1" -> "1",
// "A1B2" -> "2").
func ParsePortToken(token string) (string, error) {
	m := portTokenRe.FindStringSubmatch(token)
	if m == nil {
		return "", &types.FormatError{Kind: types.FormatPort, Input: token, Expected: "a token ending in digits"}
	}
	return m[1], nil
}

// LoginHost returns the host part of address, accepting either a discovery
// address or a bare host.
func LoginHost(address string) string {
	if a, err := ParseDiscoveryAddress(address); err == nil {
		return a.Host
	}
	return address
}
