package telebyte

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DeviceIdentity is the chassis part and serial number from "show sys-id".
type DeviceIdentity struct {
	Model  string
	Serial string
}

// SlotInfo describes the module in one slot. The zero value means the
// module is absent or its data is unavailable.
type SlotInfo struct {
	Model    string
	Revision string
	Serial   string
}

// Empty reports whether no module data was found.
func (s SlotInfo) Empty() bool {
	return s == SlotInfo{}
}

// ConnectionMap maps an output channel label to its input number.
// Input 0 means the output is not connected.
type ConnectionMap map[string]int

// Labels returns the output labels in channel order (A..Z, then AA..).
func (c ConnectionMap) Labels() []string {
	labels := make([]string, 0, len(c))
	for label := range c {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(labels[i]) != len(labels[j]) {
			return len(labels[i]) < len(labels[j])
		}
		return labels[i] < labels[j]
	})
	return labels
}

// Connected returns only the outputs wired to an input.
func (c ConnectionMap) Connected() ConnectionMap {
	out := make(ConnectionMap)
	for label, input := range c {
		if input != 0 {
			out[label] = input
		}
	}
	return out
}

// Values are captured up to end of line; [ \t]* keeps an empty value from
// swallowing the next line.
var (
	softwareRe   = regexp.MustCompile(`(?i)"software"[ \t]*([^\n]*)`)
	systemPNRe   = regexp.MustCompile(`(?i)System P/N:[ \t]*([^\n]*)`)
	systemSNRe   = regexp.MustCompile(`(?i)System S/N:[ \t]*([^\n]*)`)
	slotInfoRe   = regexp.MustCompile(`(?is)PN:[ \t]*([^\n]*).*?Rev:[ \t]*([^\n]*).*?SN:[ \t]*([^\n]*)`)
	connectionRe = regexp.MustCompile(`(\w+):(\d+);`)
	portCountRe  = regexp.MustCompile(`(\d+)-\d+-(\d+)`)
)

// ParseSoftwareVersion extracts the version following the quoted "software"
// label, or "" if absent.
//
//	"software" Mux-2.6.0.1
func ParseSoftwareVersion(text string) string {
	if m := softwareRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ParseDeviceIdentity extracts the System P/N and System S/N lines. Each
// field is independent and defaults to "".
func ParseDeviceIdentity(text string) DeviceIdentity {
	var id DeviceIdentity
	if m := systemPNRe.FindStringSubmatch(text); m != nil {
		id.Model = strings.TrimSpace(m[1])
	}
	if m := systemSNRe.FindStringSubmatch(text); m != nil {
		id.Serial = strings.TrimSpace(m[1])
	}
	return id
}

// ParseSlotInfo extracts PN, Rev and SN from a slot-id reply. All three must
// be present, in that order, or ok is false.
//
//	Slot: 1
//	  PN: 600-SM-16-1-2
//	  Rev: A.1
//	  SN: TB8129
func ParseSlotInfo(text string) (info SlotInfo, ok bool) {
	m := slotInfoRe.FindStringSubmatch(text)
	if m == nil {
		return SlotInfo{}, false
	}
	return SlotInfo{
		Model:    strings.TrimSpace(m[1]),
		Revision: strings.TrimSpace(m[2]),
		Serial:   strings.TrimSpace(m[3]),
	}, true
}

// ParseConnectionMap collects every "<label>:<number>;" token. A repeated
// label keeps its last value.
func ParseConnectionMap(text string) ConnectionMap {
	conn := make(ConnectionMap)
	for _, m := range connectionRe.FindAllStringSubmatch(text, -1) {
		input, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		conn[m[1]] = input
	}
	return conn
}

// ParsePortCounts derives output and input port counts from a module part
// number such as "600-SM-16-1-2" (16 outputs, 2 inputs).
func ParsePortCounts(model string) (outputs, inputs int, ok bool) {
	m := portCountRe.FindStringSubmatch(model)
	if m == nil {
		return 0, 0, false
	}
	outputs, _ = strconv.Atoi(m[1])
	inputs, _ = strconv.Atoi(m[2])
	return outputs, inputs, true
}
