package telebyte

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-layer1/types"
)

// Params holds the values bound into a command template.
type Params map[string]string

// CommandTemplate is an immutable command pattern with {name} placeholders.
type CommandTemplate struct {
	pattern string
	params  []string
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// NewCommandTemplate parses pattern. Placeholders are {identifier}.
func NewCommandTemplate(pattern string) CommandTemplate {
	var params []string
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		params = append(params, m[1])
	}
	return CommandTemplate{pattern: pattern, params: params}
}

// String returns the pattern, which is also the template's identity.
func (t CommandTemplate) String() string {
	return t.pattern
}

// Parameters returns the placeholder names in order of appearance.
func (t CommandTemplate) Parameters() []string {
	return append([]string(nil), t.params...)
}

// Render substitutes params into the pattern. Every placeholder needs a
// value; extra params are ignored.
func (t CommandTemplate) Render(params Params) (string, error) {
	for _, name := range t.params {
		if _, ok := params[name]; !ok {
			return "", &types.MissingParameterError{Template: t.pattern, Parameter: name}
		}
	}
	if len(t.params) == 0 {
		return t.pattern, nil
	}
	return placeholderRe.ReplaceAllStringFunc(t.pattern, func(ph string) string {
		return params[strings.Trim(ph, "{}")]
	}), nil
}

// Autoload commands
var (
	CmdSystemSoftware = NewCommandTemplate("show system software")
	CmdSystemInfo     = NewCommandTemplate("show sys-id")
	CmdSlotInfo       = NewCommandTemplate("show slot-id {slot_id}")
	CmdGetConnections = NewCommandTemplate("show con {slot_id} all")
)

// Mapping commands
var (
	CmdSetConnection   = NewCommandTemplate("set con {slot_id} {connection}")
	CmdClearConnection = NewCommandTemplate("set term {slot_id} {connection}")
)
