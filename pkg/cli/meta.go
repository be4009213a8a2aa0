package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeString ParamType = "string"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI can use to validate input before invoking a command.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Example  string    `json:"example,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

func bound(v float64) *float64 { return &v }

// argBounds holds the inclusive numeric range of bounded arguments, keyed by
// "command.arg".
var argBounds = map[string][2]*float64{
	"brightness.value":    {bound(-255), bound(255)},
	"contrast.value":      {bound(-254), bound(258)},
	"saturation.factor":   {bound(0), nil},
	"gaussianBlur.radius": {bound(0), bound(stdimg.MaxGaussianRadius)},
	"gaussianBlur.sigma":  {bound(0.01), nil},
}

// GenerateTooltip produces a tooltip string from a stdimg.CommandSpec.
func GenerateTooltip(c stdimg.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if c.Cumulative {
		sb.WriteString(" (applies on top of current edits)")
	}
	if len(c.Args) == 0 {
		sb.WriteString(": no parameters")
		return sb.String()
	}
	sb.WriteString(": parameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from a stdimg.CommandSpec.
func GenerateValidationRules(c stdimg.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "int":
			t = ParamTypeInt
		case "float":
			t = ParamTypeFloat
		default:
			t = ParamTypeString
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		if b, ok := argBounds[c.Name+"."+a.Name]; ok {
			r.Min, r.Max = b[0], b[1]
		}
		rules[a.Name] = r
	}
	return rules
}

// MetaStore indexes the command registry by name.
type MetaStore struct {
	Commands []stdimg.CommandSpec
	byName   map[string]stdimg.CommandSpec
}

// NewMetaStore creates a MetaStore from a command list.
func NewMetaStore(cmds []stdimg.CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]stdimg.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the spec registered under name.
func (m *MetaStore) Lookup(name string) (stdimg.CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *MetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

// Resolve maps user input to a command name: a 1-based index into the
// registry, an exact (case-insensitive) name, or a unique prefix.
func (m *MetaStore) Resolve(selection string) (string, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return "", fmt.Errorf("empty selection")
	}
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(m.Commands) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return m.Commands[idx-1].Name, nil
	}
	lower := strings.ToLower(selection)
	var matches []string
	for _, c := range m.Commands {
		name := strings.ToLower(c.Name)
		if name == lower {
			return c.Name, nil
		}
		if strings.HasPrefix(name, lower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command: %s", selection)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(matches, ", "))
	}
}

// NormalizeArgs validates args against the command's rules and returns them
// in canonical textual form. Missing optional args become "".
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, float64(v), vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		default:
			out[i] = raw
		}
	}
	return out, nil
}

func checkRange(name string, v float64, vr ValidationRule) error {
	if vr.Min != nil && v < *vr.Min {
		return fmt.Errorf("parameter %s: %v < min %v", name, v, *vr.Min)
	}
	if vr.Max != nil && v > *vr.Max {
		return fmt.Errorf("parameter %s: %v > max %v", name, v, *vr.Max)
	}
	return nil
}
