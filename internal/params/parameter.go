package params

import (
	"fmt"
	"slices"
)

// Parameter is a named, typed configuration value with a default and
// optional advisory suggestions.
type Parameter struct {
	Name    string
	Type    Type
	Value   any
	Default any

	// Suggested values are shown to the user but never enforced.
	Suggested []any

	Label   string
	Help    string
	Section string

	// Choices lists the allowed values of a Choice parameter.
	Choices []string
	// Range bounds the value of a numeric parameter.
	Range *Range

	Editable bool

	// suggestedList records whether the document held a list or a scalar.
	suggestedList bool
	// keys is the member order of the parameter object as read.
	keys []string
	// extras holds the raw JSON of members this package does not know.
	extras map[string]string
}

// DisplayLabel returns the label, falling back to the name.
func (p Parameter) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// FormattedValue returns the current value as display text.
func (p Parameter) FormattedValue() string {
	return p.Type.Format(p.Value)
}

// SuggestionStrings returns the suggested values as display text.
func (p Parameter) SuggestionStrings() []string {
	out := make([]string, 0, len(p.Suggested))
	for _, s := range p.Suggested {
		out = append(out, p.Type.Format(s))
	}
	return out
}

// IsDefault reports whether the value equals the default.
func (p Parameter) IsDefault() bool {
	return p.Value == p.Default
}

// Extra returns the raw JSON of a member not interpreted by this package.
func (p Parameter) Extra(key string) (string, bool) {
	raw, ok := p.extras[key]
	return raw, ok
}

// Check validates v against the parameter's type, range and choices and
// returns it in canonical form.
func (p Parameter) Check(v any) (any, error) {
	value, err := p.Type.coerce(v)
	if err != nil {
		return nil, err
	}
	switch p.Type {
	case Integer:
		if !p.Range.Contains(float64(value.(int64))) {
			return nil, fmt.Errorf("%d is outside %s", value, p.Range)
		}
	case Float:
		if !p.Range.Contains(value.(float64)) {
			return nil, fmt.Errorf("%g is outside %s", value, p.Range)
		}
	case Choice:
		if !slices.Contains(p.Choices, value.(string)) {
			return nil, fmt.Errorf("%q is not one of %v", value, p.Choices)
		}
	}
	return value, nil
}
