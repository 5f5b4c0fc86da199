package params

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Type is the declared type of a parameter.
type Type string

const (
	Boolean       Type = "boolean"
	Integer       Type = "integer"
	Float         Type = "float"
	String        Type = "string"
	Choice        Type = "choice"
	FilePath      Type = "filepath"
	DirectoryPath Type = "directorypath"
)

// typeNames maps every spelling accepted in a document to its Type.
// Documents are always written back with the canonical spelling.
var typeNames = map[string]Type{
	"boolean":       Boolean,
	"bool":          Boolean,
	"integer":       Integer,
	"int":           Integer,
	"float":         Float,
	"string":        String,
	"str":           String,
	"choice":        Choice,
	"enum":          Choice,
	"filepath":      FilePath,
	"path":          FilePath,
	"directorypath": DirectoryPath,
}

// ParseType resolves a type name as written in a parameters document.
func ParseType(name string) (Type, error) {
	if t, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown parameter type %q", name)
}

func (t Type) String() string {
	return string(t)
}

// IsNumeric reports whether values of t are numbers.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Float
}

// IsPath reports whether values of t name a file or directory.
func (t Type) IsPath() bool {
	return t == FilePath || t == DirectoryPath
}

// IsText reports whether values of t are stored as Go strings.
func (t Type) IsText() bool {
	return t == String || t == Choice || t.IsPath()
}

// Parse converts text entered by a user into a value of type t.
// It checks only the type; ranges and choices are checked by the store.
func (t Type) Parse(raw string) (any, error) {
	switch t {
	case Boolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil
	case Integer:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", raw)
		}
		return i, nil
	case Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case DirectoryPath:
		if raw != "" && !strings.HasSuffix(raw, string(os.PathSeparator)) {
			raw += string(os.PathSeparator)
		}
		return raw, nil
	case String, Choice, FilePath:
		return raw, nil
	}
	return nil, fmt.Errorf("unknown parameter type %q", string(t))
}

// Format renders a value of type t as display text.
func (t Type) Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// coerce checks that v is a Go value of type t and returns it in its
// canonical representation (bool, int64, float64 or string). Integers are
// widened to float for Float parameters; nothing else is converted.
func (t Type) coerce(v any) (any, error) {
	switch t {
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Integer:
		if i, ok := asInt64(v); ok {
			return i, nil
		}
	case Float:
		switch f := v.(type) {
		case float64:
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%v is not a finite number", f)
			}
			return f, nil
		case float32:
			return t.coerce(float64(f))
		}
		if i, ok := asInt64(v); ok {
			return float64(i), nil
		}
	case String, Choice, FilePath, DirectoryPath:
		if s, ok := v.(string); ok {
			return s, nil
		}
	default:
		return nil, fmt.Errorf("unknown parameter type %q", string(t))
	}
	return nil, fmt.Errorf("%s value expected, got %T (%v)", t, v, v)
}

func asInt64(v any) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int8:
		return int64(i), true
	case int16:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	case uint8:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint:
		if uint64(i) <= math.MaxInt64 {
			return int64(i), true
		}
	case uint64:
		if i <= math.MaxInt64 {
			return int64(i), true
		}
	}
	return 0, false
}

// Range is an inclusive numeric interval. A nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

// NewRange returns the closed interval [min, max].
func NewRange(min, max float64) *Range {
	return &Range{Min: &min, Max: &max}
}

// Contains reports whether f lies inside the range.
func (r *Range) Contains(f float64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && f < *r.Min {
		return false
	}
	if r.Max != nil && f > *r.Max {
		return false
	}
	return true
}

func (r *Range) String() string {
	bound := func(b *float64, open string) string {
		if b == nil {
			return open
		}
		return strconv.FormatFloat(*b, 'g', -1, 64)
	}
	return "[" + bound(r.Min, "-inf") + ", " + bound(r.Max, "+inf") + "]"
}

func (r *Range) bounds() []any {
	out := []any{nil, nil}
	if r.Min != nil {
		out[0] = *r.Min
	}
	if r.Max != nil {
		out[1] = *r.Max
	}
	return out
}
