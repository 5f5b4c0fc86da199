package params

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/billie-coop/rsvp/internal/csync"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Document member names understood by this package.
const (
	keyValue     = "value"
	keyType      = "type"
	keyDefault   = "default"
	keySuggested = "suggested"
	keyLabel     = "label"
	keyHelp      = "help"
	keySection   = "section"
	keyChoices   = "choices"
	keyRange     = "range"
	keyEditable  = "editable"
)

var requiredKeys = []string{keyValue, keyType, keyDefault}

// decodeOptions controls how declared values that fail validation are treated.
type decodeOptions struct {
	fallback bool
	logger   *slog.Logger
}

// decodeDocument parses a parameters document. The structural pass runs over
// the whole document before any Parameter is built, so a malformed document
// never yields a partial mapping.
func decodeDocument(data []byte, opts decodeOptions) (*csync.OrderedMap[string, Parameter], error) {
	doc, err := checkStructure(data)
	if err != nil {
		return nil, err
	}

	out := csync.NewOrderedMap[string, Parameter]()
	doc.ForEach(func(key, value gjson.Result) bool {
		var p Parameter
		p, err = decodeParameter(key.String(), value, opts)
		if err != nil {
			return false
		}
		out.Set(p.Name, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkStructure verifies the document is an object of objects, every
// parameter has the required members, and no name appears twice.
func checkStructure(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &MalformedSchemaError{Reason: "document is not valid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return gjson.Result{}, &MalformedSchemaError{Reason: "top level must be an object"}
	}

	var err error
	seen := make(map[string]bool)
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		switch {
		case name == "":
			err = &MalformedSchemaError{Reason: "parameter name must not be empty"}
		case seen[name]:
			err = &MalformedSchemaError{Parameter: name, Reason: "declared more than once"}
		case !value.IsObject():
			err = &MalformedSchemaError{Parameter: name, Reason: "must be an object"}
		}
		if err != nil {
			return false
		}
		seen[name] = true

		members := make(map[string]gjson.Result)
		value.ForEach(func(k, v gjson.Result) bool {
			if _, dup := members[k.String()]; dup {
				err = &MalformedSchemaError{Parameter: name, Reason: fmt.Sprintf("member %q appears more than once", k.String())}
				return false
			}
			members[k.String()] = v
			return true
		})
		if err != nil {
			return false
		}
		for _, req := range requiredKeys {
			if _, ok := members[req]; !ok {
				err = &MalformedSchemaError{Parameter: name, Reason: fmt.Sprintf("missing %q", req)}
				return false
			}
		}
		if members[keyType].Type != gjson.String {
			err = &MalformedSchemaError{Parameter: name, Reason: `"type" must be a string`}
			return false
		}
		return true
	})
	return doc, err
}

func decodeParameter(name string, obj gjson.Result, opts decodeOptions) (Parameter, error) {
	p := Parameter{Name: name, Editable: true}
	invalid := func(field string, err error) (Parameter, error) {
		return Parameter{}, &InvalidParameterError{Name: name, Field: field, Err: err}
	}

	members := make(map[string]gjson.Result)
	obj.ForEach(func(k, v gjson.Result) bool {
		p.keys = append(p.keys, k.String())
		members[k.String()] = v
		return true
	})

	t, err := ParseType(members[keyType].Str)
	if err != nil {
		return invalid(keyType, err)
	}
	p.Type = t

	for _, key := range p.keys {
		v := members[key]
		switch key {
		case keyValue, keyType, keyDefault, keySuggested:
			// decoded below, once choices and range are known
		case keyLabel, keyHelp, keySection:
			if v.Type != gjson.String {
				return invalid(key, errors.New("must be a string"))
			}
			switch key {
			case keyLabel:
				p.Label = v.Str
			case keyHelp:
				p.Help = v.Str
			case keySection:
				p.Section = v.Str
			}
		case keyEditable:
			if v.Type != gjson.True && v.Type != gjson.False {
				return invalid(key, errors.New("must be a boolean"))
			}
			p.Editable = v.Bool()
		case keyChoices:
			if p.Choices, err = decodeChoices(t, v); err != nil {
				return invalid(key, err)
			}
		case keyRange:
			if p.Range, err = decodeRange(t, v); err != nil {
				return invalid(key, err)
			}
		default:
			if p.extras == nil {
				p.extras = make(map[string]string)
			}
			p.extras[key] = string(pretty.Ugly([]byte(v.Raw)))
		}
	}
	if t == Choice && len(p.Choices) == 0 {
		return invalid(keyChoices, errors.New("choice parameters need a non-empty choices list"))
	}

	if s, ok := members[keySuggested]; ok {
		p.suggestedList = s.IsArray()
		items := []gjson.Result{s}
		if p.suggestedList {
			items = s.Array()
		}
		for _, item := range items {
			sv, err := decodeValue(t, item)
			if err != nil {
				return invalid(keySuggested, err)
			}
			p.Suggested = append(p.Suggested, sv)
		}
	}

	def, err := decodeValue(t, members[keyDefault])
	if err == nil {
		def, err = p.Check(def)
	}
	if err != nil {
		return invalid(keyDefault, err)
	}
	p.Default = def

	value, err := decodeValue(t, members[keyValue])
	if err == nil {
		value, err = p.Check(value)
	}
	if err != nil {
		if !opts.fallback {
			return invalid(keyValue, err)
		}
		if opts.logger != nil {
			opts.logger.Warn("invalid parameter value replaced by default",
				"parameter", name, "error", err, "default", def)
		}
		value = def
	}
	p.Value = value

	return p, nil
}

// decodeValue reads a JSON value as type t. Booleans and numbers may also be
// written as strings, which is how older parameter files store them.
func decodeValue(t Type, r gjson.Result) (any, error) {
	switch t {
	case Boolean:
		switch r.Type {
		case gjson.True, gjson.False:
			return r.Bool(), nil
		case gjson.String:
			return t.Parse(r.Str)
		}
	case Integer:
		switch r.Type {
		case gjson.Number:
			i, err := strconv.ParseInt(r.Raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s is not a whole number", r.Raw)
			}
			return i, nil
		case gjson.String:
			return t.Parse(r.Str)
		}
	case Float:
		switch r.Type {
		case gjson.Number:
			if math.IsInf(r.Num, 0) {
				return nil, fmt.Errorf("%s is out of range", r.Raw)
			}
			return r.Num, nil
		case gjson.String:
			return t.Parse(r.Str)
		}
	default:
		if r.Type == gjson.String {
			return r.Str, nil
		}
	}
	return nil, fmt.Errorf("%s is not a valid %s", describe(r), t)
}

func decodeChoices(t Type, r gjson.Result) ([]string, error) {
	if t != Choice {
		return nil, fmt.Errorf("only %s parameters take choices", Choice)
	}
	if !r.IsArray() {
		return nil, errors.New("must be a list of strings")
	}
	var choices []string
	for _, item := range r.Array() {
		if item.Type != gjson.String {
			return nil, errors.New("must be a list of strings")
		}
		choices = append(choices, item.Str)
	}
	return choices, nil
}

func decodeRange(t Type, r gjson.Result) (*Range, error) {
	if !t.IsNumeric() {
		return nil, fmt.Errorf("only numeric parameters take a range")
	}
	bounds := r.Array()
	if !r.IsArray() || len(bounds) != 2 {
		return nil, errors.New("must be a [min, max] pair")
	}
	var rng Range
	for i, b := range bounds {
		switch b.Type {
		case gjson.Null:
		case gjson.Number:
			f := b.Num
			if i == 0 {
				rng.Min = &f
			} else {
				rng.Max = &f
			}
		default:
			return nil, errors.New("bounds must be numbers or null")
		}
	}
	if rng.Min != nil && rng.Max != nil && *rng.Min > *rng.Max {
		return nil, fmt.Errorf("min %g is greater than max %g", *rng.Min, *rng.Max)
	}
	return &rng, nil
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return strconv.Quote(r.Str)
	case gjson.Null:
		return "null"
	}
	return r.Raw
}
