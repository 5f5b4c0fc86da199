package params

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// canonicalKeys is the member order used for parameters that carry no
// document order of their own.
var canonicalKeys = []string{
	keyValue, keyType, keyDefault, keySuggested, keyLabel,
	keyHelp, keySection, keyChoices, keyRange, keyEditable,
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// encodeDocument writes parameters as a JSON object in the given order.
// sjson appends new members at the end, so the output keeps that order.
func encodeDocument(ps []Parameter) ([]byte, error) {
	doc := []byte("{}")
	for _, p := range ps {
		obj, err := encodeParameter(p)
		if err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, escapePath(p.Name), obj); err != nil {
			return nil, fmt.Errorf("failed to encode parameter %q: %w", p.Name, err)
		}
	}
	return pretty.PrettyOptions(doc, prettyOptions), nil
}

func encodeParameter(p Parameter) ([]byte, error) {
	keys := p.keys
	if len(keys) == 0 {
		keys = canonicalKeys
	}

	obj := []byte("{}")
	for _, key := range keys {
		value, raw, ok := p.member(key)
		if !ok {
			continue
		}
		var err error
		if raw != "" {
			obj, err = sjson.SetRawBytes(obj, escapePath(key), []byte(raw))
		} else {
			obj, err = sjson.SetBytes(obj, escapePath(key), value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q of parameter %q: %w", key, p.Name, err)
		}
	}
	return obj, nil
}

// member returns the value to write for a document member, or the raw JSON
// of an unknown member. ok is false when the member should be omitted.
func (p Parameter) member(key string) (value any, raw string, ok bool) {
	declared := len(p.keys) > 0
	switch key {
	case keyValue:
		return p.Value, "", true
	case keyType:
		return string(p.Type), "", true
	case keyDefault:
		return p.Default, "", true
	case keySuggested:
		if len(p.Suggested) == 0 && !declared {
			return nil, "", false
		}
		if p.suggestedList || len(p.Suggested) != 1 {
			if p.Suggested == nil {
				return []any{}, "", true
			}
			return p.Suggested, "", true
		}
		return p.Suggested[0], "", true
	case keyLabel:
		return p.Label, "", p.Label != "" || declared
	case keyHelp:
		return p.Help, "", p.Help != "" || declared
	case keySection:
		return p.Section, "", p.Section != "" || declared
	case keyChoices:
		return p.Choices, "", p.Choices != nil
	case keyRange:
		if p.Range == nil {
			return nil, "", false
		}
		return p.Range.bounds(), "", true
	case keyEditable:
		return p.Editable, "", !p.Editable || declared
	}
	raw, ok = p.extras[key]
	return nil, raw, ok
}

// escapePath makes a member name safe to use as an sjson path.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
