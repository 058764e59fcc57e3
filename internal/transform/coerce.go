package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"parlamentodb/internal/util"
)

// The bronze dumps are decoded into map[string]any with json.Number enabled,
// so every scalar can show up as string, json.Number or bool depending on the
// legislature. These helpers coerce without losing the source text.

func toStringPtr(v any) *string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return util.StringPtr(s)
	case json.Number:
		return util.StringPtr(t.String())
	case bool:
		return util.StringPtr(fmt.Sprintf("%t", t))
	}
	return nil
}

func toString(v any) string {
	if p := toStringPtr(v); p != nil {
		return *p
	}
	return ""
}

func toFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return util.FloatPtr(t)
	case int:
		return util.FloatPtr(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return util.FloatPtr(f)
		}
	case string:
		var n json.Number = json.Number(strings.TrimSpace(t))
		if f, err := n.Float64(); err == nil {
			return util.FloatPtr(f)
		}
	}
	return nil
}

// toList accepts both a JSON array and a bare object: several legislatures
// serialize single-element collections as the element itself.
func toList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	}
	return nil
}

func toMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func toStringSlice(v any) []string {
	var out []string
	for _, item := range toList(v) {
		if s := toString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toRawJSON re-encodes a decoded value so it can be stored as an opaque
// column. Nil input and empty strings stay nil so absence survives the
// round trip.
func toRawJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
