package palette

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// SettingKeys lists the keys of the settings contract in display order.
var SettingKeys = []string{
	"desc", "h1", "h2", "c1", "cmax", "c2", "l1", "l2", "p1", "p2",
	"n", "fixup", "rev", "alpha",
}

// Settings is the flat parameter record shared by palette files, the
// registry and the generators. A nil field is unset and falls back to a
// default when the palette is built.
type Settings struct {
	Desc string

	H1, H2 *float64
	C1, C2 *float64
	CMax   *float64
	L1, L2 *float64
	P1, P2 *float64
	N      *int
	Fixup  *bool
	Rev    *bool
	Alpha  *float64
}

// Float returns a pointer to v, for filling Settings literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// floatFields maps numeric keys onto their fields.
func (s *Settings) floatFields() map[string]**float64 {
	return map[string]**float64{
		"h1": &s.H1, "h2": &s.H2,
		"c1": &s.C1, "c2": &s.C2, "cmax": &s.CMax,
		"l1": &s.L1, "l2": &s.L2,
		"p1": &s.P1, "p2": &s.P2,
		"alpha": &s.Alpha,
	}
}

// ParseSettings builds Settings from a key/value map as produced by palette
// file parsers. Keys are case-insensitive.
//
// Numeric keys accept any Go integer or float type. n must be a positive
// integer. fixup and rev accept bool or an integer (non-zero is true).
// desc must be a string.
func ParseSettings(m map[string]any) (Settings, error) {
	var s Settings
	fields := s.floatFields()
	for rawKey, v := range m {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		switch key {
		case "desc":
			str, ok := v.(string)
			if !ok {
				return Settings{}, badSetting(key, "want string, got %T", v)
			}
			s.Desc = str
		case "n":
			f, ok := toFloat(v)
			if !ok || f != math.Trunc(f) {
				return Settings{}, badSetting(key, "want integer, got %v", v)
			}
			if f <= 0 {
				return Settings{}, badSetting(key, "must be positive, got %v", v)
			}
			s.N = Int(int(f))
		case "fixup", "rev":
			b, ok := toBool(v)
			if !ok {
				return Settings{}, badSetting(key, "want bool, got %T", v)
			}
			if key == "fixup" {
				s.Fixup = Bool(b)
			} else {
				s.Rev = Bool(b)
			}
		default:
			field, known := fields[key]
			if !known {
				return Settings{}, &SettingError{Key: rawKey, Message: "not a palette setting", Err: ErrUnknownSetting}
			}
			f, ok := toFloat(v)
			if !ok {
				return Settings{}, badSetting(key, "want number, got %T", v)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return Settings{}, badSetting(key, "value %v is not finite", f)
			}
			*field = Float(f)
		}
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if f, ok := toFloat(v); ok && f == math.Trunc(f) {
		return f != 0, true
	}
	return false, false
}

// Map returns the set fields keyed by setting name. Hue, chroma and
// luminance are emitted as int when integral, p1, p2 and alpha as float64.
func (s Settings) Map() map[string]any {
	m := make(map[string]any)
	if s.Desc != "" {
		m["desc"] = s.Desc
	}
	for key, field := range s.floatFields() {
		if *field == nil {
			continue
		}
		v := **field
		switch {
		case key == "p1" || key == "p2" || key == "alpha":
			m[key] = v
		case v == math.Trunc(v):
			m[key] = int(v)
		default:
			m[key] = v
		}
	}
	if s.N != nil {
		m["n"] = *s.N
	}
	if s.Fixup != nil {
		m["fixup"] = *s.Fixup
	}
	if s.Rev != nil {
		m["rev"] = *s.Rev
	}
	return m
}

// Keys returns the names of the set fields in SettingKeys order.
func (s Settings) Keys() []string {
	m := s.Map()
	var keys []string
	for _, k := range SettingKeys {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Merge returns s with every field set in over replacing its counterpart.
func (s Settings) Merge(over Settings) Settings {
	out := s.Clone()
	if over.Desc != "" {
		out.Desc = over.Desc
	}
	dst := out.floatFields()
	for key, field := range over.floatFields() {
		if *field != nil {
			*dst[key] = Float(**field)
		}
	}
	if over.N != nil {
		out.N = Int(*over.N)
	}
	if over.Fixup != nil {
		out.Fixup = Bool(*over.Fixup)
	}
	if over.Rev != nil {
		out.Rev = Bool(*over.Rev)
	}
	return out
}

// Clone returns a copy of s that shares no pointers with it.
func (s Settings) Clone() Settings {
	out := Settings{Desc: s.Desc}
	dst := out.floatFields()
	for key, field := range s.floatFields() {
		if *field != nil {
			*dst[key] = Float(**field)
		}
	}
	if s.N != nil {
		out.N = Int(*s.N)
	}
	if s.Fixup != nil {
		out.Fixup = Bool(*s.Fixup)
	}
	if s.Rev != nil {
		out.Rev = Bool(*s.Rev)
	}
	return out
}

// String renders the set fields as "key=value" pairs.
func (s Settings) String() string {
	m := s.Map()
	parts := make([]string, 0, len(m))
	for _, k := range s.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}

// IsKey reports whether key belongs to the settings contract.
func IsKey(key string) bool {
	return slices.Contains(SettingKeys, strings.ToLower(key))
}
