package lua

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// SettingsFromTable reads palette settings from a Lua table. Only the keys
// of palette.SettingKeys are read, so scripts may keep helper fields next
// to them. Integers are returned as int64 and other numbers as float64.
func SettingsFromTable(t *rt.Table) (map[string]any, error) {
	m := make(map[string]any)
	if t == nil {
		return m, nil
	}
	for _, key := range palette.SettingKeys {
		v := t.Get(rt.StringValue(key))
		if v == rt.NilValue {
			continue
		}
		conv, err := settingValue(key, v)
		if err != nil {
			return nil, err
		}
		m[key] = conv
	}
	return m, nil
}

func settingValue(key string, v rt.Value) (any, error) {
	switch key {
	case "desc":
		if s, ok := v.TryString(); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%s must be a string", key)
	case "fixup", "rev":
		if b, ok := v.TryBool(); ok {
			return b, nil
		}
		if i, ok := v.TryInt(); ok {
			return i != 0, nil
		}
		return nil, fmt.Errorf("%s must be a boolean", key)
	default:
		if i, ok := v.TryInt(); ok {
			return i, nil
		}
		if f, ok := v.TryFloat(); ok {
			return f, nil
		}
		return nil, fmt.Errorf("%s must be a number", key)
	}
}

// StringArray reads the array part of a Lua table as strings, stopping at
// the first nil.
func StringArray(t *rt.Table) ([]string, error) {
	var out []string
	for i := int64(1); ; i++ {
		v := t.Get(rt.IntValue(i))
		if v == rt.NilValue {
			return out, nil
		}
		s, ok := v.TryString()
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out = append(out, s)
	}
}

// hexTable builds a Lua array of hex strings. Invalid colors become false
// so the array keeps its length.
func hexTable(hex []string) *rt.Table {
	t := rt.NewTable()
	for i, h := range hex {
		v := rt.BoolValue(false)
		if h != "" {
			v = rt.StringValue(h)
		}
		t.Set(rt.IntValue(int64(i+1)), v)
	}
	return t
}

// allArgs combines Args() and Etc() to get all arguments including varargs.
func allArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func floatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument #%d missing (have %d)", idx+1, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument #%d is not a number", idx+1)
}

func intArg(args []rt.Value, idx int) (int, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument #%d missing (have %d)", idx+1, len(args))
	}
	if i, ok := args[idx].TryInt(); ok {
		return int(i), nil
	}
	if f, ok := args[idx].TryFloat(); ok && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("argument #%d is not an integer", idx+1)
}

func stringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument #%d missing (have %d)", idx+1, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument #%d is not a string", idx+1)
}

// optBoolArg returns def when the argument is absent or nil.
func optBoolArg(args []rt.Value, idx int, def bool) (bool, error) {
	if idx >= len(args) || args[idx] == rt.NilValue {
		return def, nil
	}
	if b, ok := args[idx].TryBool(); ok {
		return b, nil
	}
	return false, fmt.Errorf("argument #%d is not a boolean", idx+1)
}

// optTableArg returns nil when the argument is absent or nil.
func optTableArg(args []rt.Value, idx int) (*rt.Table, error) {
	if idx >= len(args) || args[idx] == rt.NilValue {
		return nil, nil
	}
	if t, ok := args[idx].TryTable(); ok {
		return t, nil
	}
	return nil, fmt.Errorf("argument #%d: %w", idx+1, ErrNotTable)
}
