// Package config provides configuration parsing for go-colorspace.
// This file implements the Lua palette definition parser.

package config

import (
	"fmt"
	"io"
	"sync"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorspace/internal/lua"
)

// LuaConfigParser parses Lua palette definition files. A file assigns a
// global palettes table holding type, method and parameter fields plus
// one array entry per palette:
//
//	palettes = {
//	    type = "Diverging",
//	    method = "diverging_hcl",
//	    parameter = { "h1", "h2", "c1", "l1", "l2", "p1" },
//	    { name = "Blue-Red", h1 = 260, h2 = 0, c1 = 80, l1 = 30, l2 = 90, p1 = 1.5 },
//	}
//
// The colorspace module is loaded, so settings can be derived from colors.
type LuaConfigParser struct {
	runtime *lua.Runtime
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser that copies Lua
// print output to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	cfg := lua.DefaultConfig()
	cfg.Stdout = stdout
	runtime, err := lua.New(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := lua.NewColorspaceModule(runtime); err != nil {
		runtime.Close()
		return nil, err
	}
	return &LuaConfigParser{runtime: runtime}, nil
}

// Parse executes a Lua palette file and extracts the palettes table.
func (p *LuaConfigParser) Parse(content []byte) (*PaletteFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runtime == nil {
		return nil, ErrParserClosed
	}

	// Definitions from a previous file must not leak into this one.
	p.runtime.SetGlobal("palettes", rt.NilValue)
	p.runtime.ClearOutput()

	if _, err := p.runtime.ExecuteString("palettes", content); err != nil {
		return nil, fmt.Errorf("failed to execute Lua palette file: %w", err)
	}
	return p.extractPalettes()
}

// extractPalettes reads the palettes global.
func (p *LuaConfigParser) extractPalettes() (*PaletteFile, error) {
	val := p.runtime.GetGlobal("palettes")
	if val == rt.NilValue {
		return nil, fmt.Errorf("palettes table not defined")
	}
	table, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("palettes: %w", lua.ErrNotTable)
	}

	f := &PaletteFile{}
	if s := getTableString(table, "type"); s != nil {
		f.Type = *s
	}
	if s := getTableString(table, "method"); s != nil {
		f.Method = *s
	}
	if f.Type == "" || f.Method == "" {
		return nil, fmt.Errorf("palettes requires type and method")
	}

	params, err := parameterList(table.Get(rt.StringValue("parameter")))
	if err != nil {
		return nil, err
	}
	f.Parameter = params

	for i := int64(1); ; i++ {
		entry := table.Get(rt.IntValue(i))
		if entry == rt.NilValue {
			break
		}
		def, err := extractPalette(entry, i)
		if err != nil {
			return nil, err
		}
		f.Palettes = append(f.Palettes, def)
	}
	return f, nil
}

func extractPalette(val rt.Value, idx int64) (PaletteDef, error) {
	entry, ok := val.TryTable()
	if !ok {
		return PaletteDef{}, fmt.Errorf("palettes[%d]: %w", idx, lua.ErrNotTable)
	}
	name := getTableString(entry, "name")
	if name == nil || *name == "" {
		return PaletteDef{}, fmt.Errorf("palettes[%d]: missing name", idx)
	}
	settings, err := lua.SettingsFromTable(entry)
	if err != nil {
		return PaletteDef{}, fmt.Errorf("palette %q: %w", *name, err)
	}
	return PaletteDef{Name: *name, Settings: settings}, nil
}

// parameterList accepts a comma separated string or an array of strings.
func parameterList(val rt.Value) ([]string, error) {
	if val == rt.NilValue {
		return nil, nil
	}
	if s, ok := val.TryString(); ok {
		return splitList(s), nil
	}
	table, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("parameter must be a string or an array of strings")
	}
	items, err := lua.StringArray(table)
	if err != nil {
		return nil, fmt.Errorf("parameter: %w", err)
	}
	var out []string
	for _, item := range items {
		out = append(out, splitList(item)...)
	}
	return out, nil
}

// Close releases the Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runtime != nil {
		err := p.runtime.Close()
		p.runtime = nil
		return err
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}
