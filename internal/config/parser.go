// Package config provides configuration parsing for go-colorspace.
// This file implements the unified parser that auto-detects the palette file format.

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Parser provides a unified interface for parsing palette definition files.
// It automatically detects whether a file uses the INI or the Lua format.
type Parser struct {
	legacyParser *LegacyParser
	luaParser    *LuaConfigParser
}

// NewParser creates a new Parser that can handle both INI and Lua files.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		legacyParser: NewLegacyParser(),
		luaParser:    luaParser,
	}, nil
}

// ParseFile reads and parses a palette file, auto-detecting the format.
// The returned file records path as its Source.
func (p *Parser) ParseFile(path string) (*PaletteFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file %s: %w", path, err)
	}

	f, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Source = path
	return f, nil
}

// Parse parses palette definitions, auto-detecting the format.
// An assignment to "palettes" at the start of a line marks a Lua file.
func (p *Parser) Parse(content []byte) (*PaletteFile, error) {
	if isLuaConfig(content) {
		return p.luaParser.Parse(content)
	}
	return p.legacyParser.Parse(content)
}

// luaConfigPattern matches "palettes" followed by optional whitespace and "="
// at the start of a line.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*palettes\s*=`)

// isLuaConfig determines if the content is a Lua palette file.
func isLuaConfig(content []byte) bool {
	return luaConfigPattern.Match(content)
}

// ParseFromFS reads and parses a palette file from a filesystem such as the
// embedded built-ins.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*PaletteFile, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file from FS %s: %w", path, err)
	}

	f, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Source = path
	return f, nil
}

// ParseReader parses palette definitions from an io.Reader.
// The format parameter must be "legacy" or "lua".
func (p *Parser) ParseReader(r io.Reader, format string) (*PaletteFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette definitions: %w", err)
	}

	switch format {
	case "lua":
		return p.luaParser.Parse(content)
	case "legacy":
		return p.legacyParser.Parse(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'legacy')", format)
	}
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
