package config

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

// BuiltinPrefix marks the Source of palette files that ship with the binary.
const BuiltinPrefix = "builtin:"

// Palette file extensions recognized when scanning directories.
const (
	LegacyExt = ".conf"
	LuaExt    = ".lua"
)

//go:embed palconfig/*.conf
var builtinFS embed.FS

// Builtin parses the embedded default palette files: qualitative,
// single-hue and multi-hue sequential, and diverging. Files are returned in
// name order.
func Builtin() ([]*PaletteFile, error) {
	names, err := fs.Glob(builtinFS, "palconfig/*"+LegacyExt)
	if err != nil {
		return nil, err
	}

	parser := NewLegacyParser()
	files := make([]*PaletteFile, 0, len(names))
	for _, name := range names {
		content, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in palettes %s: %w", name, err)
		}
		f, err := parser.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("built-in palettes %s: %w", name, err)
		}
		f.Source = BuiltinPrefix + path.Base(name)
		files = append(files, f)
	}
	return files, nil
}
