// Package config provides configuration parsing for go-colorspace.
// This file implements environment variable expansion for palette search paths.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SearchPathEnv overrides the default palette search path. It holds a list
// of directories separated by the OS list separator.
const SearchPathEnv = "COLORSPACE_PALETTE_PATH"

// envVarPattern matches environment variable references.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string.
// ${VAR:-default} yields the expanded default when VAR is unset or empty. Unset
// variables without a default expand to the empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if sub[2] != "" {
			return os.Getenv(sub[2])
		}

		name, def, hasDefault := strings.Cut(sub[1], ":-")
		if val := os.Getenv(name); val != "" || !hasDefault {
			return val
		}
		return ExpandEnv(def)
	})
}

// ExpandPath expands environment references and a leading "~/".
func ExpandPath(p string) string {
	p = ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// DefaultSearchPaths returns the directories scanned for user palette
// files: the entries of $COLORSPACE_PALETTE_PATH when set, otherwise
// ${XDG_CONFIG_HOME:-$HOME/.config}/colorspace.
func DefaultSearchPaths() []string {
	if v := os.Getenv(SearchPathEnv); v != "" {
		var dirs []string
		for _, d := range filepath.SplitList(v) {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, ExpandPath(d))
			}
		}
		return dirs
	}
	return []string{ExpandPath("${XDG_CONFIG_HOME:-$HOME/.config}/colorspace")}
}

// FindPaletteFiles lists the .conf and .lua files directly inside dirs, in
// name order per directory. Missing directories are skipped.
func FindPaletteFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ext := strings.ToLower(filepath.Ext(e.Name())); ext == LegacyExt || ext == LuaExt {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}
	return files, nil
}
