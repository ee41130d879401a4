// Package config provides configuration parsing for go-colorspace.
// This file implements the INI parser for .conf palette definition files.

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LegacyParser parses INI palette definition files. A file has a [main]
// section naming the type, method and parameter list, followed by one
// [palette NAME] section per palette.
type LegacyParser struct{}

// NewLegacyParser creates a new LegacyParser instance.
func NewLegacyParser() *LegacyParser {
	return &LegacyParser{}
}

var paletteSectionPattern = regexp.MustCompile(`(?i)^palette(\s.*)?$`)

// Parse parses INI palette definitions from content bytes.
func (p *LegacyParser) Parse(content []byte) (*PaletteFile, error) {
	f := &PaletteFile{}
	scanner := bufio.NewScanner(bytes.NewReader(content))

	const (
		outside = iota
		inMain
		inPalette
		inOther
	)
	section := outside
	var current *PaletteDef
	var sawMain bool
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())

		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header %q", lineNum, trimmed)
			}
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			current = nil
			switch {
			case strings.EqualFold(name, "main"):
				if sawMain {
					return nil, fmt.Errorf("line %d: duplicate [main] section", lineNum)
				}
				sawMain = true
				section = inMain
			case paletteSectionPattern.MatchString(name):
				palName := strings.TrimSpace(paletteSectionPattern.FindStringSubmatch(name)[1])
				if palName == "" {
					return nil, fmt.Errorf("line %d: palette section without a name", lineNum)
				}
				f.Palettes = append(f.Palettes, PaletteDef{
					Name:     palName,
					Settings: make(map[string]any),
					Line:     lineNum,
				})
				current = &f.Palettes[len(f.Palettes)-1]
				section = inPalette
			default:
				section = inOther
			}
			continue
		}

		key, value, ok := splitDirective(trimmed)
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = value, got %q", lineNum, trimmed)
		}

		switch section {
		case outside:
			return nil, fmt.Errorf("line %d: %q outside of any section", lineNum, key)
		case inMain:
			if err := p.parseMain(f, key, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		case inPalette:
			if _, dup := current.Settings[key]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q in palette %q", lineNum, key, current.Name)
			}
			v, err := parseSetting(key, value)
			if err != nil {
				return nil, fmt.Errorf("line %d: palette %q: %w", lineNum, current.Name, err)
			}
			current.Settings[key] = v
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading palette file: %w", err)
	}

	if !sawMain {
		return nil, fmt.Errorf("missing [main] section")
	}
	if f.Type == "" || f.Method == "" {
		return nil, fmt.Errorf("[main] requires type and method")
	}
	return f, nil
}

// splitDirective splits "key = value" or "key: value".
func splitDirective(line string) (key, value string, ok bool) {
	idx := strings.IndexAny(line, "=:")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return key, value, key != ""
}

func (p *LegacyParser) parseMain(f *PaletteFile, key, value string) error {
	switch key {
	case "type":
		f.Type = value
	case "method":
		f.Method = value
	case "parameter":
		f.Parameter = splitList(value)
	default:
		return fmt.Errorf("unknown key %q in [main]", key)
	}
	return nil
}

// ParseSettingList parses "key=value" pairs separated by commas, as given
// to the -set flag, with the value rules of palette files.
func ParseSettingList(s string) (map[string]any, error) {
	m := make(map[string]any)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, ok := splitDirective(part)
		if !ok {
			return nil, fmt.Errorf("invalid setting %q (want key=value)", strings.TrimSpace(part))
		}
		v, err := parseSetting(key, value)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	return m, nil
}

// parseSetting converts a palette value by key: desc is text, p1, p2 and
// alpha are floats, fixup and rev are booleans, everything else is an
// integer.
func parseSetting(key, value string) (any, error) {
	switch key {
	case "desc":
		return value, nil
	case "fixup", "rev":
		b, ok := parseBool(value)
		if !ok {
			return nil, fmt.Errorf("invalid %s value %q", key, value)
		}
		return b, nil
	case "p1", "p2", "alpha":
		v, err := parseFloat(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", key, err)
		}
		return v, nil
	default:
		v, err := parseInt(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", key, err)
		}
		return v, nil
	}
}

// parseBool accepts integers (non-zero is true) and yes/no, true/false, on/off.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "true", "on":
		return true, true
	case "no", "false", "off":
		return false, true
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return false, false
	}
	return i != 0, true
}

// parseFloat parses a float value from a string.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseInt parses an integer value from a string.
func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
