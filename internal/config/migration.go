// Package config provides configuration parsing and migration for go-colorspace.
// This file implements conversion of INI palette files to the Lua format.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// Migrator converts INI palette definitions to Lua palette files.
type Migrator struct {
	// includeComments adds a header and the source file name to the output.
	includeComments bool
	// includeParameter writes the parameter list.
	includeParameter bool
}

// MigratorOption is a functional option for configuring a Migrator.
type MigratorOption func(*Migrator)

// WithComments enables adding explanatory comments to the Lua output.
func WithComments(include bool) MigratorOption {
	return func(m *Migrator) {
		m.includeComments = include
	}
}

// WithParameter controls whether the parameter list is written.
func WithParameter(include bool) MigratorOption {
	return func(m *Migrator) {
		m.includeParameter = include
	}
}

// NewMigrator creates a new Migrator with the given options.
func NewMigrator(opts ...MigratorOption) *Migrator {
	m := &Migrator{
		includeComments:  true,
		includeParameter: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MigrateToLua renders f as a Lua palette file. Settings are written in
// the canonical key order.
func (m *Migrator) MigrateToLua(f *PaletteFile) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("palette file is nil")
	}

	var buf bytes.Buffer

	if m.includeComments {
		buf.WriteString("-- go-colorspace palette definitions\n")
		if f.Source != "" {
			fmt.Fprintf(&buf, "-- Converted from %s\n", f.Source)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("palettes = {\n")
	m.writeString(&buf, "    ", "type", f.Type)
	m.writeString(&buf, "    ", "method", f.Method)
	if m.includeParameter && len(f.Parameter) > 0 {
		quoted := make([]string, len(f.Parameter))
		for i, p := range f.Parameter {
			quoted[i] = luaQuote(p)
		}
		fmt.Fprintf(&buf, "    parameter = { %s },\n", strings.Join(quoted, ", "))
	}

	for _, d := range f.Palettes {
		buf.WriteString("    {\n")
		m.writeString(&buf, "        ", "name", d.Name)
		for _, key := range palette.SettingKeys {
			val, ok := d.Settings[key]
			if !ok {
				continue
			}
			if err := m.writeValue(&buf, "        ", key, val); err != nil {
				return nil, fmt.Errorf("palette %q: %w", d.Name, err)
			}
		}
		buf.WriteString("    },\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func (m *Migrator) writeValue(buf *bytes.Buffer, indent, name string, val any) error {
	switch v := val.(type) {
	case string:
		m.writeString(buf, indent, name, v)
	case bool:
		m.writeBool(buf, indent, name, v)
	case int:
		m.writeInt(buf, indent, name, int64(v))
	case int64:
		m.writeInt(buf, indent, name, v)
	case float64:
		m.writeFloat(buf, indent, name, v)
	default:
		return fmt.Errorf("%s: unsupported value type %T", name, val)
	}
	return nil
}

func (m *Migrator) writeBool(buf *bytes.Buffer, indent, name string, value bool) {
	fmt.Fprintf(buf, "%s%s = %t,\n", indent, name, value)
}

func (m *Migrator) writeString(buf *bytes.Buffer, indent, name, value string) {
	fmt.Fprintf(buf, "%s%s = %s,\n", indent, name, luaQuote(value))
}

func (m *Migrator) writeInt(buf *bytes.Buffer, indent, name string, value int64) {
	fmt.Fprintf(buf, "%s%s = %d,\n", indent, name, value)
}

// writeFloat keeps a decimal point so integral values stay Lua floats.
func (m *Migrator) writeFloat(buf *bytes.Buffer, indent, name string, value float64) {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if value == math.Trunc(value) && !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	fmt.Fprintf(buf, "%s%s = %s,\n", indent, name, s)
}

// luaQuote renders s as a double-quoted Lua string literal.
func luaQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, "\\%03d", c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// MigrateLegacyFile reads an INI palette file and converts it to Lua format.
func MigrateLegacyFile(path string, opts ...MigratorOption) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := NewLegacyParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette file: %w", err)
	}
	f.Source = path

	return NewMigrator(opts...).MigrateToLua(f)
}

// MigrateLegacyContent converts INI palette content to Lua format.
func MigrateLegacyContent(content []byte, opts ...MigratorOption) ([]byte, error) {
	f, err := NewLegacyParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette file: %w", err)
	}

	return NewMigrator(opts...).MigrateToLua(f)
}
