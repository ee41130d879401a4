// Package lua provides Golua integration for go-colorspace.
// This file implements the 'colorspace' module that exposes color
// conversion and palette generation to Lua scripts.
package lua

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorspace/pkg/colorspace"
	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// ModuleName is the global and package.loaded name of the module.
const ModuleName = "colorspace"

// ColorspaceModule provides the colorspace table to Lua scripts:
//
//	colorspace.convert(from, to, a, b, c [, fixup]) -> a, b, c | hex
//	colorspace.hcl(h, c, l [, fixup])                -> hex | nil
//	colorspace.hex(hex, to)                          -> a, b, c
//	colorspace.palette(kind, n [, settings])         -> { hex, ... }
//	colorspace.lighten(colors, amount [, method [, space [, fixup]]]) -> colors
//	colorspace.darken(colors, amount [, space [, fixup]])             -> colors
//	colorspace.luminance(colors)                     -> number | { number, ... }
//	colorspace.contrast(colors [, bg])               -> number | { number, ... }
//	colorspace.max_chroma(h, l [, floor])            -> number | { number, ... }
//	colorspace.transparency(colors [, mode])         -> { alpha, ... } | nil
//	colorspace.adjust_transparency(colors, alpha)    -> colors
//	colorspace.spaces                                -> { name, ... }
//
// colors is a hex string or an array of hex strings; results keep that
// shape, with invalid colors as nil (string) or false (array).
type ColorspaceModule struct {
	runtime *Runtime
}

// NewColorspaceModule registers the colorspace table as a global and in
// package.loaded, so both `colorspace.hcl(...)` and `require "colorspace"`
// work.
func NewColorspaceModule(runtime *Runtime) (*ColorspaceModule, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	cm := &ColorspaceModule{runtime: runtime}
	cm.registerModule()
	return cm, nil
}

func (cm *ColorspaceModule) registerModule() {
	table := rt.NewTable()
	cm.setTableGoFunction(table, "convert", cm.convert, 6)
	cm.setTableGoFunction(table, "hcl", cm.hcl, 4)
	cm.setTableGoFunction(table, "hex", cm.hex, 2)
	cm.setTableGoFunction(table, "palette", cm.palette, 3)
	cm.setTableGoFunction(table, "lighten", cm.lighten, 5)
	cm.setTableGoFunction(table, "darken", cm.darken, 4)
	cm.setTableGoFunction(table, "luminance", cm.luminance, 1)
	cm.setTableGoFunction(table, "contrast", cm.contrast, 2)
	cm.setTableGoFunction(table, "max_chroma", cm.maxChroma, 3)
	cm.setTableGoFunction(table, "transparency", cm.transparency, 2)
	cm.setTableGoFunction(table, "adjust_transparency", cm.adjustTransparency, 2)

	spaces := rt.NewTable()
	for i, s := range colorspace.Spaces() {
		spaces.Set(rt.IntValue(int64(i+1)), rt.StringValue(s.String()))
	}
	table.Set(rt.StringValue("spaces"), rt.TableValue(spaces))

	tableVal := rt.TableValue(table)
	cm.runtime.SetGlobal(ModuleName, tableVal)

	pkgVal := cm.runtime.registry("package")
	pkgTable, ok := pkgVal.TryTable()
	if !ok {
		return
	}
	if loaded, ok := pkgTable.Get(rt.StringValue("loaded")).TryTable(); ok {
		loaded.Set(rt.StringValue(ModuleName), tableVal)
	}
}

// setTableGoFunction registers a Go function in a Lua table.
func (cm *ColorspaceModule) setTableGoFunction(table *rt.Table, name string, fn rt.GoFunctionFunc, nArgs int) {
	goFunc := rt.NewGoFunction(fn, name, nArgs, false)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	table.Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

func spaceArg(args []rt.Value, idx int) (colorspace.Space, error) {
	name, err := stringArg(args, idx)
	if err != nil {
		return 0, err
	}
	s, ok := colorspace.ParseSpace(name)
	if !ok {
		return 0, fmt.Errorf("argument #%d: unknown color space %q", idx+1, name)
	}
	return s, nil
}

func tripleArgs(args []rt.Value, first int) (v [3]float64, err error) {
	for i := range v {
		if v[i], err = floatArg(args, first+i); err != nil {
			return v, err
		}
	}
	return v, nil
}

// pushResult returns the single color of b, as a hex string (nil when
// invalid) for hex batches and as three numbers otherwise.
func pushResult(t *rt.Thread, c *rt.GoCont, b *colorspace.Batch) (rt.Cont, error) {
	if b.Space() == colorspace.Hex {
		hex := b.Colors(false, false)[0]
		if hex == "" {
			return c.PushingNext1(t.Runtime, rt.NilValue), nil
		}
		return c.PushingNext1(t.Runtime, rt.StringValue(hex)), nil
	}
	var vals [3]rt.Value
	for i, name := range b.Channels() {
		ch, _ := b.Get(name)
		vals[i] = rt.FloatValue(ch[0])
	}
	return c.PushingNext(t.Runtime, vals[0], vals[1], vals[2]), nil
}

// convert handles colorspace.convert(from, to, a, b, c [, fixup]).
func (cm *ColorspaceModule) convert(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	from, err := spaceArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}
	to, err := spaceArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}
	v, err := tripleArgs(args, 2)
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}
	fixup, err := optBoolArg(args, 5, true)
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}

	b, err := colorspace.New(from, []float64{v[0]}, []float64{v[1]}, []float64{v[2]})
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}
	out, err := b.Convert(to, fixup)
	if err != nil {
		return nil, fmt.Errorf("colorspace.convert: %w", err)
	}
	return pushResult(t, c, out)
}

// hcl handles colorspace.hcl(h, c, l [, fixup]).
func (cm *ColorspaceModule) hcl(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	v, err := tripleArgs(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hcl: %w", err)
	}
	fixup, err := optBoolArg(args, 3, true)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hcl: %w", err)
	}
	b, err := colorspace.NewHCL([]float64{v[0]}, []float64{v[1]}, []float64{v[2]})
	if err != nil {
		return nil, fmt.Errorf("colorspace.hcl: %w", err)
	}
	out, err := b.Convert(colorspace.Hex, fixup)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hcl: %w", err)
	}
	return pushResult(t, c, out)
}

// hex handles colorspace.hex(hex, to).
func (cm *ColorspaceModule) hex(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	code, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hex: %w", err)
	}
	to, err := spaceArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hex: %w", err)
	}
	if to == colorspace.Hex {
		return nil, fmt.Errorf("colorspace.hex: target must be a numeric space")
	}
	b, err := colorspace.NewHex([]string{code})
	if err != nil {
		return nil, fmt.Errorf("colorspace.hex: %w", err)
	}
	out, err := b.Convert(to, true)
	if err != nil {
		return nil, fmt.Errorf("colorspace.hex: %w", err)
	}
	return pushResult(t, c, out)
}

// palette handles colorspace.palette(kind, n [, settings]). kind is any
// palette method or family name, e.g. "sequential_hcl" or "diverging".
func (cm *ColorspaceModule) palette(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	kind, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	table, err := optTableArg(args, 2)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	settings, err := SettingsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	p, err := palette.FromSettings(kind, settings)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	hex, err := p.Colors(n)
	if err != nil {
		return nil, fmt.Errorf("colorspace.palette: %w", err)
	}
	return c.PushingNext1(t.Runtime, rt.TableValue(hexTable(hex))), nil
}

// colorsArg reads a hex string or an array of hex strings. single reports
// whether a plain string was given.
func colorsArg(args []rt.Value, idx int) (b *colorspace.Batch, single bool, err error) {
	if idx >= len(args) {
		return nil, false, fmt.Errorf("argument #%d missing (have %d)", idx+1, len(args))
	}
	var hex []string
	if s, ok := args[idx].TryString(); ok {
		hex, single = []string{s}, true
	} else if t, ok := args[idx].TryTable(); ok {
		if hex, err = StringArray(t); err != nil {
			return nil, false, fmt.Errorf("argument #%d: %w", idx+1, err)
		}
	} else {
		return nil, false, fmt.Errorf("argument #%d must be a hex string or an array of them", idx+1)
	}
	b, err = colorspace.NewHex(hex)
	return b, single, err
}

// numbersArg reads a number or an array of numbers.
func numbersArg(args []rt.Value, idx int) (v []float64, single bool, err error) {
	if idx < len(args) {
		if t, ok := args[idx].TryTable(); ok {
			for i := int64(1); ; i++ {
				e := t.Get(rt.IntValue(i))
				if e == rt.NilValue {
					return v, false, nil
				}
				f, ok := e.TryFloat()
				if !ok {
					n, isInt := e.TryInt()
					if !isInt {
						return nil, false, fmt.Errorf("argument #%d: element %d is not a number", idx+1, i)
					}
					f = float64(n)
				}
				v = append(v, f)
			}
		}
	}
	f, err := floatArg(args, idx)
	return []float64{f}, true, err
}

func pushColors(t *rt.Thread, c *rt.GoCont, b *colorspace.Batch, single bool) (rt.Cont, error) {
	hex := b.Colors(true, false)
	if !single {
		return c.PushingNext1(t.Runtime, rt.TableValue(hexTable(hex))), nil
	}
	if hex[0] == "" {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(hex[0])), nil
}

func pushNumbers(t *rt.Thread, c *rt.GoCont, v []float64, single bool) (rt.Cont, error) {
	if single {
		return c.PushingNext1(t.Runtime, rt.FloatValue(v[0])), nil
	}
	tbl := rt.NewTable()
	for i, f := range v {
		tbl.Set(rt.IntValue(int64(i+1)), rt.FloatValue(f))
	}
	return c.PushingNext1(t.Runtime, rt.TableValue(tbl)), nil
}

// lightenArgs reads the optional method name at idx (when withMethod) and
// the optional space name and fixup flag after it.
func lightenArgs(args []rt.Value, idx int, withMethod bool) (opts colorspace.LightenOptions, fixup bool, err error) {
	optString := func(i int) (string, bool, error) {
		if i >= len(args) || args[i] == rt.NilValue {
			return "", false, nil
		}
		s, err := stringArg(args, i)
		return s, err == nil, err
	}
	if withMethod {
		name, ok, err := optString(idx)
		if err != nil {
			return opts, false, err
		}
		if ok {
			if opts.Method, ok = colorspace.ParseLightenMethod(name); !ok {
				return opts, false, fmt.Errorf("argument #%d: unknown method %q (want relative or absolute)", idx+1, name)
			}
		}
		idx++
	}
	name, ok, err := optString(idx)
	if err != nil {
		return opts, false, err
	}
	if ok {
		if opts.Space, ok = colorspace.ParseLightenSpace(name); !ok {
			return opts, false, fmt.Errorf("argument #%d: unknown space %q (want HCL, HLS or combined)", idx+1, name)
		}
	}
	fixup, err = optBoolArg(args, idx+1, true)
	return opts, fixup, err
}

// lighten handles colorspace.lighten(colors, amount [, method [, space [, fixup]]]).
func (cm *ColorspaceModule) lighten(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return cm.adjustLightness(t, c, "lighten", 1, true)
}

// darken handles colorspace.darken(colors, amount [, space [, fixup]]).
func (cm *ColorspaceModule) darken(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return cm.adjustLightness(t, c, "darken", -1, false)
}

func (cm *ColorspaceModule) adjustLightness(t *rt.Thread, c *rt.GoCont, name string, sign float64, withMethod bool) (rt.Cont, error) {
	args := allArgs(c)
	b, single, err := colorsArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.%s: %w", name, err)
	}
	amount, err := floatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("colorspace.%s: %w", name, err)
	}
	opts, fixup, err := lightenArgs(args, 2, withMethod)
	if err != nil {
		return nil, fmt.Errorf("colorspace.%s: %w", name, err)
	}
	out, err := b.Lighten(sign*amount, opts, fixup)
	if err != nil {
		return nil, fmt.Errorf("colorspace.%s: %w", name, err)
	}
	return pushColors(t, c, out, single)
}

// luminance handles colorspace.luminance(colors).
func (cm *ColorspaceModule) luminance(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	b, single, err := colorsArg(allArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.luminance: %w", err)
	}
	lum, err := b.RelativeLuminance()
	if err != nil {
		return nil, fmt.Errorf("colorspace.luminance: %w", err)
	}
	return pushNumbers(t, c, lum, single)
}

// contrast handles colorspace.contrast(colors [, bg]); bg defaults to white.
func (cm *ColorspaceModule) contrast(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	fg, single, err := colorsArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.contrast: %w", err)
	}
	var bg *colorspace.Batch
	if len(args) > 1 && args[1] != rt.NilValue {
		var bgSingle bool
		if bg, bgSingle, err = colorsArg(args, 1); err != nil {
			return nil, fmt.Errorf("colorspace.contrast: %w", err)
		}
		single = single && bgSingle
	}
	ratio, err := colorspace.ContrastRatio(fg, bg)
	if err != nil {
		return nil, fmt.Errorf("colorspace.contrast: %w", err)
	}
	return pushNumbers(t, c, ratio, single)
}

// maxChroma handles colorspace.max_chroma(h, l [, floor]).
func (cm *ColorspaceModule) maxChroma(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	h, hSingle, err := numbersArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.max_chroma: %w", err)
	}
	l, lSingle, err := numbersArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("colorspace.max_chroma: %w", err)
	}
	floor, err := optBoolArg(args, 2, false)
	if err != nil {
		return nil, fmt.Errorf("colorspace.max_chroma: %w", err)
	}
	limit, err := colorspace.MaxChroma(h, l, floor)
	if err != nil {
		return nil, fmt.Errorf("colorspace.max_chroma: %w", err)
	}
	return pushNumbers(t, c, limit, hSingle && lSingle)
}

// transparency handles colorspace.transparency(colors [, mode]). mode is
// "float" (default), "int" for 0..255 or "str" for hex alpha suffixes.
// Colors without alpha give nil.
func (cm *ColorspaceModule) transparency(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	b, _, err := colorsArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.transparency: %w", err)
	}
	mode := "float"
	if len(args) > 1 && args[1] != rt.NilValue {
		if mode, err = stringArg(args, 1); err != nil {
			return nil, fmt.Errorf("colorspace.transparency: %w", err)
		}
	}
	if !b.HasAlpha() {
		switch mode {
		case "float", "int", "str":
			return c.PushingNext1(t.Runtime, rt.NilValue), nil
		}
	}

	tbl := rt.NewTable()
	switch mode {
	case "float":
		for i, a := range b.Alpha() {
			tbl.Set(rt.IntValue(int64(i+1)), rt.FloatValue(a))
		}
	case "int":
		for i, a := range b.AlphaBytes() {
			tbl.Set(rt.IntValue(int64(i+1)), rt.IntValue(int64(a)))
		}
	case "str":
		for i, a := range b.AlphaSuffixes() {
			tbl.Set(rt.IntValue(int64(i+1)), rt.StringValue(a))
		}
	default:
		return nil, fmt.Errorf("colorspace.transparency: unknown mode %q (want float, int or str)", mode)
	}
	return c.PushingNext1(t.Runtime, rt.TableValue(tbl)), nil
}

// adjustTransparency handles colorspace.adjust_transparency(colors, alpha).
// alpha is nil to remove transparency, a number, or one number per color.
func (cm *ColorspaceModule) adjustTransparency(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := allArgs(c)
	b, single, err := colorsArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("colorspace.adjust_transparency: %w", err)
	}
	var alpha []float64
	if len(args) > 1 && args[1] != rt.NilValue {
		if alpha, _, err = numbersArg(args, 1); err != nil {
			return nil, fmt.Errorf("colorspace.adjust_transparency: %w", err)
		}
		if alpha == nil {
			alpha = []float64{}
		}
	}
	out, err := b.AdjustTransparency(alpha)
	if err != nil {
		return nil, fmt.Errorf("colorspace.adjust_transparency: %w", err)
	}
	return pushColors(t, c, out, single)
}
