package palette

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDivergingDefault(t *testing.T) {
	p, err := DivergingHCL(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("DivergingHCL failed: %v", err)
	}
	got, err := p.Colors(5)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	want := []string{"#023FA5", "#A1A6C8", "#E2E2E2", "#CA9CA4", "#8E063B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	b, err := p.Generate(5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	h, _ := b.Get("H")
	c, _ := b.Get("C")
	l, _ := b.Get("L")
	if diff := cmp.Diff([]float64{260, 260, 0, 0, 0}, h); diff != "" {
		t.Errorf("hue mismatch (-want +got):\n%s", diff)
	}
	if c[2] != 0.1 || l[2] != 90 {
		t.Errorf("center should have C=0.1 L=90, got C=%v L=%v", c[2], l[2])
	}
	for i := range l {
		if l[i] > l[2] || c[i] < c[2] {
			t.Errorf("element %d (C=%v L=%v) outranks the center", i, c[i], l[i])
		}
	}
}

func TestSequentialDefault(t *testing.T) {
	p, err := SequentialHCL(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("SequentialHCL failed: %v", err)
	}
	got, err := p.Colors(5)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	want := []string{"#023FA5", "#6576BD", "#9BA5DC", "#C4CBF6", "#DBE1FF"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestSequentialCMax(t *testing.T) {
	p, err := SequentialHCL([]float64{320, 200}, []float64{40, 65, 5}, []float64{15, 98}, []float64{1.2, 1.3})
	if err != nil {
		t.Fatalf("SequentialHCL failed: %v", err)
	}
	got, err := p.Colors(5)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	want := []string{"#540046", "#8346A1", "#9099CA", "#BED6E6", "#F2FBFC"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	b, _ := p.Generate(11)
	c, _ := b.Get("C")
	peak := 0
	for i := range c {
		if c[i] > c[peak] {
			peak = i
		}
	}
	if peak == 0 || peak == len(c)-1 {
		t.Errorf("chroma should peak inside the ramp, peaked at %d: %v", peak, c)
	}

	if _, err := SequentialHCL(nil, []float64{40, 40, 5}, nil, nil); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("cmax equal to c1 should be rejected, got %v", err)
	}
}

func TestQualitative(t *testing.T) {
	tests := []struct {
		name string
		h    []float64
		n    int
		hues []float64
		hex  []string
	}{
		{"explicit range", []float64{0, 240}, 3, []float64{0, 120, 240}, []string{"#E495A5", "#86B875", "#7DB0DD"}},
		{"default span", nil, 3, []float64{0, 135, 270}, []string{"#E495A5", "#72BB83", "#ACA4E2"}},
		{"single hue spans", []float64{30}, 2, []float64{30, 270}, nil},
		{"one color", []float64{0, 240}, 1, []float64{0}, []string{"#E495A5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := QualitativeHCL(tt.h, nil, nil)
			if err != nil {
				t.Fatalf("QualitativeHCL failed: %v", err)
			}
			b, err := p.Generate(tt.n)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			h, _ := b.Get("H")
			if diff := cmp.Diff(tt.hues, h, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("hue mismatch (-want +got):\n%s", diff)
			}
			if tt.hex == nil {
				return
			}
			got, _ := p.Colors(tt.n)
			if diff := cmp.Diff(tt.hex, got); diff != "" {
				t.Errorf("colors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRainbow(t *testing.T) {
	p, err := RainbowHCL(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("RainbowHCL failed: %v", err)
	}
	got, err := p.Colors(4)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	want := []string{"#E495A5", "#ABB065", "#39BEB1", "#ACA4E2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	if p.Kind() != Qualitative {
		t.Errorf("rainbow should be qualitative, got %s", p.Kind())
	}
}

func TestRevAlphaFixup(t *testing.T) {
	p, err := DivergingHCL(nil, nil, nil, nil, WithRev(true), WithAlpha(0.5))
	if err != nil {
		t.Fatalf("DivergingHCL failed: %v", err)
	}
	got, err := p.Colors(3)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	want := []string{"#8E063B50", "#E2E2E250", "#023FA550"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	loud, err := QualitativeHCL([]float64{120}, []float64{200}, []float64{50}, WithFixup(false))
	if err != nil {
		t.Fatalf("QualitativeHCL failed: %v", err)
	}
	hex, err := loud.Colors(1)
	if err != nil {
		t.Fatalf("Colors failed: %v", err)
	}
	if hex[0] != "" {
		t.Errorf("expected out-of-gamut color to be invalid without fixup, got %q", hex[0])
	}
}

func TestInvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Palette, error)
	}{
		{"empty hue", func() (*Palette, error) { return SequentialHCL([]float64{}, nil, nil, nil) }},
		{"NaN chroma", func() (*Palette, error) { return DivergingHCL(nil, []float64{nan()}, nil, nil) }},
		{"empty c", func() (*Palette, error) { return QualitativeHCL(nil, []float64{}, nil) }},
		{"alpha range", func() (*Palette, error) { return QualitativeHCL(nil, nil, nil, WithAlpha(2)) }},
		{"zero n", func() (*Palette, error) { return QualitativeHCL(nil, nil, nil, WithN(0)) }},
		{"cmax on diverging", func() (*Palette, error) {
			return New(Diverging, Settings{CMax: Float(50)})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("expected ErrInvalidSetting, got %v", err)
			}
		})
	}

	p, _ := QualitativeHCL(nil, nil, nil)
	for _, n := range []int{0, -3} {
		if _, err := p.Colors(n); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("n=%d: expected ErrInvalidSetting, got %v", n, err)
		}
	}
	if _, err := New(Kind(9), Settings{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestWithOverrides(t *testing.T) {
	base, err := New(Sequential, Settings{
		H1: Float(260), C1: Float(80), C2: Float(30), L1: Float(30), L2: Float(90), P1: Float(1.5), N: Int(7),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if base.N() != 7 {
		t.Errorf("expected N 7, got %d", base.N())
	}

	// h2 falls back to h1, giving the single-hue blues.
	got, _ := base.Colors(5)
	if diff := cmp.Diff([]string{"#023FA5", "#6576BD", "#9BA5DC", "#C4CBF6", "#DBE1FF"}, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	over, err := base.With(Settings{Rev: Bool(true)})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	got, _ = over.Colors(5)
	if diff := cmp.Diff([]string{"#DBE1FF", "#C4CBF6", "#9BA5DC", "#6576BD", "#023FA5"}, got); diff != "" {
		t.Errorf("reversed colors mismatch (-want +got):\n%s", diff)
	}
	if base.Settings().Rev != nil {
		t.Error("With modified the base palette")
	}
}

func TestFromSettings(t *testing.T) {
	p, err := FromSettings("diverge_hcl", map[string]any{
		"desc": "Blue-Red", "h1": 260, "h2": 0, "c1": 80, "l1": 30, "l2": 90, "p1": 1.5, "fixup": 1,
	})
	if err != nil {
		t.Fatalf("FromSettings failed: %v", err)
	}
	got, _ := p.Colors(5)
	if diff := cmp.Diff([]string{"#023FA5", "#A1A6C8", "#E2E2E2", "#CA9CA4", "#8E063B"}, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	if p.Settings().Desc != "Blue-Red" {
		t.Errorf("unexpected desc %q", p.Settings().Desc)
	}

	if _, err := FromSettings("spline_hcl", nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	rb, err := FromSettings("rainbow_hcl", map[string]any{"c1": 50, "l1": 70, "h1": 0})
	if err != nil {
		t.Fatalf("FromSettings failed: %v", err)
	}
	got, _ = rb.Colors(4)
	if diff := cmp.Diff([]string{"#E495A5", "#ABB065", "#39BEB1", "#ACA4E2"}, got); diff != "" {
		t.Errorf("rainbow mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"qualitative", Qualitative, true},
		{"Sequential (multi-hue)", Sequential, true},
		{"sequential_hcl", Sequential, true},
		{" diverge_hcl ", Diverging, true},
		{"Diverging", Diverging, true},
		{"cvd", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	for _, k := range Kinds() {
		if got, _ := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) did not round trip", k)
		}
	}
}
