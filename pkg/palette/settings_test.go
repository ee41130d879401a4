package palette

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func nan() float64 { return math.NaN() }

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings(map[string]any{
		"Desc":  "Blues 3",
		"h1":    int64(245),
		"c1":    50,
		"cmax":  75.0,
		"c2":    int32(10),
		"l1":    20,
		"l2":    98,
		"p1":    0.8,
		"p2":    float32(1.5),
		"n":     7.0,
		"fixup": 0,
		"rev":   true,
	})
	if err != nil {
		t.Fatalf("ParseSettings failed: %v", err)
	}
	want := map[string]any{
		"desc": "Blues 3", "h1": 245, "c1": 50, "cmax": 75, "c2": 10,
		"l1": 20, "l2": 98, "p1": 0.8, "p2": 1.5, "n": 7, "fixup": false, "rev": true,
	}
	if diff := cmp.Diff(want, s.Map()); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
	wantKeys := []string{"desc", "h1", "c1", "cmax", "c2", "l1", "l2", "p1", "p2", "n", "fixup", "rev"}
	if diff := cmp.Diff(wantKeys, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]any
		unknown bool
	}{
		{"unknown key", map[string]any{"h3": 1}, true},
		{"string number", map[string]any{"h1": "260"}, false},
		{"fractional n", map[string]any{"n": 2.5}, false},
		{"negative n", map[string]any{"n": -1}, false},
		{"NaN", map[string]any{"c1": math.NaN()}, false},
		{"infinite", map[string]any{"l1": math.Inf(-1)}, false},
		{"bool type", map[string]any{"fixup": "yes"}, false},
		{"desc type", map[string]any{"desc": 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings(tt.in)
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("expected ErrInvalidSetting, got %v", err)
			}
			if got := errors.Is(err, ErrUnknownSetting); got != tt.unknown {
				t.Errorf("errors.Is(ErrUnknownSetting) = %v, want %v", got, tt.unknown)
			}
		})
	}
}

func TestMergeAndClone(t *testing.T) {
	base := Settings{Desc: "base", H1: Float(10), C1: Float(20), Fixup: Bool(true)}
	over := Settings{H1: Float(99), L1: Float(50), Fixup: Bool(false)}

	got := base.Merge(over)
	want := map[string]any{"desc": "base", "h1": 99, "c1": 20, "l1": 50, "fixup": false}
	if diff := cmp.Diff(want, got.Map()); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	if *base.H1 != 10 || !*base.Fixup {
		t.Error("Merge modified its receiver")
	}

	c := base.Clone()
	*c.C1 = 1
	if *base.C1 != 20 {
		t.Error("Clone shares pointers with the original")
	}
	if s := base.String(); s != "desc=base h1=10 c1=20 fixup=true" {
		t.Errorf("unexpected String(): %q", s)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		in      []float64
		length  int
		recycle bool
		want    []float64
		wantErr bool
	}{
		{"exact", []float64{1, 2}, 2, false, []float64{1, 2}, false},
		{"truncate", []float64{1, 2, 3}, 2, false, []float64{1, 2}, false},
		{"recycle scalar", []float64{5}, 2, true, []float64{5, 5}, false},
		{"recycle pattern", []float64{1, 2}, 5, true, []float64{1, 2, 1, 2, 1}, false},
		{"short without recycle", []float64{1}, 2, false, nil, true},
		{"empty", nil, 1, true, nil, true},
		{"NaN", []float64{1, math.NaN()}, 2, false, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce("x", tt.in, tt.length, tt.recycle)
			if (err != nil) != tt.wantErr {
				t.Fatalf("coerce error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("coerce mismatch (-want +got):\n%s", diff)
			}
		})
	}

	in := []float64{1, 2, 3}
	out, _ := coerce("x", in, 2, false)
	out[0] = 9
	if in[0] != 1 {
		t.Error("coerce aliases its input")
	}
}

func TestLinspace(t *testing.T) {
	if diff := cmp.Diff([]float64{1, 0.5, 0, -0.5, -1}, linspace(1, -1, 5)); diff != "" {
		t.Errorf("linspace mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{7}, linspace(7, 9, 1)); diff != "" {
		t.Errorf("single-value linspace mismatch (-want +got):\n%s", diff)
	}
	if got := linspace(0, 1, 3); got[2] != 1 {
		t.Errorf("linspace should end exactly at b, got %v", got)
	}
}
