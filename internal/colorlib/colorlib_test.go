package colorlib

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// approx compares float slices with an absolute margin and treats NaNs as equal.
func approx(margin float64) cmp.Options {
	return cmp.Options{cmpopts.EquateApprox(0, margin), cmpopts.EquateNaNs()}
}

// unitGrid returns n evenly spaced values covering [0,1].
func unitGrid(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func TestRecycle(t *testing.T) {
	tests := []struct {
		name    string
		in      []float64
		n       int
		want    []float64
		wantErr error
	}{
		{"scalar", []float64{2.4}, 3, []float64{2.4, 2.4, 2.4}, nil},
		{"full", []float64{1, 2, 3}, 3, []float64{1, 2, 3}, nil},
		{"empty", nil, 3, nil, ErrEmptyParameter},
		{"wrong length", []float64{1, 2}, 3, nil, ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Recycle(tt.in, tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Recycle error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Recycle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-90, 270},
		{-1080, 0},
		{359.9, 359.9},
		{-1e-14, 0},
		{-1e-300, 0},
	}
	for _, tt := range tests {
		got := WrapHue(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapHue(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("WrapHue(%v) = %v, outside [0, 360)", tt.in, got)
		}
	}
	if !math.IsNaN(WrapHue(math.Inf(1))) {
		t.Error("WrapHue(+Inf) should be NaN")
	}
	if !math.IsNaN(WrapHue(math.NaN())) {
		t.Error("WrapHue(NaN) should be NaN")
	}
}

func TestGammaRoundTrip(t *testing.T) {
	u := unitGrid(1001)
	gamma := []float64{DefaultGamma}

	enc, err := GammaEncode(u, gamma)
	if err != nil {
		t.Fatalf("GammaEncode failed: %v", err)
	}
	dec, err := GammaDecode(enc, gamma)
	if err != nil {
		t.Fatalf("GammaDecode failed: %v", err)
	}
	if diff := cmp.Diff(u, dec, approx(1e-6)); diff != "" {
		t.Errorf("gamma round trip mismatch (-want +got):\n%s", diff)
	}
	if enc[0] != 0 || math.Abs(enc[len(enc)-1]-1) > 1e-12 {
		t.Errorf("expected endpoints 0 and 1, got %v and %v", enc[0], enc[len(enc)-1])
	}
}

func TestGammaPerElement(t *testing.T) {
	u := []float64{0.5, 0.5}
	enc, err := GammaEncode(u, []float64{2.4, 1.0})
	if err != nil {
		t.Fatalf("GammaEncode failed: %v", err)
	}
	if want := 1.055*0.5 - 0.055; math.Abs(enc[1]-want) > 1e-12 {
		t.Errorf("gamma 1 encode = %v, want %v", enc[1], want)
	}
	if enc[0] <= enc[1] {
		t.Errorf("gamma 2.4 should brighten mid tones: %v <= %v", enc[0], enc[1])
	}
	if _, err := GammaEncode(u, []float64{2.4, 2.4, 2.4}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestRGBToXYZWhite(t *testing.T) {
	one := []float64{1}
	x, y, z, err := RGBToXYZ(one, one, one, D65())
	if err != nil {
		t.Fatalf("RGBToXYZ failed: %v", err)
	}
	got := []float64{x[0], y[0], z[0]}
	want := []float64{95.0456, 100, 108.8754}
	if diff := cmp.Diff(want, got, approx(1e-9)); diff != "" {
		t.Errorf("white mismatch (-want +got):\n%s", diff)
	}
}

func TestRGBXYZRoundTrip(t *testing.T) {
	r := []float64{0, 1, 0, 0, 0.25, 0.8}
	g := []float64{0, 0, 1, 0, 0.5, 0.1}
	b := []float64{0, 0, 0, 1, 0.75, 0.9}
	wp := D65()

	x, y, z, err := RGBToXYZ(r, g, b, wp)
	if err != nil {
		t.Fatalf("RGBToXYZ failed: %v", err)
	}
	r2, g2, b2, err := XYZToRGB(x, y, z, wp)
	if err != nil {
		t.Fatalf("XYZToRGB failed: %v", err)
	}
	for _, pair := range [][2][]float64{{r, r2}, {g, g2}, {b, b2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-5)); diff != "" {
			t.Errorf("RGB round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestXYZToLABWhitepoint(t *testing.T) {
	wp := D65()
	l, a, b, err := XYZToLAB([]float64{wp.X}, []float64{wp.Y}, []float64{wp.Z}, wp)
	if err != nil {
		t.Fatalf("XYZToLAB failed: %v", err)
	}
	if diff := cmp.Diff([]float64{100, 0, 0}, []float64{l[0], a[0], b[0]}, approx(1e-9)); diff != "" {
		t.Errorf("whitepoint LAB mismatch (-want +got):\n%s", diff)
	}
}

func TestLABRoundTrip(t *testing.T) {
	wp := D65()
	x := []float64{0, 0.1, 5, 41.24, 95.047, 30}
	y := []float64{0, 0.05, 5, 21.26, 100, 60}
	z := []float64{0, 0.2, 5, 1.93, 108.883, 10}

	l, a, b, err := XYZToLAB(x, y, z, wp)
	if err != nil {
		t.Fatalf("XYZToLAB failed: %v", err)
	}
	x2, y2, z2, err := LABToXYZ(l, a, b, wp)
	if err != nil {
		t.Fatalf("LABToXYZ failed: %v", err)
	}
	for _, pair := range [][2][]float64{{x, x2}, {y, y2}, {z, z2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-9)); diff != "" {
			t.Errorf("LAB round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLABToXYZLightnessBranches(t *testing.T) {
	wp := D65()
	zero := []float64{0, 0, 0, 0}
	_, y, _, err := LABToXYZ([]float64{-5, 4, 50, 150}, zero, zero, wp)
	if err != nil {
		t.Fatalf("LABToXYZ failed: %v", err)
	}
	want := []float64{0, 4 * wp.Y / Kappa, wp.Y * math.Pow(66.0/116, 3), wp.Y}
	if diff := cmp.Diff(want, y, approx(1e-9)); diff != "" {
		t.Errorf("Y mismatch (-want +got):\n%s", diff)
	}

	_, y, _, _ = LABToXYZ([]float64{math.NaN()}, []float64{0}, []float64{0}, wp)
	if !math.IsNaN(y[0]) {
		t.Errorf("NaN lightness should stay NaN, got %v", y[0])
	}
}

func TestLUVRoundTrip(t *testing.T) {
	wp := D65()
	x := []float64{95.047, 41.24, 35.76, 18.05, 20, 0.5}
	y := []float64{100, 21.26, 71.52, 7.22, 30, 0.4}
	z := []float64{108.883, 1.93, 11.92, 95.05, 40, 0.3}

	l, u, v, err := XYZToLUV(x, y, z, wp)
	if err != nil {
		t.Fatalf("XYZToLUV failed: %v", err)
	}
	if math.Abs(l[0]-100) > 1e-9 || math.Abs(u[0]) > 1e-9 || math.Abs(v[0]) > 1e-9 {
		t.Errorf("whitepoint should map to (100, 0, 0), got (%v, %v, %v)", l[0], u[0], v[0])
	}
	x2, y2, z2, err := LUVToXYZ(l, u, v, wp)
	if err != nil {
		t.Fatalf("LUVToXYZ failed: %v", err)
	}
	for _, pair := range [][2][]float64{{x, x2}, {y, y2}, {z, z2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-8)); diff != "" {
			t.Errorf("LUV round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLUVToXYZBlack(t *testing.T) {
	x, y, z, err := LUVToXYZ([]float64{0, -1}, []float64{0, 0}, []float64{0, 0}, D65())
	if err != nil {
		t.Fatalf("LUVToXYZ failed: %v", err)
	}
	for i := range x {
		if x[i] != 0 || y[i] != 0 || z[i] != 0 {
			t.Errorf("element %d: expected black, got (%v, %v, %v)", i, x[i], y[i], z[i])
		}
	}
}

func TestXYZToLUVZeroSum(t *testing.T) {
	l, u, v, err := XYZToLUV([]float64{0}, []float64{0}, []float64{0}, D65())
	if err != nil {
		t.Fatalf("XYZToLUV failed: %v", err)
	}
	if l[0] != 0 || math.IsNaN(u[0]) || math.IsNaN(v[0]) {
		t.Errorf("zero XYZ should give finite LUV with L=0, got (%v, %v, %v)", l[0], u[0], v[0])
	}
}

func TestPolarHueRange(t *testing.T) {
	var a, b []float64
	for i := -10; i <= 10; i++ {
		for j := -10; j <= 10; j++ {
			a = append(a, float64(i)*7.3)
			b = append(b, float64(j)*3.1)
		}
	}
	l := make([]float64, len(a))

	h, _, _, err := LUVToPolarLUV(l, a, b)
	if err != nil {
		t.Fatalf("LUVToPolarLUV failed: %v", err)
	}
	for i, v := range h {
		if v < 0 || v >= 360 {
			t.Fatalf("hue %d out of range: %v", i, v)
		}
	}

	_, _, ph, err := LABToPolarLAB(l, a, b)
	if err != nil {
		t.Fatalf("LABToPolarLAB failed: %v", err)
	}
	if diff := cmp.Diff(h, ph); diff != "" {
		t.Errorf("LAB and LUV polar hues differ (-luv +lab):\n%s", diff)
	}

	// atan2 of a tiny negative v lands just below 360 before wrapping.
	h, _, _, err = LUVToPolarLUV([]float64{50}, []float64{1}, []float64{-1e-300})
	if err != nil {
		t.Fatalf("LUVToPolarLUV failed: %v", err)
	}
	if h[0] != 0 {
		t.Errorf("hue for v=-1e-300 = %v, want 0", h[0])
	}
}

func TestPolarRoundTrip(t *testing.T) {
	l := []float64{50, 60, 70, 80}
	u := []float64{1, 0, -1, 0}
	v := []float64{0, 1, 0, -1}

	h, c, pl, err := LUVToPolarLUV(l, u, v)
	if err != nil {
		t.Fatalf("LUVToPolarLUV failed: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 90, 180, 270}, h, approx(1e-9)); diff != "" {
		t.Errorf("hue mismatch (-want +got):\n%s", diff)
	}
	l2, u2, v2, err := PolarLUVToLUV(h, c, pl)
	if err != nil {
		t.Fatalf("PolarLUVToLUV failed: %v", err)
	}
	for _, pair := range [][2][]float64{{l, l2}, {u, u2}, {v, v2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-12)); diff != "" {
			t.Errorf("polar round trip mismatch (-want +got):\n%s", diff)
		}
	}

	pl2, c2, h2, err := LABToPolarLAB(l, u, v)
	if err != nil {
		t.Fatalf("LABToPolarLAB failed: %v", err)
	}
	l3, a3, b3, err := PolarLABToLAB(pl2, c2, h2)
	if err != nil {
		t.Fatalf("PolarLABToLAB failed: %v", err)
	}
	for _, pair := range [][2][]float64{{l, l3}, {u, a3}, {v, b3}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-12)); diff != "" {
			t.Errorf("polarLAB round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestHSV(t *testing.T) {
	r := []float64{1, 0, 0, 0.5, 1, 0.2}
	g := []float64{0, 1, 0, 0.5, 1, 0.6}
	b := []float64{0, 0, 1, 0.5, 0, 0.4}

	h, s, v, err := SRGBToHSV(r, g, b)
	if err != nil {
		t.Fatalf("SRGBToHSV failed: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 120, 240, 0, 60, 150}, h, approx(1e-9)); diff != "" {
		t.Errorf("hue mismatch (-want +got):\n%s", diff)
	}
	if s[3] != 0 || v[3] != 0.5 {
		t.Errorf("grey should have s=0, v=0.5, got s=%v v=%v", s[3], v[3])
	}

	r2, g2, b2, err := HSVToSRGB(h, s, v)
	if err != nil {
		t.Fatalf("HSVToSRGB failed: %v", err)
	}
	for _, pair := range [][2][]float64{{r, r2}, {g, g2}, {b, b2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-12)); diff != "" {
			t.Errorf("HSV round trip mismatch (-want +got):\n%s", diff)
		}
	}

	r3, g3, b3, _ := HSVToSRGB([]float64{math.NaN()}, []float64{1}, []float64{0.3})
	if r3[0] != 0.3 || g3[0] != 0.3 || b3[0] != 0.3 {
		t.Errorf("NaN hue should give grey, got (%v, %v, %v)", r3[0], g3[0], b3[0])
	}
}

func TestHLS(t *testing.T) {
	r := []float64{1, 0, 0, 0.5, 0.2, 0.9}
	g := []float64{0, 1, 0, 0.5, 0.6, 0.8}
	b := []float64{0, 0, 1, 0.5, 0.4, 0.1}

	h, l, s, err := SRGBToHLS(r, g, b)
	if err != nil {
		t.Fatalf("SRGBToHLS failed: %v", err)
	}
	if h[0] != 0 || l[0] != 0.5 || s[0] != 1 {
		t.Errorf("red should be (0, 0.5, 1), got (%v, %v, %v)", h[0], l[0], s[0])
	}
	if h[1] != 120 || h[2] != 240 {
		t.Errorf("expected hues 120 and 240, got %v and %v", h[1], h[2])
	}

	r2, g2, b2, err := HLSToSRGB(h, l, s)
	if err != nil {
		t.Fatalf("HLSToSRGB failed: %v", err)
	}
	for _, pair := range [][2][]float64{{r, r2}, {g, g2}, {b, b2}} {
		if diff := cmp.Diff(pair[0], pair[1], approx(1e-12)); diff != "" {
			t.Errorf("HLS round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSRGBToHex(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		fixup   bool
		want    string
	}{
		{"red", 1, 0, 0, true, "#FF0000"},
		{"rounding", 1, 0, 0.5, true, "#FF0080"},
		{"clamped", 1.2, -0.1, 0.5, true, "#FF0080"},
		{"out of gamut without fixup", 1.2, 0, 0.5, false, InvalidHex},
		{"NaN", math.NaN(), 0, 0, true, InvalidHex},
		{"Inf", math.Inf(1), 0, 0, true, InvalidHex},
		{"black", 0, 0, 0, false, "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SRGBToHex([]float64{tt.r}, []float64{tt.g}, []float64{tt.b}, tt.fixup)
			if err != nil {
				t.Fatalf("SRGBToHex failed: %v", err)
			}
			if got[0] != tt.want {
				t.Errorf("SRGBToHex = %q, want %q", got[0], tt.want)
			}
		})
	}
}

func TestHexToSRGB(t *testing.T) {
	r, g, b, alpha := HexToSRGB([]string{"#ff0080", "#FF008075", "red", "#FF00", "#GG0000", "#FF0000AA", "#FF00007F"})

	if r[0] != 1 || g[0] != 0 || b[0] != 128.0/255 {
		t.Errorf("unexpected channels for #ff0080: (%v, %v, %v)", r[0], g[0], b[0])
	}
	if !math.IsNaN(alpha[0]) {
		t.Errorf("expected no alpha for 7-char hex, got %v", alpha[0])
	}
	if alpha[1] != 0.75 {
		t.Errorf("expected alpha 0.75, got %v", alpha[1])
	}
	for i := 2; i < 7; i++ {
		if !math.IsNaN(r[i]) || !math.IsNaN(g[i]) || !math.IsNaN(b[i]) {
			t.Errorf("element %d: expected NaN channels for invalid hex", i)
		}
	}
}

func TestAlphaSuffix(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, ""},
		{1.5, ""},
		{math.NaN(), ""},
		{0.5, "50"},
		{0.75, "75"},
		{0.755, "75"},
		{0.29, "29"},
		{0.999999999999, "99"},
		{0, "00"},
		{-0.2, "00"},
	}
	for _, tt := range tests {
		if got := AlphaSuffix(tt.in); got != tt.want {
			t.Errorf("AlphaSuffix(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// hexFormat is the accepted hex color format: six hex digits followed by an
// optional two digit decimal opacity.
var hexFormat = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9]{2})?$`)

func TestHexAlphaFormat(t *testing.T) {
	for _, s := range []string{"#FF0000", "#ff000075", "#FF000000", "#FF0000AA", "#FF00007F", "#FF0000A0", "#FF0000"} {
		if got, want := ValidHex(s), hexFormat.MatchString(s); got != want {
			t.Errorf("ValidHex(%q) = %v, want %v", s, got, want)
		}
	}

	r, g, b := []float64{1, 0, 0}, []float64{0, 1, 0}, []float64{0, 0, 1}
	hex, err := SRGBToHex(r, g, b, false)
	if err != nil {
		t.Fatalf("SRGBToHex failed: %v", err)
	}
	for i, a := range []float64{0.75, 0, 0.01} {
		s := hex[i] + AlphaSuffix(a)
		if !hexFormat.MatchString(s) {
			t.Errorf("encoded %q does not match %s", s, hexFormat)
		}
		if _, _, _, alpha := HexToSRGB([]string{s}); alpha[0] != a {
			t.Errorf("alpha of %q decoded as %v, want %v", s, alpha[0], a)
		}
	}
	if got := hex[0] + AlphaSuffix(0.75); got != "#FF000075" {
		t.Errorf("red at alpha 0.75 = %q, want #FF000075", got)
	}
}

func TestLengthMismatch(t *testing.T) {
	short := []float64{1}
	long := []float64{1, 2}
	wp := D65()

	checks := map[string]error{}
	_, _, _, checks["RGBToXYZ"] = RGBToXYZ(short, long, short, wp)
	_, _, _, checks["XYZToLAB"] = XYZToLAB(short, short, long, wp)
	_, _, _, checks["LUVToXYZ"] = LUVToXYZ(long, short, short, wp)
	_, _, _, checks["SRGBToHSV"] = SRGBToHSV(short, long, short)
	_, _, _, checks["HLSToSRGB"] = HLSToSRGB(short, short, long)
	_, _, _, checks["PolarLUVToLUV"] = PolarLUVToLUV(long, short, short)
	_, checks["SRGBToHex"] = SRGBToHex(short, short, long, true)

	for name, err := range checks {
		if !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("%s: expected ErrLengthMismatch, got %v", name, err)
		}
	}
}

func TestWhitepointValidate(t *testing.T) {
	if err := D65().Validate(); err != nil {
		t.Errorf("D65 should be valid: %v", err)
	}
	bad := []Whitepoint{
		{X: 0, Y: 100, Z: 100},
		{X: 95, Y: -1, Z: 100},
		{X: 95, Y: 100, Z: math.Inf(1)},
		{X: math.NaN(), Y: 100, Z: 100},
	}
	for _, wp := range bad {
		if err := wp.Validate(); !errors.Is(err, ErrInvalidWhitepoint) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidWhitepoint", wp, err)
		}
	}
}
