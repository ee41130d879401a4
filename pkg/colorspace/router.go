package colorspace

// route is an ordered (source, target) pair.
type route struct {
	from, to Space
}

// paths lists the hops taken for every supported conversion. Each
// consecutive pair in a path, starting from the source, is an edge in edges.
var paths = map[route][]Space{
	// polar LUV
	{PolarLUV, CIELUV}:   {CIELUV},
	{PolarLUV, CIEXYZ}:   {CIELUV, CIEXYZ},
	{PolarLUV, CIELAB}:   {CIELUV, CIEXYZ, CIELAB},
	{PolarLUV, PolarLAB}: {CIELUV, CIEXYZ, CIELAB, PolarLAB},
	{PolarLUV, RGB}:      {CIELUV, CIEXYZ, RGB},
	{PolarLUV, SRGB}:     {CIELUV, CIEXYZ, RGB, SRGB},
	{PolarLUV, Hex}:      {CIELUV, CIEXYZ, RGB, SRGB, Hex},

	// CIELUV
	{CIELUV, PolarLUV}: {PolarLUV},
	{CIELUV, CIEXYZ}:   {CIEXYZ},
	{CIELUV, CIELAB}:   {CIEXYZ, CIELAB},
	{CIELUV, PolarLAB}: {CIEXYZ, CIELAB, PolarLAB},
	{CIELUV, RGB}:      {CIEXYZ, RGB},
	{CIELUV, SRGB}:     {CIEXYZ, RGB, SRGB},
	{CIELUV, Hex}:      {CIEXYZ, RGB, SRGB, Hex},

	// CIEXYZ
	{CIEXYZ, CIELUV}:   {CIELUV},
	{CIEXYZ, PolarLUV}: {CIELUV, PolarLUV},
	{CIEXYZ, CIELAB}:   {CIELAB},
	{CIEXYZ, PolarLAB}: {CIELAB, PolarLAB},
	{CIEXYZ, RGB}:      {RGB},
	{CIEXYZ, SRGB}:     {RGB, SRGB},
	{CIEXYZ, Hex}:      {RGB, SRGB, Hex},

	// CIELAB
	{CIELAB, PolarLAB}: {PolarLAB},
	{CIELAB, CIEXYZ}:   {CIEXYZ},
	{CIELAB, CIELUV}:   {CIEXYZ, CIELUV},
	{CIELAB, PolarLUV}: {CIEXYZ, CIELUV, PolarLUV},
	{CIELAB, RGB}:      {CIEXYZ, RGB},
	{CIELAB, SRGB}:     {CIEXYZ, RGB, SRGB},
	{CIELAB, Hex}:      {CIEXYZ, RGB, SRGB, Hex},

	// polar LAB
	{PolarLAB, CIELAB}:   {CIELAB},
	{PolarLAB, CIEXYZ}:   {CIELAB, CIEXYZ},
	{PolarLAB, CIELUV}:   {CIELAB, CIEXYZ, CIELUV},
	{PolarLAB, PolarLUV}: {CIELAB, CIEXYZ, CIELUV, PolarLUV},
	{PolarLAB, RGB}:      {CIELAB, CIEXYZ, RGB},
	{PolarLAB, SRGB}:     {CIELAB, CIEXYZ, RGB, SRGB},
	{PolarLAB, Hex}:      {CIELAB, CIEXYZ, RGB, SRGB, Hex},

	// linear RGB
	{RGB, SRGB}:     {SRGB},
	{RGB, CIEXYZ}:   {CIEXYZ},
	{RGB, CIELUV}:   {CIEXYZ, CIELUV},
	{RGB, PolarLUV}: {CIEXYZ, CIELUV, PolarLUV},
	{RGB, CIELAB}:   {CIEXYZ, CIELAB},
	{RGB, PolarLAB}: {CIEXYZ, CIELAB, PolarLAB},
	{RGB, HSV}:      {SRGB, HSV},
	{RGB, HLS}:      {SRGB, HLS},
	{RGB, Hex}:      {SRGB, Hex},

	// sRGB
	{SRGB, RGB}:      {RGB},
	{SRGB, CIEXYZ}:   {RGB, CIEXYZ},
	{SRGB, CIELUV}:   {RGB, CIEXYZ, CIELUV},
	{SRGB, PolarLUV}: {RGB, CIEXYZ, CIELUV, PolarLUV},
	{SRGB, CIELAB}:   {RGB, CIEXYZ, CIELAB},
	{SRGB, PolarLAB}: {RGB, CIEXYZ, CIELAB, PolarLAB},
	{SRGB, HSV}:      {HSV},
	{SRGB, HLS}:      {HLS},
	{SRGB, Hex}:      {Hex},

	// hex
	{Hex, SRGB}:     {SRGB},
	{Hex, RGB}:      {SRGB, RGB},
	{Hex, CIEXYZ}:   {SRGB, RGB, CIEXYZ},
	{Hex, CIELUV}:   {SRGB, RGB, CIEXYZ, CIELUV},
	{Hex, PolarLUV}: {SRGB, RGB, CIEXYZ, CIELUV, PolarLUV},
	{Hex, CIELAB}:   {SRGB, RGB, CIEXYZ, CIELAB},
	{Hex, PolarLAB}: {SRGB, RGB, CIEXYZ, CIELAB, PolarLAB},
	{Hex, HSV}:      {SRGB, HSV},
	{Hex, HLS}:      {SRGB, HLS},

	// HSV and HLS only reach the RGB family.
	{HSV, SRGB}: {SRGB},
	{HSV, RGB}:  {SRGB, RGB},
	{HSV, HLS}:  {SRGB, HLS},
	{HSV, Hex}:  {SRGB, Hex},
	{HLS, SRGB}: {SRGB},
	{HLS, RGB}:  {SRGB, RGB},
	{HLS, HSV}:  {SRGB, HSV},
	{HLS, Hex}:  {SRGB, Hex},
}

// ambiguous reports whether from and to sit on opposite sides of the
// device/CIE divide for HSV and HLS.
func ambiguous(from, to Space) bool {
	return (isHexcone(from) && isCIE(to)) || (isCIE(from) && isHexcone(to))
}

func isHexcone(s Space) bool {
	return s == HSV || s == HLS
}

func isCIE(s Space) bool {
	switch s {
	case CIEXYZ, CIELUV, CIELAB, PolarLUV, PolarLAB:
		return true
	}
	return false
}

// Path returns the spaces visited when converting from one space to another,
// excluding the source. It is empty when from == to.
func Path(from, to Space) ([]Space, error) {
	if !from.Valid() || !to.Valid() {
		return nil, &ConversionError{From: from, To: to, Err: ErrUnsupportedConversion}
	}
	if from == to {
		return []Space{}, nil
	}
	if ambiguous(from, to) {
		return nil, &ConversionError{From: from, To: to, Err: ErrAmbiguousConversion}
	}
	p, ok := paths[route{from, to}]
	if !ok {
		return nil, &ConversionError{From: from, To: to, Err: ErrUnsupportedConversion}
	}
	return append([]Space(nil), p...), nil
}
