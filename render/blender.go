package render

// BlendMode picks how a color is composited onto a cell background
type BlendMode uint8

const (
	// BlendAlpha paints node fills over the background
	BlendAlpha BlendMode = iota + 1
	// BlendScreen lets overlapping glows brighten without clipping
	BlendScreen
)

// apply composites src onto dst
func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	}
	return dst
}
