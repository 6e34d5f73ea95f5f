package pixibabylon

// Size is a width/height pair in logical (pre-resolution) pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsZeroArea reports whether the size has no drawable area.
func (s Size) IsZeroArea() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}
