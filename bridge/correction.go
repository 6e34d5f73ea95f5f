package bridge

import (
	_ "embed"
	"image"

	pixibabylon "github.com/littleboarx/pixi-babylon"
)

// Embedded GLSL shader sources for the correction pass.

//go:embed shaders/correction.vert
var correctionVertexSource string

//go:embed shaders/correction.frag
var correctionFragmentSource string

// CorrectionShaderSources returns the GLSL vertex and fragment sources of
// the correction pass. Stage renderer implementations that special-case the
// pass (the software renderer does) can recognize it by source identity.
func CorrectionShaderSources() (vertex, fragment string) {
	return correctionVertexSource, correctionFragmentSource
}

// NewCorrectionFilter compiles the correction pass with the stage
// renderer's own program abstraction.
//
// The pass is stateless and applied once per capture. The vertex stage maps
// a unit quad to the destination region and flips the second texture axis
// (v' = 1 - v), reconciling the stage renderer's top-left UV origin with
// the engine's bottom-left one. The fragment stage converts premultiplied
// alpha to straight alpha, emitting transparent black where alpha is zero.
func NewCorrectionFilter(stage pixibabylon.StageRenderer) (pixibabylon.Filter, error) {
	return stage.CompileFilter(correctionVertexSource, correctionFragmentSource)
}

// CorrectPixel applies the fragment stage's transform to one premultiplied
// RGBA pixel, returning the straight-alpha result. An opaque pixel passes
// through unchanged; a fully transparent one becomes transparent black
// whatever its RGB payload was.
func CorrectPixel(r, g, b, a uint8) (cr, cg, cb, ca uint8) {
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a == 0xFF {
		return r, g, b, a
	}
	// Round-to-nearest un-premultiply, clamped: premultiplied channels may
	// exceed alpha on sloppy inputs.
	un := func(c uint8) uint8 {
		v := (uint32(c)*0xFF + uint32(a)/2) / uint32(a)
		if v > 0xFF {
			v = 0xFF
		}
		return uint8(v)
	}
	return un(r), un(g), un(b), a
}

// CorrectImage applies the whole correction pass on the CPU: the source is
// flipped along its second axis and every pixel is un-premultiplied. The
// result uses image.NRGBA, the straight-alpha layout the engine samples.
// This is the reference implementation backing the software renderer.
func CorrectImage(src *image.RGBA) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		srcRow := src.Pix[(bounds.Min.Y+y)*src.Stride+bounds.Min.X*4:]
		dstRow := dst.Pix[(h-1-y)*dst.Stride:]
		for x := 0; x < w; x++ {
			r, g, b, a := CorrectPixel(srcRow[x*4], srcRow[x*4+1], srcRow[x*4+2], srcRow[x*4+3])
			dstRow[x*4] = r
			dstRow[x*4+1] = g
			dstRow[x*4+2] = b
			dstRow[x*4+3] = a
		}
	}
	return dst
}
