package software

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"
	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/glstate"
)

// ErrTargetDestroyed is returned when rendering into a destroyed target.
var ErrTargetDestroyed = errors.New("software: render target destroyed")

// Target is a CPU-backed render target. The color buffer holds
// straight-alpha RGBA bytes, the layout the engine samples after the
// correction pass.
type Target struct {
	pix       *image.NRGBA
	tex       glstate.TextureID
	fbo       glstate.FramebufferID
	destroyed bool
}

// Width returns the target width in physical pixels.
func (t *Target) Width() int { return t.pix.Bounds().Dx() }

// Height returns the target height in physical pixels.
func (t *Target) Height() int { return t.pix.Bounds().Dy() }

// Format returns the pixel format (8-bit RGBA).
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// NativeTexture returns the texture handle backing the color buffer.
func (t *Target) NativeTexture() glstate.TextureID { return t.tex }

// Destroy releases the target. Further renders into it fail.
func (t *Target) Destroy() {
	t.destroyed = true
	t.tex = 0
}

// Destroyed reports whether Destroy was called.
func (t *Target) Destroyed() bool { return t.destroyed }

// Image returns the straight-alpha color buffer. The returned image shares
// memory with the target.
func (t *Target) Image() *image.NRGBA { return t.pix }

// Ensure Target implements RenderTarget.
var _ pixibabylon.RenderTarget = (*Target)(nil)
