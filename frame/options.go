package frame

import (
	"fmt"

	pixibabylon "github.com/littleboarx/pixi-babylon"
)

// DrawOrder is the policy for when the stage renderer's draw span runs
// relative to the engine's within a frame.
type DrawOrder uint8

// Draw order policies.
const (
	// DrawAfter runs the stage span after the engine span. This is the
	// default: 2D content ends up composited over the 3D scene.
	DrawAfter DrawOrder = iota

	// DrawBefore runs the stage span before the engine span.
	DrawBefore

	// DrawBoth runs a stage span on both sides of the engine span.
	DrawBoth
)

// String returns a human-readable name for the draw order.
func (d DrawOrder) String() string {
	switch d {
	case DrawAfter:
		return "After"
	case DrawBefore:
		return "Before"
	case DrawBoth:
		return "Both"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(d))
	}
}

// Option configures an Orchestrator during creation.
type Option func(*config)

type config struct {
	drawOrder          DrawOrder
	clearColor         *pixibabylon.Color
	clearDepth         bool
	clearStencil       bool
	wipeCaches         bool
	autoResetPeerState bool
}

func defaultConfig() config {
	return config{
		drawOrder:          DrawAfter,
		wipeCaches:         true,
		autoResetPeerState: true,
	}
}

// WithDrawOrder sets when the stage span runs relative to the engine span.
// The default is DrawAfter.
func WithDrawOrder(d DrawOrder) Option {
	return func(c *config) {
		c.drawOrder = d
	}
}

// WithClearColor sets an explicit clear color applied once per frame,
// overriding each renderer's own default. Without this option the frame
// performs no color clear of its own.
func WithClearColor(col pixibabylon.Color) Option {
	return func(c *config) {
		c.clearColor = &col
	}
}

// WithClearDepth enables an explicit depth buffer clear once per frame.
func WithClearDepth() Option {
	return func(c *config) {
		c.clearDepth = true
	}
}

// WithClearStencil enables an explicit stencil buffer clear once per frame.
// The stencil test is disabled before the clear, because the two renderers
// disagree on stencil test defaults.
func WithClearStencil() Option {
	return func(c *config) {
		c.clearStencil = true
	}
}

// WithWipeCaches controls whether the engine's lazily cached pipeline state
// is invalidated before its render each frame. The default is true; turn it
// off only when the stage span is known not to touch state the engine
// caches.
func WithWipeCaches(enabled bool) Option {
	return func(c *config) {
		c.wipeCaches = enabled
	}
}

// WithAutoResetPeerState controls whether the stage renderer's internal
// state cache is reset around its draw span. The default is true.
func WithAutoResetPeerState(enabled bool) Option {
	return func(c *config) {
		c.autoResetPeerState = enabled
	}
}
