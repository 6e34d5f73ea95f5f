package bridge

import (
	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/frame"
)

// Option configures a DynamicTexture during creation.
type Option func(*config)

type config struct {
	size       *pixibabylon.Size
	name       string
	resolution float64
	autoUpdate bool
	stage      pixibabylon.StageRenderer
	scene      pixibabylon.Scene
	orch       *frame.Orchestrator
}

// WithSize sets the capture size in logical pixels. Without this option
// the content's natural bounding size is used.
func WithSize(width, height float64) Option {
	return func(c *config) {
		c.size = &pixibabylon.Size{Width: width, Height: height}
	}
}

// WithName sets a debug name for the texture.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithResolution sets the resolution multiplier. Without this option the
// stage renderer's device pixel ratio is inherited.
func WithResolution(resolution float64) Option {
	return func(c *config) {
		c.resolution = resolution
	}
}

// WithAutoUpdate enables per-frame re-capture of the content. The default
// is off: the caller syncs explicitly after mutating the content.
func WithAutoUpdate(enabled bool) Option {
	return func(c *config) {
		c.autoUpdate = enabled
	}
}

// WithStage sets an explicit stage renderer. Must be paired with WithScene;
// explicit references bypass the registry entirely.
func WithStage(stage pixibabylon.StageRenderer) Option {
	return func(c *config) {
		c.stage = stage
	}
}

// WithScene sets an explicit 3D scene. Must be paired with WithStage;
// explicit references bypass the registry entirely.
func WithScene(scene pixibabylon.Scene) Option {
	return func(c *config) {
		c.scene = scene
	}
}

// WithOrchestrator pins the texture to a specific orchestrator for Render
// and auto-update scheduling, instead of the ambient current one.
func WithOrchestrator(o *frame.Orchestrator) Option {
	return func(c *config) {
		c.orch = o
	}
}
