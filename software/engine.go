package software

import (
	"fmt"

	"github.com/gogpu/gputypes"
	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/frame"
	"github.com/littleboarx/pixi-babylon/glstate"
)

// Engine is a CPU scene engine.
//
// It renders nothing of its own; it tracks the calls the orchestrator and
// bridge make into it (cache wipes, renders, texture wraps) and signals its
// end-of-frame hook, which is what the coordination layers care about.
type Engine struct {
	gl           glstate.Context
	activeCamera bool
	renderErr    error

	wipeCount   int
	renderCount int
	endFrame    frame.HookList
}

// NewEngine creates an engine sharing the given context, with an active
// camera configured.
func NewEngine(gl glstate.Context) *Engine {
	return &Engine{gl: gl, activeCamera: true}
}

// GLContext returns the shared context.
func (e *Engine) GLContext() glstate.Context { return e.gl }

// DeviceHandle returns the null device; the software engine has no GPU.
func (e *Engine) DeviceHandle() pixibabylon.DeviceHandle {
	return pixibabylon.NullDeviceHandle{}
}

// HasActiveCamera reports whether a camera is configured.
func (e *Engine) HasActiveCamera() bool { return e.activeCamera }

// SetActiveCamera configures or removes the camera.
func (e *Engine) SetActiveCamera(active bool) { e.activeCamera = active }

// WipeCaches invalidates the (notional) pipeline caches.
func (e *Engine) WipeCaches() { e.wipeCount++ }

// WipeCount returns how many times WipeCaches was called.
func (e *Engine) WipeCount() int { return e.wipeCount }

// Render draws one frame and signals the end-of-frame hooks.
func (e *Engine) Render() error {
	if e.renderErr != nil {
		return e.renderErr
	}
	e.renderCount++
	e.endFrame.Notify()
	return nil
}

// RenderCount returns how many successful renders ran.
func (e *Engine) RenderCount() int { return e.renderCount }

// SetRenderError makes subsequent Render calls fail with err.
// Pass nil to recover.
func (e *Engine) SetRenderError(err error) { e.renderErr = err }

// OnEndFrame registers fn at the engine's end-of-frame point.
func (e *Engine) OnEndFrame(fn func()) (remove func()) {
	return e.endFrame.Add(fn)
}

// WrapTexture wraps an externally-created texture handle for material use.
// Only 8-bit RGBA is supported, matching what the bridge produces.
func (e *Engine) WrapTexture(tex glstate.TextureID, width, height int, format gputypes.TextureFormat) (pixibabylon.EngineTexture, error) {
	if format != gputypes.TextureFormatRGBA8Unorm {
		return nil, fmt.Errorf("software: unsupported wrap format %v", format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	return &EngineTexture{tex: tex}, nil
}

// EngineTexture is the engine-side wrapper of an external texture.
type EngineTexture struct {
	tex      glstate.TextureID
	released bool
}

// NativeTexture returns the wrapped handle.
func (t *EngineTexture) NativeTexture() glstate.TextureID { return t.tex }

// Release drops the wrapper; the underlying texture is untouched.
func (t *EngineTexture) Release() { t.released = true }

// Released reports whether Release was called.
func (t *EngineTexture) Released() bool { return t.released }

// Scene is one renderable scene of an Engine.
type Scene struct {
	engine *Engine
}

// NewScene creates a scene owned by engine.
func NewScene(engine *Engine) *Scene {
	return &Scene{engine: engine}
}

// Engine returns the owning engine.
func (s *Scene) Engine() pixibabylon.SceneEngine { return s.engine }

var (
	_ pixibabylon.SceneEngine = (*Engine)(nil)
	_ pixibabylon.Scene       = (*Scene)(nil)
)
