// Package bridge captures a 2D stage renderer's output into an offscreen
// render target and exposes the backing GPU texture to the 3D engine
// without a CPU copy.
package bridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/frame"
	"github.com/littleboarx/pixi-babylon/glstate"
	"github.com/littleboarx/pixi-babylon/registry"
)

// Configuration errors.
var (
	// ErrNilContent is returned when New is called without a content node.
	ErrNilContent = errors.New("bridge: nil content node")

	// ErrNoActiveContext is returned when neither explicit references nor
	// an active registry entry provide a renderer pair.
	ErrNoActiveContext = errors.New("bridge: no explicit references and no active registry entry")

	// ErrMissingReference is returned when only one of the stage/scene
	// pair is supplied explicitly.
	ErrMissingReference = errors.New("bridge: stage and scene references must be supplied together")

	// ErrNoSharedContext is returned when the stage renderer and the
	// engine do not draw through the same GPU context.
	ErrNoSharedContext = errors.New("bridge: stage renderer and engine do not share a GPU context")

	// ErrDisposed is returned by operations on a disposed texture.
	ErrDisposed = errors.New("bridge: texture has been disposed")
)

// InvalidSizeError indicates a zero-area capture size, which is undefined
// on most drivers.
type InvalidSizeError struct {
	Size pixibabylon.Size
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("bridge: invalid capture size %gx%g", e.Size.Width, e.Size.Height)
}

// DynamicTexture captures a 2D scene-graph node into an offscreen render
// target and wraps the target's GPU texture for direct sampling by the 3D
// engine.
//
// The content is wrapped in an internal group carrying the correction
// filter, so every capture applies the coordinate flip and un-premultiply
// regardless of what the content does internally. The wrapped engine
// texture's format is forced to 8-bit RGBA so the engine's sampling matches
// what the stage renderer produced.
//
// The texture owns its render target and the internal group; the caller
// retains ownership of the content node. Resizing after construction is
// unsupported: dispose and recreate.
type DynamicTexture struct {
	name       string
	stage      pixibabylon.StageRenderer
	engine     pixibabylon.SceneEngine
	orch       *frame.Orchestrator
	content    pixibabylon.Node
	filter     pixibabylon.Filter
	group      pixibabylon.Group
	target     pixibabylon.RenderTarget
	wrapped    pixibabylon.EngineTexture
	resolution float64

	autoUpdate  bool
	unsubscribe func()
	disposed    bool
}

// New creates a DynamicTexture capturing content.
//
// The renderer pair comes from WithStage/WithScene when supplied, otherwise
// from the registry's active entry. The capture size defaults to the
// content's natural bounds and must have positive area. Target pixel
// dimensions are the capture size multiplied by the resolution, rounded up
// to the next integer pixel.
func New(content pixibabylon.Node, opts ...Option) (*DynamicTexture, error) {
	if content == nil {
		return nil, ErrNilContent
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	stage, engine, err := resolvePair(cfg)
	if err != nil {
		return nil, err
	}
	if err := checkSharedContext(stage, engine); err != nil {
		return nil, err
	}

	size := content.Bounds()
	if cfg.size != nil {
		size = *cfg.size
	}
	if size.IsZeroArea() {
		return nil, &InvalidSizeError{Size: size}
	}

	resolution := cfg.resolution
	if resolution <= 0 {
		resolution = stage.Resolution()
	}
	if resolution <= 0 {
		resolution = 1
	}

	width := int(math.Ceil(size.Width * resolution))
	height := int(math.Ceil(size.Height * resolution))

	filter, err := NewCorrectionFilter(stage)
	if err != nil {
		return nil, fmt.Errorf("bridge: compiling correction filter: %w", err)
	}
	group := stage.NewFilteredGroup(content, filter)

	target, err := stage.NewRenderTarget(width, height)
	if err != nil {
		group.Detach()
		group.Destroy()
		filter.Destroy()
		return nil, fmt.Errorf("bridge: allocating %dx%d render target: %w", width, height, err)
	}

	wrapped, err := engine.WrapTexture(target.NativeTexture(), width, height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		target.Destroy()
		group.Detach()
		group.Destroy()
		filter.Destroy()
		return nil, fmt.Errorf("bridge: wrapping render target texture: %w", err)
	}

	d := &DynamicTexture{
		name:       cfg.name,
		stage:      stage,
		engine:     engine,
		orch:       cfg.orch,
		content:    content,
		filter:     filter,
		group:      group,
		target:     target,
		wrapped:    wrapped,
		resolution: resolution,
	}

	if cfg.autoUpdate {
		d.SetAutoUpdate(true)
	}
	return d, nil
}

// resolvePair picks the stage renderer and engine from explicit options or
// the registry's active entry. Explicit references bypass the registry.
func resolvePair(cfg config) (pixibabylon.StageRenderer, pixibabylon.SceneEngine, error) {
	if cfg.stage != nil || cfg.scene != nil {
		if cfg.stage == nil || cfg.scene == nil {
			return nil, nil, ErrMissingReference
		}
		engine := cfg.scene.Engine()
		if engine == nil {
			return nil, nil, ErrNoActiveContext
		}
		return cfg.stage, engine, nil
	}

	entry, ok := registry.Active()
	if !ok || entry.Stage == nil || entry.Scene == nil {
		return nil, nil, ErrNoActiveContext
	}
	engine := entry.Scene.Engine()
	if engine == nil {
		return nil, nil, ErrNoActiveContext
	}
	return entry.Stage, engine, nil
}

// checkSharedContext verifies both renderers draw through the same context.
func checkSharedContext(stage pixibabylon.StageRenderer, engine pixibabylon.SceneEngine) error {
	sgl, egl := stage.GLContext(), engine.GLContext()
	if sgl == nil || egl == nil || sgl != egl {
		return ErrNoSharedContext
	}
	return nil
}

// Name returns the debug name.
func (d *DynamicTexture) Name() string { return d.name }

// Resolution returns the effective resolution multiplier.
func (d *DynamicTexture) Resolution() float64 { return d.resolution }

// Width returns the render target width in physical pixels.
func (d *DynamicTexture) Width() int { return d.target.Width() }

// Height returns the render target height in physical pixels.
func (d *DynamicTexture) Height() int { return d.target.Height() }

// Target returns the owned render target.
func (d *DynamicTexture) Target() pixibabylon.RenderTarget { return d.target }

// Texture returns the engine-side wrapper of the render target's GPU
// texture. Its validity tracks the render target's lifetime: Dispose
// invalidates it.
func (d *DynamicTexture) Texture() pixibabylon.EngineTexture { return d.wrapped }

// AutoUpdate reports whether per-frame re-capture is enabled.
func (d *DynamicTexture) AutoUpdate() bool { return d.autoUpdate }

// Sync re-renders the wrapped content into the render target in one
// isolated pass, completing synchronously within the caller's frame slot.
//
// Call it whenever the source content changed and auto-update is off. The
// surrounding context state is captured and restored, so the pass leaves no
// observable trace on the shared state machine beyond the GPU write into
// the target.
func (d *DynamicTexture) Sync(clear bool) error {
	if d.disposed {
		return ErrDisposed
	}

	gl := d.stage.GLContext()
	return glstate.WithScopedState(gl, func() error {
		d.stage.ResetState()
		if err := d.stage.Render(d.target, d.group, clear); err != nil {
			return err
		}
		d.stage.ResetState()
		gl.BindVertexArray(0)
		gl.BindFramebuffer(0)
		return nil
	})
}

// Render schedules a Sync at the orchestrator's next "before render"
// notification and resolves the returned channel once that sync completed.
// Use it when the update must land before the next displayed frame rather
// than immediately; an immediate mid-frame write can race an in-flight
// render pass.
//
// There is no timeout and no cancellation: if the orchestrator is stopped
// before the next frame fires, the channel never resolves. Callers that
// need a bound should select against their own timer. With no orchestrator
// running at all, a warning is logged and the channel resolves immediately
// without rendering.
func (d *DynamicTexture) Render() <-chan error {
	ch := make(chan error, 1)

	if d.disposed {
		ch <- ErrDisposed
		close(ch)
		return ch
	}

	orch := d.orchestrator()
	if orch == nil {
		pixibabylon.Logger().Warn("bridge: Render with no orchestrator running, skipping sync", "name", d.name)
		ch <- nil
		close(ch)
		return ch
	}

	orch.BeforeRender().AddOnce(func() {
		ch <- d.Sync(true)
		close(ch)
	})
	return ch
}

// SetAutoUpdate toggles per-frame re-capture. Enabling subscribes a sync to
// every "before render" notification; disabling cancels the subscription
// and arms a one-shot sync for the very next frame, so the last edit made
// before disabling is still reflected. Setting the current value is a
// no-op.
func (d *DynamicTexture) SetAutoUpdate(enabled bool) {
	if d.disposed || enabled == d.autoUpdate {
		return
	}
	d.autoUpdate = enabled

	orch := d.orchestrator()
	if orch == nil {
		pixibabylon.Logger().Warn("bridge: SetAutoUpdate with no orchestrator running, no subscription made", "name", d.name)
		return
	}

	if enabled {
		d.unsubscribe = orch.BeforeRender().Add(func() { d.frameSync() })
		return
	}

	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	orch.BeforeRender().AddOnce(func() { d.frameSync() })
}

// frameSync is the hook body for scheduled syncs. Failures here are
// observer failures, isolated per the notification contract, so they are
// logged instead of propagated.
func (d *DynamicTexture) frameSync() {
	if d.disposed {
		return
	}
	if err := d.Sync(true); err != nil {
		pixibabylon.Logger().Warn("bridge: scheduled sync failed", "name", d.name, "error", err)
	}
}

// Dispose releases the engine-side texture wrapper, destroys the render
// target (reclaiming its GPU memory), removes any active subscription, and
// detaches -- but does not destroy -- the caller-supplied content node.
// Dispose is idempotent. After Dispose no orchestrated frame touches the
// render target again.
func (d *DynamicTexture) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true

	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.wrapped.Release()
	d.target.Destroy()
	d.group.Detach()
	d.group.Destroy()
	d.filter.Destroy()
}

// orchestrator returns the pinned orchestrator, or the ambient current one.
func (d *DynamicTexture) orchestrator() *frame.Orchestrator {
	if d.orch != nil {
		return d.orch
	}
	return frame.Current()
}
