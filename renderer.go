package pixibabylon

import (
	"github.com/gogpu/gputypes"
	"github.com/littleboarx/pixi-babylon/glstate"
)

// Node is an opaque handle to a 2D scene-graph node. Nodes are authored and
// owned by the host application and interpreted by its StageRenderer; this
// module only needs their natural size.
type Node interface {
	// Bounds returns the node's natural bounding size in logical pixels.
	Bounds() Size
}

// Filter is a compiled shader program pair owned by a stage renderer.
// Filters are created with StageRenderer.CompileFilter and applied to nodes
// through StageRenderer.NewFilteredGroup.
type Filter interface {
	// Destroy releases the compiled program.
	Destroy()
}

// Group is a renderer-managed container node wrapping one or more children,
// optionally carrying filters that apply to the subtree as a whole.
type Group interface {
	Node

	// Detach removes all children from the group without destroying them.
	// The children remain owned by whoever created them.
	Detach()

	// Destroy releases the group node itself. Children the caller retains
	// ownership of must be detached first. Attached filters are NOT
	// destroyed; they are released separately via Filter.Destroy.
	Destroy()
}

// RenderTarget is an offscreen color buffer with its backing framebuffer,
// allocated by a StageRenderer and owned exclusively by its creator.
type RenderTarget interface {
	// Width returns the target width in physical pixels.
	Width() int

	// Height returns the target height in physical pixels.
	Height() int

	// Format returns the pixel format of the color buffer.
	Format() gputypes.TextureFormat

	// NativeTexture returns the live GPU texture object backing the
	// target's color buffer. The handle is valid exactly as long as the
	// target exists; Destroy invalidates it.
	NativeTexture() glstate.TextureID

	// Destroy releases the color buffer and framebuffer, reclaiming GPU
	// memory. The target and its native texture must not be used after.
	Destroy()
}

// StageRenderer is the contract the 2D retained-mode renderer must satisfy.
//
// The renderer is constructed and configured by the host application
// (surface, pixel ratio, antialiasing, clear color are all its business);
// this module drives it only through these operations.
type StageRenderer interface {
	// GLContext returns the shared GPU context the renderer draws through.
	GLContext() glstate.Context

	// Resolution returns the renderer's device pixel ratio.
	Resolution() float64

	// ResetState resets the renderer's internal GPU state cache, forcing
	// it to re-assert every state slot it depends on on its next draw
	// instead of trusting stale assumptions.
	ResetState()

	// Render draws root into target. A nil target means the default
	// (on-screen) framebuffer. When clear is true the target is cleared
	// before drawing. The renderer may leave bindings behind; callers
	// that need isolation wrap the call (see glstate.WithScopedState and
	// the frame package's stage span).
	Render(target RenderTarget, root Node, clear bool) error

	// NewRenderTarget allocates an offscreen target of the given physical
	// pixel size. The caller owns the returned target.
	NewRenderTarget(width, height int) (RenderTarget, error)

	// CompileFilter compiles a vertex/fragment source pair into a Filter
	// using the renderer's own program abstraction.
	CompileFilter(vertexSrc, fragmentSrc string) (Filter, error)

	// NewFilteredGroup wraps child in a new container carrying the given
	// filter. The caller owns the group; the child stays owned by its
	// creator.
	NewFilteredGroup(child Node, filter Filter) Group
}

// EngineTexture is a 3D-engine-side wrapper around an externally-created
// GPU texture, usable in the engine's materials. It does not own the
// underlying texture object.
type EngineTexture interface {
	// NativeTexture returns the wrapped GPU texture handle.
	NativeTexture() glstate.TextureID

	// Release drops the wrapper. The underlying texture is untouched; its
	// lifetime belongs to the RenderTarget that backs it.
	Release()
}

// SceneEngine is the contract the 3D scene engine must satisfy.
type SceneEngine interface {
	// GLContext returns the shared GPU context the engine draws through.
	// It must be the same context the paired StageRenderer uses.
	GLContext() glstate.Context

	// DeviceHandle returns the engine's GPU device access for resource
	// creation. Engines without a device (software) return
	// NullDeviceHandle.
	DeviceHandle() DeviceHandle

	// HasActiveCamera reports whether a camera or viewpoint is configured.
	// Without one there is nothing for the engine to render.
	HasActiveCamera() bool

	// WipeCaches invalidates pipeline and descriptor state the engine
	// lazily caches across frames. Required after foreign draw calls have
	// mutated shared GPU state the engine assumes stable.
	WipeCaches()

	// Render draws one frame of the engine's scene.
	Render() error

	// OnEndFrame registers fn to run at the engine's end-of-frame point.
	// The returned function removes the registration.
	OnEndFrame(fn func()) (remove func())

	// WrapTexture wraps an externally-created GPU texture for use in the
	// engine's materials, with the given pixel size and format. No pixel
	// copy takes place; the engine samples the texture object directly.
	WrapTexture(tex glstate.TextureID, width, height int, format gputypes.TextureFormat) (EngineTexture, error)
}

// Scene is one renderable 3D scene of a SceneEngine. The registry pairs a
// StageRenderer with a Scene; the texture bridge reaches the engine through
// it.
type Scene interface {
	// Engine returns the engine that owns this scene.
	Engine() SceneEngine
}
