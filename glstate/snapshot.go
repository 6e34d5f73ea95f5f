package glstate

import "errors"

// ErrContextLost is returned by Capture when the context reports itself lost.
// A lost context cannot be probed, so no snapshot can be produced. This is
// fatal: the host must recreate the context, there is nothing to retry.
var ErrContextLost = errors.New("glstate: context lost")

// Snapshot is an immutable capture of every tracked state slot.
//
// A Snapshot is created by Capture and consumed by a matching Restore on the
// same context. It is a plain value: copying it is cheap and it is never
// mutated after capture. The snapshot belongs to whichever caller requested
// the capture; it is not shared.
type Snapshot struct {
	viewport      Rect
	scissor       Rect
	clearColor    [4]float32
	blend         BlendState
	depthFunc     CompareFunc
	stencil       StencilState
	stencilTest   bool
	activeTexture int
	textures      [MaxTextureUnits]TextureID
	arrayBuffer   BufferID
	elementBuffer BufferID
	framebuffer   FramebufferID
	renderbuffer  RenderbufferID
	vertexArray   VertexArrayID
}

// Viewport returns the captured viewport rectangle.
func (s Snapshot) Viewport() Rect { return s.viewport }

// Framebuffer returns the captured framebuffer binding.
func (s Snapshot) Framebuffer() FramebufferID { return s.framebuffer }

// VertexArray returns the captured vertex array binding.
func (s Snapshot) VertexArray() VertexArrayID { return s.vertexArray }

// ActiveTexture returns the captured active texture unit index.
func (s Snapshot) ActiveTexture() int { return s.activeTexture }

// TextureBinding returns the captured 2D texture binding of the given unit.
// Units outside [0, MaxTextureUnits) return zero.
func (s Snapshot) TextureBinding(unit int) TextureID {
	if unit < 0 || unit >= MaxTextureUnits {
		return 0
	}
	return s.textures[unit]
}

// Capture reads every tracked state slot from the live context in a single
// pass and returns them as a Snapshot.
//
// Probing the per-unit texture bindings requires walking the texture units;
// Capture restores the originally active unit afterwards, so the probe
// itself is not observable. Capture fails only if the context is lost.
func Capture(ctx Context) (Snapshot, error) {
	if ctx.IsLost() {
		return Snapshot{}, ErrContextLost
	}

	s := Snapshot{
		viewport:      ctx.Viewport(),
		scissor:       ctx.ScissorBox(),
		clearColor:    ctx.ClearColor(),
		blend:         ctx.BlendState(),
		depthFunc:     ctx.DepthFunc(),
		stencil:       ctx.StencilState(),
		stencilTest:   ctx.StencilTest(),
		arrayBuffer:   ctx.ArrayBufferBinding(),
		elementBuffer: ctx.ElementArrayBufferBinding(),
		framebuffer:   ctx.FramebufferBinding(),
		renderbuffer:  ctx.RenderbufferBinding(),
		vertexArray:   ctx.VertexArrayBinding(),
	}

	s.activeTexture = ctx.ActiveTexture()
	for unit := 0; unit < MaxTextureUnits; unit++ {
		ctx.SetActiveTexture(unit)
		s.textures[unit] = ctx.TextureBinding2D()
	}
	ctx.SetActiveTexture(s.activeTexture)

	return s, nil
}

// Restore writes every captured slot back to the context.
//
// Slots are written in an order that avoids transient invalid states:
// object bindings (buffers, renderbuffer, framebuffer, textures) are
// re-established before the pipeline state that depends on them, and the
// originally active texture unit is restored last. After Restore the
// context's tracked state is exactly as it was at Capture time, so a
// capture/restore pair with no writes in between is a no-op.
func Restore(ctx Context, s Snapshot) {
	ctx.BindArrayBuffer(s.arrayBuffer)
	ctx.BindElementArrayBuffer(s.elementBuffer)
	ctx.BindRenderbuffer(s.renderbuffer)
	ctx.BindFramebuffer(s.framebuffer)
	ctx.BindVertexArray(s.vertexArray)

	for unit := 0; unit < MaxTextureUnits; unit++ {
		ctx.SetActiveTexture(unit)
		ctx.BindTexture2D(s.textures[unit])
	}

	ctx.SetBlendState(s.blend)
	ctx.SetDepthFunc(s.depthFunc)
	ctx.SetStencilState(s.stencil)
	ctx.SetStencilTest(s.stencilTest)
	ctx.SetViewport(s.viewport)
	ctx.SetScissorBox(s.scissor)
	ctx.SetClearColor(s.clearColor[0], s.clearColor[1], s.clearColor[2], s.clearColor[3])

	ctx.SetActiveTexture(s.activeTexture)
}

// WithScopedState captures the context state, runs fn, and restores the
// state on every exit path: normal return, error return, and panic. The
// error (or panic) from fn is re-raised to the caller after the restore.
//
// This is the scoped-acquisition form of Capture/Restore, used to run a
// span of foreign draw calls without leaving a trace:
//
//	err := glstate.WithScopedState(ctx, func() error {
//	    return stage.Render(target, root, true)
//	})
func WithScopedState(ctx Context, fn func() error) error {
	s, err := Capture(ctx)
	if err != nil {
		return err
	}
	defer Restore(ctx, s)
	return fn()
}
