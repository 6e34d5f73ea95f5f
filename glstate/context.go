package glstate

// Context is the shared GPU context's global state machine, reduced to the
// slots this module tracks. Both renderers issue their draw calls against
// one Context; the host provides the implementation, usually a thin adapter
// over the live graphics API.
//
// The design principle mirrors device injection: this module RECEIVES the
// context from the host renderers, it never creates one. Getter methods read
// the live value of a slot; Bind/Set methods write it. Texture bindings are
// per unit: TextureBinding2D and BindTexture2D operate on the unit selected
// by SetActiveTexture.
//
// Context implementations are not required to be safe for concurrent use.
// All access happens on the single render thread (see package frame).
type Context interface {
	// IsLost reports whether the underlying context has been lost.
	// Operations on a lost context have no observable effect; Capture
	// refuses to produce a snapshot from one.
	IsLost() bool

	// Viewport returns the current viewport rectangle.
	Viewport() Rect

	// SetViewport sets the viewport rectangle.
	SetViewport(Rect)

	// ScissorBox returns the current scissor rectangle.
	ScissorBox() Rect

	// SetScissorBox sets the scissor rectangle.
	SetScissorBox(Rect)

	// ClearColor returns the current clear color as RGBA in [0, 1].
	ClearColor() [4]float32

	// SetClearColor sets the clear color.
	SetClearColor(r, g, b, a float32)

	// BlendState returns the current blend-function pairs.
	BlendState() BlendState

	// SetBlendState sets the blend-function pairs.
	SetBlendState(BlendState)

	// DepthFunc returns the current depth comparison function.
	DepthFunc() CompareFunc

	// SetDepthFunc sets the depth comparison function.
	SetDepthFunc(CompareFunc)

	// StencilState returns the current stencil function, reference and mask.
	StencilState() StencilState

	// SetStencilState sets the stencil function, reference and mask.
	SetStencilState(StencilState)

	// StencilTest reports whether the stencil test is enabled.
	StencilTest() bool

	// SetStencilTest enables or disables the stencil test.
	SetStencilTest(enabled bool)

	// ActiveTexture returns the index of the active texture unit.
	ActiveTexture() int

	// SetActiveTexture selects the active texture unit.
	SetActiveTexture(unit int)

	// TextureBinding2D returns the 2D texture bound on the active unit.
	TextureBinding2D() TextureID

	// BindTexture2D binds a 2D texture on the active unit.
	// Zero unbinds.
	BindTexture2D(TextureID)

	// ArrayBufferBinding returns the bound vertex buffer.
	ArrayBufferBinding() BufferID

	// BindArrayBuffer binds a vertex buffer. Zero unbinds.
	BindArrayBuffer(BufferID)

	// ElementArrayBufferBinding returns the bound index buffer.
	ElementArrayBufferBinding() BufferID

	// BindElementArrayBuffer binds an index buffer. Zero unbinds.
	BindElementArrayBuffer(BufferID)

	// FramebufferBinding returns the bound framebuffer.
	// Zero is the default (on-screen) framebuffer.
	FramebufferBinding() FramebufferID

	// BindFramebuffer binds a framebuffer. Zero binds the default one.
	BindFramebuffer(FramebufferID)

	// RenderbufferBinding returns the bound renderbuffer.
	RenderbufferBinding() RenderbufferID

	// BindRenderbuffer binds a renderbuffer. Zero unbinds.
	BindRenderbuffer(RenderbufferID)

	// VertexArrayBinding returns the bound vertex array object.
	VertexArrayBinding() VertexArrayID

	// BindVertexArray binds a vertex array object. Zero unbinds.
	BindVertexArray(VertexArrayID)

	// Clear clears the buffers selected by mask. The color buffer is
	// cleared to the current clear color.
	Clear(mask ClearMask)
}
