package glstate

// MemContext is an in-memory Context implementation.
//
// It tracks every state slot in plain fields and hands out monotonically
// increasing object IDs, which makes it the context of choice for headless
// rendering (see package software) and for tests that need to observe what
// a span of draw calls did to the shared state machine.
//
// MemContext is not safe for concurrent use, matching the single render
// thread model of real contexts.
type MemContext struct {
	lost bool

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

	nextID uint32

	// clearCount accumulates the mask bits of every Clear call.
	clearCount map[ClearMask]int
}

// NewMemContext creates a context with the usual driver defaults: blending
// replaces, depth test is Less, stencil always passes, unit 0 active,
// nothing bound.
func NewMemContext() *MemContext {
	return &MemContext{
		blend:      DefaultBlendState(),
		depthFunc:  CompareLess,
		stencil:    DefaultStencilState(),
		nextID:     1,
		clearCount: make(map[ClearMask]int),
	}
}

// SetLost marks the context lost or restored. While lost, Capture fails.
func (c *MemContext) SetLost(lost bool) { c.lost = lost }

// IsLost reports whether the context is marked lost.
func (c *MemContext) IsLost() bool { return c.lost }

// Object allocation. IDs are never reused; zero is never handed out, so the
// zero handle always means unbound.

// CreateTexture allocates a new texture handle.
func (c *MemContext) CreateTexture() TextureID { return TextureID(c.allocID()) }

// CreateBuffer allocates a new buffer handle.
func (c *MemContext) CreateBuffer() BufferID { return BufferID(c.allocID()) }

// CreateFramebuffer allocates a new framebuffer handle.
func (c *MemContext) CreateFramebuffer() FramebufferID { return FramebufferID(c.allocID()) }

// CreateRenderbuffer allocates a new renderbuffer handle.
func (c *MemContext) CreateRenderbuffer() RenderbufferID { return RenderbufferID(c.allocID()) }

// CreateVertexArray allocates a new vertex array handle.
func (c *MemContext) CreateVertexArray() VertexArrayID { return VertexArrayID(c.allocID()) }

func (c *MemContext) allocID() uint32 {
	id := c.nextID
	c.nextID++
	return id
}

// Viewport returns the current viewport rectangle.
func (c *MemContext) Viewport() Rect { return c.viewport }

// SetViewport sets the viewport rectangle.
func (c *MemContext) SetViewport(r Rect) { c.viewport = r }

// ScissorBox returns the current scissor rectangle.
func (c *MemContext) ScissorBox() Rect { return c.scissor }

// SetScissorBox sets the scissor rectangle.
func (c *MemContext) SetScissorBox(r Rect) { c.scissor = r }

// ClearColor returns the current clear color.
func (c *MemContext) ClearColor() [4]float32 { return c.clearColor }

// SetClearColor sets the clear color.
func (c *MemContext) SetClearColor(r, g, b, a float32) {
	c.clearColor = [4]float32{r, g, b, a}
}

// BlendState returns the current blend-function pairs.
func (c *MemContext) BlendState() BlendState { return c.blend }

// SetBlendState sets the blend-function pairs.
func (c *MemContext) SetBlendState(b BlendState) { c.blend = b }

// DepthFunc returns the current depth comparison function.
func (c *MemContext) DepthFunc() CompareFunc { return c.depthFunc }

// SetDepthFunc sets the depth comparison function.
func (c *MemContext) SetDepthFunc(f CompareFunc) { c.depthFunc = f }

// StencilState returns the current stencil state.
func (c *MemContext) StencilState() StencilState { return c.stencil }

// SetStencilState sets the stencil state.
func (c *MemContext) SetStencilState(s StencilState) { c.stencil = s }

// StencilTest reports whether the stencil test is enabled.
func (c *MemContext) StencilTest() bool { return c.stencilTest }

// SetStencilTest enables or disables the stencil test.
func (c *MemContext) SetStencilTest(enabled bool) { c.stencilTest = enabled }

// ActiveTexture returns the active texture unit index.
func (c *MemContext) ActiveTexture() int { return c.activeTexture }

// SetActiveTexture selects the active texture unit.
// Out-of-range units are ignored, like an invalid enum on a real context.
func (c *MemContext) SetActiveTexture(unit int) {
	if unit < 0 || unit >= MaxTextureUnits {
		return
	}
	c.activeTexture = unit
}

// TextureBinding2D returns the texture bound on the active unit.
func (c *MemContext) TextureBinding2D() TextureID { return c.textures[c.activeTexture] }

// BindTexture2D binds a texture on the active unit.
func (c *MemContext) BindTexture2D(t TextureID) { c.textures[c.activeTexture] = t }

// ArrayBufferBinding returns the bound vertex buffer.
func (c *MemContext) ArrayBufferBinding() BufferID { return c.arrayBuffer }

// BindArrayBuffer binds a vertex buffer.
func (c *MemContext) BindArrayBuffer(b BufferID) { c.arrayBuffer = b }

// ElementArrayBufferBinding returns the bound index buffer.
func (c *MemContext) ElementArrayBufferBinding() BufferID { return c.elementBuffer }

// BindElementArrayBuffer binds an index buffer.
func (c *MemContext) BindElementArrayBuffer(b BufferID) { c.elementBuffer = b }

// FramebufferBinding returns the bound framebuffer.
func (c *MemContext) FramebufferBinding() FramebufferID { return c.framebuffer }

// BindFramebuffer binds a framebuffer.
func (c *MemContext) BindFramebuffer(f FramebufferID) { c.framebuffer = f }

// RenderbufferBinding returns the bound renderbuffer.
func (c *MemContext) RenderbufferBinding() RenderbufferID { return c.renderbuffer }

// BindRenderbuffer binds a renderbuffer.
func (c *MemContext) BindRenderbuffer(r RenderbufferID) { c.renderbuffer = r }

// VertexArrayBinding returns the bound vertex array object.
func (c *MemContext) VertexArrayBinding() VertexArrayID { return c.vertexArray }

// BindVertexArray binds a vertex array object.
func (c *MemContext) BindVertexArray(v VertexArrayID) { c.vertexArray = v }

// Clear records a clear of the selected buffers.
func (c *MemContext) Clear(mask ClearMask) {
	if c.lost {
		return
	}
	c.clearCount[mask]++
}

// ClearCalls returns how many times Clear was invoked with exactly the
// given mask.
func (c *MemContext) ClearCalls(mask ClearMask) int { return c.clearCount[mask] }

// Ensure MemContext implements Context.
var _ Context = (*MemContext)(nil)
