package glstate

import "fmt"

// Object handles
//
// These typed handles name GPU objects owned by the shared context. The zero
// value always means "unbound" / "no object", matching the context's own
// convention, so a freshly captured Snapshot of a clean context restores to
// a clean context.

// TextureID is a handle to a 2D texture object.
type TextureID uint32

// BufferID is a handle to a vertex or index buffer object.
type BufferID uint32

// FramebufferID is a handle to a framebuffer object.
// The zero value denotes the default (on-screen) framebuffer.
type FramebufferID uint32

// RenderbufferID is a handle to a renderbuffer object.
type RenderbufferID uint32

// VertexArrayID is a handle to a vertex array object.
type VertexArrayID uint32

// MaxTextureUnits is the number of texture units tracked per snapshot.
// Bindings on units beyond this cap are not captured or restored.
const MaxTextureUnits = 8

// Rect is an integer rectangle in pixels, used for viewport and scissor
// state. X and Y locate the lower-left corner.
type Rect struct {
	X, Y, Width, Height int32
}

// BlendFactor selects a blending coefficient.
type BlendFactor uint32

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// String returns a human-readable name for the blend factor.
func (f BlendFactor) String() string {
	switch f {
	case BlendZero:
		return "Zero"
	case BlendOne:
		return "One"
	case BlendSrcColor:
		return "SrcColor"
	case BlendOneMinusSrcColor:
		return "OneMinusSrcColor"
	case BlendDstColor:
		return "DstColor"
	case BlendOneMinusDstColor:
		return "OneMinusDstColor"
	case BlendSrcAlpha:
		return "SrcAlpha"
	case BlendOneMinusSrcAlpha:
		return "OneMinusSrcAlpha"
	case BlendDstAlpha:
		return "DstAlpha"
	case BlendOneMinusDstAlpha:
		return "OneMinusDstAlpha"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(f))
	}
}

// BlendState holds the separate RGB and alpha blend-function pairs.
type BlendState struct {
	SrcRGB   BlendFactor
	DstRGB   BlendFactor
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
}

// DefaultBlendState returns the context default: source replaces destination.
func DefaultBlendState() BlendState {
	return BlendState{
		SrcRGB:   BlendOne,
		DstRGB:   BlendZero,
		SrcAlpha: BlendOne,
		DstAlpha: BlendZero,
	}
}

// CompareFunc selects a depth or stencil comparison function.
type CompareFunc uint32

// Comparison functions.
const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// String returns a human-readable name for the comparison function.
func (f CompareFunc) String() string {
	switch f {
	case CompareNever:
		return "Never"
	case CompareLess:
		return "Less"
	case CompareEqual:
		return "Equal"
	case CompareLessEqual:
		return "LessEqual"
	case CompareGreater:
		return "Greater"
	case CompareNotEqual:
		return "NotEqual"
	case CompareGreaterEqual:
		return "GreaterEqual"
	case CompareAlways:
		return "Always"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(f))
	}
}

// StencilState holds the stencil comparison function, reference value and
// comparison mask.
type StencilState struct {
	Func CompareFunc
	Ref  int32
	Mask uint32
}

// DefaultStencilState returns the context default: always pass.
func DefaultStencilState() StencilState {
	return StencilState{Func: CompareAlways, Ref: 0, Mask: ^uint32(0)}
}

// ClearMask selects which buffers a Clear call affects.
// Flags can be combined with bitwise OR.
type ClearMask uint32

// Clear flags.
const (
	// ClearColorBuffer clears the color buffer to the current clear color.
	ClearColorBuffer ClearMask = 1 << iota

	// ClearDepthBuffer clears the depth buffer.
	ClearDepthBuffer

	// ClearStencilBuffer clears the stencil buffer.
	ClearStencilBuffer
)
