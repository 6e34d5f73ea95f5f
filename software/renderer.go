package software

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/bridge"
	"github.com/littleboarx/pixi-babylon/glstate"
)

// Renderer errors.
var (
	// ErrInvalidTargetSize is returned for non-positive target dimensions.
	ErrInvalidTargetSize = errors.New("software: target dimensions must be positive")

	// ErrForeignTarget is returned when Render receives a target this
	// renderer did not allocate.
	ErrForeignTarget = errors.New("software: target was not created by this renderer")
)

// Renderer is a CPU stage renderer.
//
// It draws Image and Group nodes into RGBA pixel buffers, scaled by its
// resolution with x/image interpolation. Like a real retained-mode
// renderer, a draw leaves the renderer's vertex array and the target's
// framebuffer bound on the shared context; the coordination layers are
// responsible for cleaning that up.
type Renderer struct {
	gl         *glstate.MemContext
	screen     *image.RGBA
	resolution float64
	vao        glstate.VertexArrayID

	resetCount  int
	renderCount int
}

// NewRenderer creates a renderer with an on-screen buffer of the given
// physical pixel size, sharing the given context. A nil context gets a
// fresh MemContext.
func NewRenderer(gl *glstate.MemContext, width, height int, resolution float64) *Renderer {
	if gl == nil {
		gl = glstate.NewMemContext()
	}
	if resolution <= 0 {
		resolution = 1
	}
	return &Renderer{
		gl:         gl,
		screen:     image.NewRGBA(image.Rect(0, 0, width, height)),
		resolution: resolution,
		vao:        gl.CreateVertexArray(),
	}
}

// GLContext returns the shared context.
func (r *Renderer) GLContext() glstate.Context { return r.gl }

// Context returns the shared context as its concrete in-memory type, for
// callers that need to construct a paired engine or probe state.
func (r *Renderer) Context() *glstate.MemContext { return r.gl }

// Resolution returns the device pixel ratio.
func (r *Renderer) Resolution() float64 { return r.resolution }

// ResetState resets the internal state cache. The software renderer keeps
// no real cache; the call count is tracked so the coordination layers'
// reset discipline is observable.
func (r *Renderer) ResetState() { r.resetCount++ }

// ResetCount returns how many times ResetState was called.
func (r *Renderer) ResetCount() int { return r.resetCount }

// RenderCount returns how many times Render was called.
func (r *Renderer) RenderCount() int { return r.renderCount }

// Screen returns the on-screen buffer.
func (r *Renderer) Screen() *image.RGBA { return r.screen }

// Render draws root into target, or into the on-screen buffer when target
// is nil. The renderer's vertex array and the target's framebuffer remain
// bound afterwards, as a real stateful renderer leaves them.
func (r *Renderer) Render(target pixibabylon.RenderTarget, root pixibabylon.Node, clear bool) error {
	r.renderCount++

	// Bindings a retained-mode renderer leaves behind.
	r.gl.BindVertexArray(r.vao)

	if target == nil {
		r.gl.BindFramebuffer(0)
		if clear {
			clearRGBA(r.screen)
		}
		if root != nil {
			return r.drawNode(r.screen, root)
		}
		return nil
	}

	t, ok := target.(*Target)
	if !ok {
		return ErrForeignTarget
	}
	if t.destroyed {
		return ErrTargetDestroyed
	}
	r.gl.BindFramebuffer(t.fbo)

	// Compose premultiplied, then store the (possibly corrected)
	// straight-alpha bytes in the target.
	tmp := image.NewRGBA(t.pix.Bounds())
	if !clear {
		draw.Draw(tmp, tmp.Bounds(), t.pix, t.pix.Bounds().Min, draw.Src)
	}

	corrected := false
	if g, ok := root.(*Group); ok && g.filter != nil && g.filter.correction {
		if err := r.drawChildren(tmp, g); err != nil {
			return err
		}
		copy(t.pix.Pix, bridge.CorrectImage(tmp).Pix)
		corrected = true
	}
	if !corrected {
		if root != nil {
			if err := r.drawNode(tmp, root); err != nil {
				return err
			}
		}
		straightCopy(tmp, t.pix)
	}
	return nil
}

// NewRenderTarget allocates a CPU render target of the given physical
// pixel size.
func (r *Renderer) NewRenderTarget(width, height int) (pixibabylon.RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	return &Target{
		pix: image.NewNRGBA(image.Rect(0, 0, width, height)),
		tex: r.gl.CreateTexture(),
		fbo: r.gl.CreateFramebuffer(),
	}, nil
}

// CompileFilter "compiles" a shader pair. Only the bridge's correction
// pass has an effect; any other program renders as a pass-through.
func (r *Renderer) CompileFilter(vertexSrc, fragmentSrc string) (pixibabylon.Filter, error) {
	return &Filter{
		vertex:     vertexSrc,
		fragment:   fragmentSrc,
		correction: isCorrectionSource(fragmentSrc),
	}, nil
}

// NewFilteredGroup wraps child in a group carrying filter.
func (r *Renderer) NewFilteredGroup(child pixibabylon.Node, filter pixibabylon.Filter) pixibabylon.Group {
	f, _ := filter.(*Filter)
	return &Group{children: []pixibabylon.Node{child}, filter: f}
}

// drawNode draws a node subtree premultiplied into dst at the renderer's
// resolution.
func (r *Renderer) drawNode(dst *image.RGBA, node pixibabylon.Node) error {
	switch n := node.(type) {
	case *Image:
		b := n.Bounds()
		rect := image.Rect(0, 0,
			int(math.Ceil(b.Width*r.resolution)),
			int(math.Ceil(b.Height*r.resolution)))
		xdraw.ApproxBiLinear.Scale(dst, rect, n.img, n.img.Bounds(), draw.Over, nil)
		return nil
	case *Group:
		if n.destroyed {
			return nil
		}
		if n.filter != nil && n.filter.correction {
			tmp := image.NewRGBA(dst.Bounds())
			if err := r.drawChildren(tmp, n); err != nil {
				return err
			}
			draw.Draw(dst, dst.Bounds(), bridge.CorrectImage(tmp), image.Point{}, draw.Over)
			return nil
		}
		return r.drawChildren(dst, n)
	default:
		return fmt.Errorf("software: unsupported node type %T", node)
	}
}

func (r *Renderer) drawChildren(dst *image.RGBA, g *Group) error {
	for _, child := range g.children {
		if err := r.drawNode(dst, child); err != nil {
			return err
		}
	}
	return nil
}

// clearRGBA zeroes a premultiplied buffer.
func clearRGBA(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

// straightCopy converts premultiplied pixels to straight alpha without the
// coordinate flip, for targets rendered without the correction pass.
func straightCopy(src *image.RGBA, dst *image.NRGBA) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			cr, cg, cb, ca := bridge.CorrectPixel(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
			j := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
			dst.Pix[j], dst.Pix[j+1], dst.Pix[j+2], dst.Pix[j+3] = cr, cg, cb, ca
		}
	}
}

// Ensure Renderer implements StageRenderer.
var _ pixibabylon.StageRenderer = (*Renderer)(nil)
