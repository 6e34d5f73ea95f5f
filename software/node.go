package software

import (
	"image"

	pixibabylon "github.com/littleboarx/pixi-babylon"
	"github.com/littleboarx/pixi-babylon/bridge"
)

// Image is a leaf node drawing a CPU image at its natural size.
type Image struct {
	img image.Image
}

// NewImage wraps img as a stage node. The image is used directly without
// copying; mutating it mutates the node's content.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

// Bounds returns the image's natural size in logical pixels.
func (n *Image) Bounds() pixibabylon.Size {
	b := n.img.Bounds()
	return pixibabylon.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Source returns the wrapped image.
func (n *Image) Source() image.Image { return n.img }

// SetSource replaces the wrapped image. This is how tests and headless
// callers mutate content between syncs.
func (n *Image) SetSource(img image.Image) { n.img = img }

// Filter is a "compiled" shader pair. The software renderer implements
// exactly one program, the bridge's correction pass, recognized by source
// identity; any other source renders as a plain pass-through.
type Filter struct {
	vertex     string
	fragment   string
	correction bool
	destroyed  bool
}

// Destroy releases the program.
func (f *Filter) Destroy() { f.destroyed = true }

// Destroyed reports whether Destroy was called.
func (f *Filter) Destroyed() bool { return f.destroyed }

// Group is a container node with an optional filter applying to the whole
// subtree.
type Group struct {
	children  []pixibabylon.Node
	filter    *Filter
	destroyed bool
}

// NewGroup creates a plain unfiltered group.
func NewGroup(children ...pixibabylon.Node) *Group {
	return &Group{children: children}
}

// Bounds returns the union size of the children.
func (g *Group) Bounds() pixibabylon.Size {
	var size pixibabylon.Size
	for _, child := range g.children {
		b := child.Bounds()
		if b.Width > size.Width {
			size.Width = b.Width
		}
		if b.Height > size.Height {
			size.Height = b.Height
		}
	}
	return size
}

// Add appends a child node.
func (g *Group) Add(child pixibabylon.Node) {
	g.children = append(g.children, child)
}

// Detach removes all children without destroying them.
func (g *Group) Detach() { g.children = nil }

// Destroy releases the group node. Attached filters are released
// separately by their owner.
func (g *Group) Destroy() { g.destroyed = true }

// Destroyed reports whether Destroy was called.
func (g *Group) Destroyed() bool { return g.destroyed }

var (
	_ pixibabylon.Node  = (*Image)(nil)
	_ pixibabylon.Group = (*Group)(nil)
)

// isCorrectionSource reports whether the fragment source is the bridge's
// correction pass.
func isCorrectionSource(fragment string) bool {
	_, frag := bridge.CorrectionShaderSources()
	return fragment == frag
}
