package view

import "image"

// View is a tree committed to a container by a Renderer.
type View interface {
	Container() *Container
	Root() *Node
	// HitTest returns the nodes under the screen point (x, y), innermost
	// first. It returns nil outside the committed tree.
	HitTest(x, y int) []*Node
}

// Renderer turns declarative trees into screen updates.
// Mount attaches the first tree to a container; Patch replaces the tree of
// an existing view and returns the new committed view.
type Renderer interface {
	Mount(c *Container, tree *Node) (View, error)
	Patch(prev View, tree *Node) (View, error)
}

// Committed is the layout of a tree in a container. Renderers embed it to
// get hit testing.
type Committed struct {
	container *Container
	root      *Node
	layout    *Box
}

// Commit lays out root at the container's origin.
func Commit(c *Container, root *Node) *Committed {
	return &Committed{
		container: c,
		root:      root,
		layout:    Layout(root, c.Origin),
	}
}

// Container returns the container the tree is mounted in.
func (v *Committed) Container() *Container {
	return v.container
}

// Root returns the committed tree.
func (v *Committed) Root() *Node {
	return v.root
}

// Layout returns the laid out tree.
func (v *Committed) Layout() *Box {
	return v.layout
}

// HitTest returns the nodes under (x, y), innermost first.
func (v *Committed) HitTest(x, y int) []*Node {
	return v.layout.HitTest(image.Pt(x, y))
}
