package view

import "image"

// Box is a laid out node.
type Box struct {
	Node     *Node
	Rect     image.Rectangle
	Children []*Box
}

// Layout places root with its top-left corner at origin.
//
// Grid nodes flow their children into Style.Columns columns using each
// child's own size and Style.Gap between cells; a zero-size grid grows to
// fit its rows, capped at Style.MaxWidth. Every other node fills the
// rectangle its parent gives it unless it declares its own size.
func Layout(root *Node, origin image.Point) *Box {
	w, h := root.Style.Width, root.Style.Height
	if root.Style.Display == Grid && (w == 0 || h == 0) {
		gw, gh := gridSize(root)
		if w == 0 {
			w = gw
		}
		if h == 0 {
			h = gh
		}
	}
	return layout(root, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))})
}

func layout(n *Node, r image.Rectangle) *Box {
	b := &Box{Node: n, Rect: r}
	if len(n.Children) == 0 {
		return b
	}

	if n.Style.Display != Grid {
		for _, child := range n.Children {
			cr := r
			if child.Style.Width > 0 && child.Style.Height > 0 {
				cr.Max = cr.Min.Add(image.Pt(child.Style.Width, child.Style.Height))
			}
			b.Children = append(b.Children, layout(child, cr))
		}
		return b
	}

	cols := n.Style.Columns
	if cols <= 0 {
		cols = 1
	}
	x, y, rowH := r.Min.X, r.Min.Y, 0
	for i, child := range n.Children {
		if i > 0 && i%cols == 0 {
			x = r.Min.X
			y += rowH + n.Style.Gap
			rowH = 0
		}
		cw, ch := child.Style.Width, child.Style.Height
		cr := image.Rect(x, y, x+cw, y+ch)
		b.Children = append(b.Children, layout(child, cr))
		x += cw + n.Style.Gap
		if ch > rowH {
			rowH = ch
		}
	}
	return b
}

// gridSize returns the natural size of a grid node from its children.
func gridSize(n *Node) (int, int) {
	cols := n.Style.Columns
	if cols <= 0 {
		cols = 1
	}
	width, height, rowW, rowH := 0, 0, 0, 0
	for i, child := range n.Children {
		if i > 0 && i%cols == 0 {
			height += rowH + n.Style.Gap
			rowW, rowH = 0, 0
		}
		if rowW > 0 {
			rowW += n.Style.Gap
		}
		rowW += child.Style.Width
		if rowW > width {
			width = rowW
		}
		if child.Style.Height > rowH {
			rowH = child.Style.Height
		}
	}
	height += rowH
	if n.Style.MaxWidth > 0 && width > n.Style.MaxWidth {
		width = n.Style.MaxWidth
	}
	return width, height
}

// HitTest returns the nodes under p, innermost first, ending with the root.
// It returns nil when p is outside the box.
func (b *Box) HitTest(p image.Point) []*Node {
	if b == nil || !p.In(b.Rect) {
		return nil
	}
	// Later siblings paint over earlier ones.
	for i := len(b.Children) - 1; i >= 0; i-- {
		if path := b.Children[i].HitTest(p); path != nil {
			return append(path, b.Node)
		}
	}
	return []*Node{b.Node}
}

// Find returns the box of the node with the given id.
func (b *Box) Find(id string) *Box {
	if b == nil {
		return nil
	}
	if b.Node.ID == id {
		return b
	}
	for _, child := range b.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}
