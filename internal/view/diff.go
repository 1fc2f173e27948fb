package view

import (
	"slices"

	"github.com/hailam/chessboard/internal/assets"
)

// ChangeKind classifies a difference between two trees.
type ChangeKind uint8

const (
	Added ChangeKind = iota
	Removed
	Updated
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "updated"
	}
}

// Change is a keyed node that differs between two trees.
type Change struct {
	ID   string
	Kind ChangeKind
}

// Diff compares the nodes with an ID in prev and next. Handlers are not
// compared. A nil prev reports every keyed node of next as added.
func Diff(prev, next *Node) []Change {
	before := index(prev)
	after := index(next)

	var changes []Change
	next.Walk(func(n *Node) bool {
		if n.ID == "" {
			return true
		}
		old, ok := before[n.ID]
		switch {
		case !ok:
			changes = append(changes, Change{ID: n.ID, Kind: Added})
		case !sameNode(old, n):
			changes = append(changes, Change{ID: n.ID, Kind: Updated})
		}
		return true
	})
	prev.Walk(func(n *Node) bool {
		if n.ID == "" {
			return true
		}
		if _, ok := after[n.ID]; !ok {
			changes = append(changes, Change{ID: n.ID, Kind: Removed})
		}
		return true
	})
	return changes
}

func index(root *Node) map[string]*Node {
	m := make(map[string]*Node)
	root.Walk(func(n *Node) bool {
		if n.ID != "" {
			m[n.ID] = n
		}
		return true
	})
	return m
}

// sameNode compares two nodes and their unkeyed descendants.
func sameNode(a, b *Node) bool {
	if a.Tag != b.Tag || a.Style != b.Style || !slices.Equal(a.Classes, b.Classes) {
		return false
	}
	if a.Text != b.Text || imageName(a.Image) != imageName(b.Image) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		ac, bc := a.Children[i], b.Children[i]
		if ac.ID != bc.ID {
			return false
		}
		if ac.ID == "" && !sameNode(ac, bc) {
			return false
		}
	}
	return true
}

func imageName(img *assets.Image) string {
	if img == nil {
		return ""
	}
	return img.Name
}
