package tree

import (
	"slices"

	"github.com/crimson-sun/taxreport/internal/model"
)

// Cursor is the path from the root to the most recently inserted node.
// Report rows usually arrive in pre-order, so the parent of the next row is
// almost always on this path. Cursors are values; extending one never
// modifies the path of another.
type Cursor struct {
	path []*model.Node
}

// NewCursor returns a cursor positioned at root.
func NewCursor(root *model.Node) Cursor {
	return Cursor{path: []*model.Node{root}}
}

// cursorAt returns a cursor whose path ends at n.
func cursorAt(n *model.Node) Cursor {
	var path []*model.Node
	for cur := n; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return Cursor{path: path}
}

// Current returns the node the cursor points at.
func (c Cursor) Current() *model.Node {
	if len(c.path) == 0 {
		return nil
	}
	return c.path[len(c.path)-1]
}

// Depth returns the number of nodes below the root on the path.
func (c Cursor) Depth() int {
	return max(len(c.path)-1, 0)
}

// find returns the position of the deepest node on the path with taxon id.
func (c Cursor) find(id string) (int, bool) {
	for i := len(c.path) - 1; i >= 0; i-- {
		if c.path[i].TaxonID == id {
			return i, true
		}
	}
	return 0, false
}

// extend returns a cursor made of path[:i+1] followed by n.
func (c Cursor) extend(i int, n *model.Node) Cursor {
	return Cursor{path: append(c.path[:i+1:i+1], n)}
}
