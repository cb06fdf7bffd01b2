package quadtree

// FindGreaterOrEqualNeighbour returns the node across n's side d whose size is
// at least n's: either a leaf, or an internal node at n's depth whose children
// still have to be expanded. It returns nil on the outer boundary.
func FindGreaterOrEqualNeighbour(n *Node, d Dir) *Node {
	if n.IsRoot() {
		return nil
	}
	// A child on the side facing away from d has its neighbor inside the parent.
	if n.quadrant.onSide(d.Reverse()) {
		return n.parent.children[n.quadrant.Mirror(d)]
	}
	candidate := FindGreaterOrEqualNeighbour(n.parent, d)
	if candidate == nil || candidate.IsLeaf() {
		return candidate
	}
	return candidate.children[n.quadrant.Mirror(d)]
}

// FindLesserNeighbours expands top into the leaves lying along its side that
// faces back against d. Results are in breadth-first insertion order.
func FindLesserNeighbours(top *Node, d Dir) []*Node {
	if top == nil {
		return nil
	}
	side := sideQuadrants[d.Reverse()]
	var out []*Node
	queue := []*Node{top}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.IsLeaf() {
			out = append(out, c)
			continue
		}
		queue = append(queue, c.children[side[0]], c.children[side[1]])
	}
	return out
}

// FindNeighbours returns every leaf sharing part of n's side d.
func FindNeighbours(n *Node, d Dir) []*Node {
	return FindLesserNeighbours(FindGreaterOrEqualNeighbour(n, d), d)
}

// BakeAllNeighbours stores the neighbor lists of every leaf under root. The tree
// shape must be final; later subdivisions are not reflected.
func BakeAllNeighbours(root *Node) {
	if !root.IsLeaf() {
		for _, c := range root.children {
			BakeAllNeighbours(c)
		}
		return
	}
	for _, d := range Dirs {
		root.neighbours[d] = FindNeighbours(root, d)
	}
}
