package quadtree

import (
	"math/rand/v2"

	"firequad/internal/geom"
)

// Build returns a tree over the given rectangle, randomly subdivided up to
// maxDepth. A node at depth d splits with probability 1/(1+d/3), so shallow
// levels are almost always split and deep ones rarely.
func Build(origin, extents geom.Vec2, maxDepth int, rng *rand.Rand) *Node {
	root := NewRoot(origin, extents)
	splitRandom(root, 0, maxDepth, rng)
	return root
}

func splitRandom(n *Node, depth, maxDepth int, rng *rand.Rand) {
	if depth >= maxDepth {
		return
	}
	if rng.IntN(depth/3+1) != 0 {
		return
	}
	n.Subdivide()
	for _, c := range n.children {
		splitRandom(c, depth+1, maxDepth, rng)
	}
}

// BuildUniform returns a tree subdivided evenly to the given depth, giving
// 4^depth equal leaves.
func BuildUniform(origin, extents geom.Vec2, depth int) *Node {
	root := NewRoot(origin, extents)
	splitUniform(root, depth)
	return root
}

func splitUniform(n *Node, depth int) {
	if depth <= 0 {
		return
	}
	n.Subdivide()
	for _, c := range n.children {
		splitUniform(c, depth-1)
	}
}
