package quadtree

import (
	"math/rand/v2"
	"testing"

	"firequad/internal/geom"
)

func shape(root *Node) []geom.Rect {
	var out []geom.Rect
	for _, l := range root.Leaves() {
		out = append(out, l.Bounds())
	}
	return out
}

func sameShape(a, b []geom.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildDeterministicPerSeed(t *testing.T) {
	build := func(seed uint64) []geom.Rect {
		return shape(Build(geom.V(0, 0), geom.V(1280, 720), 6, rand.New(rand.NewPCG(seed, 0))))
	}
	if !sameShape(build(42), build(42)) {
		t.Fatal("same seed produced different trees")
	}
	if sameShape(build(42), build(43)) {
		t.Fatal("different seeds should produce different trees")
	}
}

func TestBuildRespectsDepthCap(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		root := Build(geom.V(0, 0), geom.V(256, 256), 5, rand.New(rand.NewPCG(seed, 0)))
		if d := root.MaxDepth(); d > 5 {
			t.Fatalf("seed %d: depth %d exceeds cap", seed, d)
		}
		var area float64
		for _, l := range root.Leaves() {
			area += l.Area()
		}
		if area != root.Area() {
			t.Fatalf("seed %d: leaves cover %f of %f", seed, area, root.Area())
		}
	}
}

func TestBuildAlwaysSplitsShallowLevels(t *testing.T) {
	// Levels 0-2 split with probability 1, so a cap of 3 yields a full tree.
	root := Build(geom.V(0, 0), geom.V(64, 64), 3, rand.New(rand.NewPCG(9, 9)))
	if got := len(root.Leaves()); got != 64 {
		t.Fatalf("expected 64 leaves, got %d", got)
	}
}

func TestBuildWithZeroDepthIsSingleLeaf(t *testing.T) {
	root := Build(geom.V(5, 5), geom.V(10, 10), 0, rand.New(rand.NewPCG(1, 0)))
	if !root.IsLeaf() {
		t.Fatal("depth cap 0 must leave the root unsplit")
	}
}

func TestBuildUniformLeafCount(t *testing.T) {
	for depth := 0; depth <= 4; depth++ {
		root := BuildUniform(geom.V(0, 0), geom.V(32, 32), depth)
		want := 1 << (2 * depth)
		if got := len(root.Leaves()); got != want {
			t.Fatalf("depth %d: %d leaves, want %d", depth, got, want)
		}
	}
}
