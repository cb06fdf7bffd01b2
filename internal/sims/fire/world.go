package fire

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"firequad/internal/core"
	"firequad/internal/geom"
	"firequad/internal/quadtree"
)

// World is a fire surface: a baked quadtree plus a raster view of its leaves.
type World struct {
	cfg Config

	tree   *quadtree.Tree
	leaves []*quadtree.Node
	index  map[*quadtree.Node]int

	// owner maps each raster cell to the index of the leaf covering its center.
	owner   []int32
	display *core.ByteGrid

	mode  Mode
	steps int
	seed  int64
}

// New returns a fire world with the given raster size and default settings.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and builds the initial surface from cfg.Seed.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		owner:   make([]int32, cfg.Width*cfg.Height),
		mode:    cfg.Mode,
	}
	if err := w.rebuild(cfg.Seed); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "fire" }

// Size reports the raster dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the palette-indexed display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Tree exposes the underlying quadtree.
func (w *World) Tree() *quadtree.Tree { return w.tree }

// Leaves returns every leaf in quadrant order. The slice is shared.
func (w *World) Leaves() []*quadtree.Node { return w.leaves }

// TPS returns the steps per second the world expects to be driven at.
func (w *World) TPS() int { return w.cfg.TPS }

// Steps returns the number of steps since the last reset.
func (w *World) Steps() int { return w.steps }

// Seed returns the seed the current surface was built from.
func (w *World) Seed() int64 { return w.seed }

// Reset rebuilds the surface. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	if err := w.rebuild(seed); err != nil {
		log.WithError(err).Error("fire: reset failed, keeping previous surface")
	}
}

func (w *World) rebuild(seed int64) error {
	extents := geom.V(float64(w.cfg.Width), float64(w.cfg.Height))
	var root *quadtree.Node
	switch w.cfg.Layout {
	case LayoutUniform:
		root = quadtree.BuildUniform(geom.Vec2{}, extents, w.cfg.MaxDepth)
	default:
		root = quadtree.Build(geom.Vec2{}, extents, w.cfg.MaxDepth, core.NewRand(seed))
	}
	tree, err := quadtree.NewTree(root, w.cfg.Params)
	if err != nil {
		return fmt.Errorf("fire: build surface: %w", err)
	}

	w.tree = tree
	w.leaves = tree.Leaves()
	w.index = make(map[*quadtree.Node]int, len(w.leaves))
	for i, l := range w.leaves {
		w.index[l] = i
	}
	w.seed = seed
	w.steps = 0
	w.computeOwners()
	w.rebuildDisplay()

	log.WithFields(log.Fields{
		"seed":   seed,
		"layout": w.cfg.Layout,
		"leaves": len(w.leaves),
		"depth":  root.MaxDepth(),
	}).Debug("fire: surface built")
	return nil
}

func (w *World) computeOwners() {
	root := w.tree.Root()
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			leaf, err := root.FindLeafAt(geom.V(float64(x)+0.5, float64(y)+0.5))
			if err != nil {
				// Pixel centers always lie inside the surface.
				panic(err)
			}
			w.owner[w.display.Index(x, y)] = int32(w.index[leaf])
		}
	}
}

// Step advances the simulation by one tick of 1/TPS seconds.
func (w *World) Step() error {
	if err := w.tree.Step(w.cfg.DT()); err != nil {
		return err
	}
	w.steps++
	w.rebuildDisplay()
	return nil
}

// IgniteAt applies an ignition stimulus to the leaf under raster point (x, y).
func (w *World) IgniteAt(x, y float64) error {
	leaf, err := w.tree.Ignite(geom.V(x, y))
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"x":           leaf.Origin().X,
		"y":           leaf.Origin().Y,
		"w":           leaf.Extents().X,
		"h":           leaf.Extents().Y,
		"temperature": leaf.Temperature(),
	}).Debug("fire: ignition stimulus")
	w.rebuildDisplay()
	return nil
}

// LeafAt returns the leaf under raster point (x, y).
func (w *World) LeafAt(x, y float64) (*quadtree.Node, error) {
	return w.tree.FindLeafAt(geom.V(x, y))
}

// LeafRects returns the rectangle of every leaf.
func (w *World) LeafRects() []geom.Rect {
	out := make([]geom.Rect, len(w.leaves))
	for i, l := range w.leaves {
		out[i] = l.Bounds()
	}
	return out
}

// NeighbourRects returns the leaf under (x, y) and the rectangles of its baked
// neighbors in all directions.
func (w *World) NeighbourRects(x, y float64) (geom.Rect, []geom.Rect, bool) {
	leaf, err := w.LeafAt(x, y)
	if err != nil {
		return geom.Rect{}, nil, false
	}
	var out []geom.Rect
	for _, d := range quadtree.Dirs {
		for _, nb := range leaf.Neighbours(d) {
			out = append(out, nb.Bounds())
		}
	}
	return leaf.Bounds(), out, true
}

// CheckAdjacency validates the baked neighbor lists of the current surface.
func (w *World) CheckAdjacency() error {
	return quadtree.CheckAdjacency(w.tree.Root())
}

func init() {
	core.Register("fire", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
