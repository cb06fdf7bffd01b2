package quadtree

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"firequad/internal/geom"
)

func newQuadTree(t *testing.T, p Params) *Tree {
	t.Helper()
	tree, err := NewTree(BuildUniform(geom.V(0, 0), geom.V(256, 256), 1), p)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestHeatFlowsOnlyToAdjacentLeaves(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	root := tree.Root()
	nw, ne, sw, se := root.Child(NW), root.Child(NE), root.Child(SW), root.Child(SE)
	if err := nw.SetTemperature(300); err != nil {
		t.Fatal(err)
	}

	if err := tree.Simulate(0.01); err != nil {
		t.Fatal(err)
	}
	if err := tree.Apply(); err != nil {
		t.Fatal(err)
	}

	if nw.Temperature() >= 300 {
		t.Fatalf("NW should cool, got %f", nw.Temperature())
	}
	if ne.Temperature() <= 0 {
		t.Fatalf("NE should warm, got %f", ne.Temperature())
	}
	if sw.Temperature() <= 0 {
		t.Fatalf("SW should warm, got %f", sw.Temperature())
	}
	if se.Temperature() != 0 {
		t.Fatalf("SE is not adjacent to NW and must stay at 0, got %f", se.Temperature())
	}
	if ne.Temperature() != sw.Temperature() {
		t.Fatalf("NE and SW are symmetric, got %f and %f", ne.Temperature(), sw.Temperature())
	}
}

func TestBurningConsumesFuelPerSecond(t *testing.T) {
	p := DefaultParams()
	tree := newQuadTree(t, p)
	leaf := tree.Root().Child(NW)
	if leaf.Fuel() != 100 {
		t.Fatalf("fresh leaf fuel = %f, want 100", leaf.Fuel())
	}
	if err := leaf.SetTemperature(300); err != nil {
		t.Fatal(err)
	}

	if err := tree.Step(1); err != nil {
		t.Fatal(err)
	}
	if got, want := leaf.Fuel(), 100-p.BurnRate; got != want {
		t.Fatalf("fuel = %f, want %f", got, want)
	}
	if leaf.State() != Burning {
		t.Fatalf("state = %s, want burning", leaf.State())
	}
}

func TestBelowThresholdStaysIdle(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	leaf := tree.Root().Child(SE)
	// Threshold for a quarter-size leaf is 200 * 0.25.
	if err := leaf.SetTemperature(49); err != nil {
		t.Fatal(err)
	}
	if err := tree.Step(0.01); err != nil {
		t.Fatal(err)
	}
	if leaf.State() != Idle || leaf.Fuel() != 100 {
		t.Fatalf("leaf below threshold ignited: state %s fuel %f", leaf.State(), leaf.Fuel())
	}
}

func TestFuelDepletesMonotonicallyAndNeverReignites(t *testing.T) {
	p := DefaultParams()
	p.BurnRate = 10
	tree, err := NewTree(NewRoot(geom.V(0, 0), geom.V(32, 32)), p)
	if err != nil {
		t.Fatal(err)
	}
	leaf := tree.Root()
	if err := leaf.SetTemperature(p.IgnitionTemp + 1); err != nil {
		t.Fatal(err)
	}

	prev := leaf.Fuel()
	steps := 0
	for leaf.Fuel() > 0 {
		if err := tree.Step(1); err != nil {
			t.Fatal(err)
		}
		steps++
		if leaf.Fuel() >= prev {
			t.Fatalf("step %d: fuel %f did not decrease from %f", steps, leaf.Fuel(), prev)
		}
		if leaf.Fuel() > 0 && leaf.State() != Burning {
			t.Fatalf("step %d: expected burning while fuel remains", steps)
		}
		prev = leaf.Fuel()
		if steps > 100 {
			t.Fatal("fuel never ran out")
		}
	}
	if steps != 10 {
		t.Fatalf("expected 10 burning steps, got %d", steps)
	}
	if leaf.State() != Idle {
		t.Fatal("a cell without fuel must be idle")
	}

	if err := leaf.SetTemperature(10 * p.IgnitionTemp); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := tree.Step(1); err != nil {
			t.Fatal(err)
		}
		if leaf.Fuel() != 0 || leaf.State() != Idle {
			t.Fatalf("burnt-out cell changed: fuel %f state %s", leaf.Fuel(), leaf.State())
		}
	}
}

func TestSingleTransferIsEqualAndOpposite(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	a, b := tree.Root().Child(NW), tree.Root().Child(NE)
	if err := a.SetTemperature(123.4); err != nil {
		t.Fatal(err)
	}

	exchange(a, b, tree.Params(), 0.05)
	if a.Pending() == 0 {
		t.Fatal("expected a non-zero transfer")
	}
	if a.Pending() != -b.Pending() {
		t.Fatalf("deltas %f and %f are not exact negatives", a.Pending(), b.Pending())
	}
	want := 123.4 * a.Concentration() * tree.Params().TransmitSpeed * 0.05
	if math.Abs(b.Pending()-want) > 1e-12 {
		t.Fatalf("transfer = %f, want %f", b.Pending(), want)
	}
}

func TestTransferToSmallerNeighbourScalesByArea(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	root.Child(NE).Subdivide()
	tree, err := NewTree(root, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	big := root.Child(NW)
	small := root.Child(NE).Child(NW)
	if err := big.SetTemperature(40); err != nil {
		t.Fatal(err)
	}
	if err := small.SetTemperature(40); err != nil {
		t.Fatal(err)
	}

	exchange(big, small, tree.Params(), 0.1)
	toSmall := small.Pending()
	if want := 40 * big.Concentration() * 0.1 * 0.25; math.Abs(toSmall-want) > 1e-12 {
		t.Fatalf("big->small transfer %f, want %f", toSmall, want)
	}

	before := big.Pending()
	exchange(small, big, tree.Params(), 0.1)
	toBig := big.Pending() - before
	if want := 40 * small.Concentration() * 0.1; math.Abs(toBig-want) > 1e-12 {
		t.Fatalf("small->big transfer %f, want %f", toBig, want)
	}
}

func TestOuterEdgeLosesHeat(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	tree, err := NewTree(root, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	se := root.Child(SE)
	if err := se.SetTemperature(10); err != nil {
		t.Fatal(err)
	}
	if err := tree.Simulate(0.01); err != nil {
		t.Fatal(err)
	}
	loss := 10 * se.Concentration() * 0.01
	if want := -4 * loss; math.Abs(se.Pending()-want) > 1e-12 {
		t.Fatalf("pending = %f, want %f (two neighbors and two outer edges)", se.Pending(), want)
	}
}

func TestSimulateRejectsNegativeStep(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	leaf := tree.Root().Child(NW)
	if err := leaf.SetTemperature(300); err != nil {
		t.Fatal(err)
	}
	if err := tree.Simulate(-0.1); !errors.Is(err, ErrNegativeStep) {
		t.Fatalf("expected ErrNegativeStep, got %v", err)
	}
	if leaf.Pending() != 0 || leaf.Fuel() != 100 || leaf.State() != Idle {
		t.Fatal("rejected step must not touch state")
	}
	if err := tree.Apply(); !errors.Is(err, ErrNoPendingStep) {
		t.Fatalf("failed Simulate must not arm Apply, got %v", err)
	}
}

func TestSimulateRejectsInfiniteStep(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	leaf := tree.Root().Child(NE)
	if err := leaf.SetTemperature(50); err != nil {
		t.Fatal(err)
	}
	if err := tree.Simulate(math.Inf(1)); !errors.Is(err, ErrNegativeStep) {
		t.Fatalf("expected ErrNegativeStep for +Inf, got %v", err)
	}
	if err := tree.Step(0.01); err != nil {
		t.Fatalf("tree unusable after rejected step: %v", err)
	}
	for _, l := range tree.Leaves() {
		if math.IsNaN(l.Temperature()) {
			t.Fatalf("leaf %s temperature is NaN", l.Quadrant())
		}
	}
}

func TestSimulateRejectsReshapedTree(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	tree.Root().Child(NW).Subdivide()
	if err := tree.Simulate(0.01); !errors.Is(err, ErrReshaped) {
		t.Fatalf("expected ErrReshaped after subdividing a baked leaf, got %v", err)
	}
	if err := tree.Apply(); !errors.Is(err, ErrNoPendingStep) {
		t.Fatalf("failed Simulate must not arm Apply, got %v", err)
	}
}

func TestZeroStepChangesNothing(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	leaf := tree.Root().Child(SW)
	if err := leaf.SetTemperature(20); err != nil {
		t.Fatal(err)
	}
	if err := tree.Step(0); err != nil {
		t.Fatal(err)
	}
	for _, l := range tree.Leaves() {
		want := 0.0
		if l == leaf {
			want = 20
		}
		if l.Temperature() != want {
			t.Fatalf("leaf %s temperature %f, want %f", l.Quadrant(), l.Temperature(), want)
		}
	}
}

func TestTreeEnforcesStepPairing(t *testing.T) {
	tree := newQuadTree(t, DefaultParams())
	if err := tree.Apply(); !errors.Is(err, ErrNoPendingStep) {
		t.Fatalf("Apply before Simulate: got %v", err)
	}
	if err := tree.Simulate(0.01); err != nil {
		t.Fatal(err)
	}
	if err := tree.Simulate(0.01); !errors.Is(err, ErrStepPending) {
		t.Fatalf("double Simulate: got %v", err)
	}
	if err := tree.Apply(); err != nil {
		t.Fatal(err)
	}
	tree.Reset()
	if err := tree.Apply(); !errors.Is(err, ErrNoPendingStep) {
		t.Fatalf("Apply after Reset: got %v", err)
	}
}

func TestNewTreeValidatesParams(t *testing.T) {
	p := DefaultParams()
	p.BurnRate = -1
	if _, err := NewTree(NewRoot(geom.V(0, 0), geom.V(1, 1)), p); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	p = DefaultParams()
	p.TransmitSpeed = math.Inf(1)
	if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for +Inf, got %v", err)
	}
	tree := newQuadTree(t, DefaultParams())
	if err := tree.SetParams(p); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("SetParams accepted invalid params: %v", err)
	}
}

func TestIgnitionStimulusScalesWithSize(t *testing.T) {
	p := DefaultParams()
	tree := newQuadTree(t, p)
	leaf, err := tree.Ignite(geom.V(200, 10))
	if err != nil {
		t.Fatal(err)
	}
	if leaf != tree.Root().Child(NE) {
		t.Fatal("stimulus hit the wrong leaf")
	}
	if want := p.StimulusTemp * 0.25; leaf.Temperature() != want {
		t.Fatalf("temperature %f, want %f", leaf.Temperature(), want)
	}
	if err := tree.Root().ApplyIgnitionStimulus(p); !errors.Is(err, ErrNotLeaf) {
		t.Fatalf("stimulus on internal node: got %v", err)
	}
	if _, err := tree.Ignite(geom.V(300, 10)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("stimulus outside surface: got %v", err)
	}
}

func TestLongRunStaysInRange(t *testing.T) {
	root := Build(geom.V(0, 0), geom.V(1280, 720), 6, rand.New(rand.NewPCG(3, 0)))
	tree, err := NewTree(root, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	lit, err := tree.Ignite(geom.V(640, 360))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 600; i++ {
		if err := tree.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
		for _, l := range tree.Leaves() {
			if l.Temperature() < 0 || l.Fuel() < 0 || math.IsNaN(l.Temperature()) {
				t.Fatalf("step %d: leaf %v out of range: T=%f fuel=%f", i, l.Origin(), l.Temperature(), l.Fuel())
			}
		}
	}
	if lit.Fuel() >= tree.Params().InitialFuel {
		t.Fatalf("ignited cell should have burned fuel, has %f", lit.Fuel())
	}
}
