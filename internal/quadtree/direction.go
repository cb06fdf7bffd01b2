package quadtree

// Dir enumerates the four cardinal directions.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// Dirs lists the cardinal directions in bake and simulation order.
var Dirs = [4]Dir{North, East, South, West}

func (d Dir) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	default:
		return East
	}
}

// Quadrant is a node's position inside its parent's 2x2 split. The numeric value
// is the child index: x + 2*y.
type Quadrant uint8

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

// Quadrants lists the child positions in index order.
var Quadrants = [4]Quadrant{NW, NE, SW, SE}

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	default:
		return "?"
	}
}

// quadrantAt maps per-axis halves (0 or 1) to a quadrant.
func quadrantAt(x, y int) Quadrant {
	return Quadrant(x + 2*y)
}

// Mirror reflects q across the axis perpendicular to d: north/south swaps the
// rows, east/west swaps the columns.
func (q Quadrant) Mirror(d Dir) Quadrant {
	if d == North || d == South {
		return q ^ 2
	}
	return q ^ 1
}

// sideQuadrants holds, for each direction, the two child positions lying along
// that side of a 2x2 block.
var sideQuadrants = [4][2]Quadrant{
	North: {NE, NW},
	East:  {NE, SE},
	South: {SE, SW},
	West:  {NW, SW},
}

// onSide reports whether q touches side d of its parent.
func (q Quadrant) onSide(d Dir) bool {
	s := sideQuadrants[d]
	return q == s[0] || q == s[1]
}
