package game

import "fmt"

// Coordinate identifies a node on the board. X and Y are in {-1, 0, 1} and
// Ring is the concentric square the node sits on. Ring 0 is reserved for the
// optional center node at the origin.
type Coordinate struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Ring int `json:"ring"`
}

// Direction is an edge offset relative to a node's own coordinate.
type Direction struct {
	DX    int
	DY    int
	DRing int
}

// Center is the coordinate of the optional center node.
var Center = Coordinate{}

func (c Coordinate) Add(d Direction) Coordinate {
	return Coordinate{X: c.X + d.DX, Y: c.Y + d.DY, Ring: c.Ring + d.DRing}
}

func (c Coordinate) IsCenter() bool {
	return c == Center
}

// IsCorner reports whether c sits on a corner of its ring.
func (c Coordinate) IsCorner() bool {
	return !c.IsCenter() && abs(c.X) == abs(c.Y)
}

// IsMidpoint reports whether c sits in the middle of a side of its ring.
func (c Coordinate) IsMidpoint() bool {
	return !c.IsCenter() && (c.X == 0) != (c.Y == 0)
}

// Less orders coordinates by ring, then x, then y.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Ring != o.Ring {
		return c.Ring < o.Ring
	}
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Ring)
}

func (d Direction) Reverse() Direction {
	return Direction{DX: -d.DX, DY: -d.DY, DRing: -d.DRing}
}

// heading is the planar direction of travel between two neighbouring nodes,
// each component reduced to its sign.
type heading struct {
	dx int
	dy int
}

func (h heading) reverse() heading {
	return heading{dx: -h.dx, dy: -h.dy}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
