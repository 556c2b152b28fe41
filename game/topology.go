package game

import "slices"

// NodesPerRing is the number of nodes on every ring: four corners and four
// side midpoints.
const NodesPerRing = 8

// Edge is an undirected connection between two nodes. A is always ordered
// before B.
type Edge struct {
	A Coordinate `json:"a"`
	B Coordinate `json:"b"`
}

// Topology is the static shape of a board: its nodes and, for every node,
// the edge directions leading to its neighbours. It never changes during a
// game and may be shared between states.
type Topology struct {
	rings      int
	diagonals  bool
	centerNode bool
	nodes      []Coordinate                // Generation order: center, then ring by ring
	directions map[Coordinate][]Direction  // Edge offsets relative to each node
	neighbors  map[Coordinate][]Coordinate // Resolved edges, only existing nodes
}

// NewTopology generates the board for the given rules.
func NewTopology(rules Rules) (*Topology, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return newTopology(rules.Rings, rules.Diagonals, rules.CenterNode), nil
}

func newTopology(rings int, diagonals, centerNode bool) *Topology {
	t := &Topology{
		rings:      rings,
		diagonals:  diagonals,
		centerNode: centerNode,
		directions: make(map[Coordinate][]Direction),
		neighbors:  make(map[Coordinate][]Coordinate),
	}

	if centerNode {
		t.nodes = append(t.nodes, Center)
	}
	for ring := 1; ring <= rings; ring++ {
		for x := -1; x <= 1; x++ { // Three nodes per side of a ring
			for y := -1; y <= 1; y++ {
				if x == 0 && y == 0 {
					continue // Rings have no node of their own in the middle
				}
				t.nodes = append(t.nodes, Coordinate{X: x, Y: y, Ring: ring})
			}
		}
	}

	for _, c := range t.nodes {
		t.directions[c] = t.edgeDirections(c)
	}
	// Resolve offsets, dropping any that point off the board
	for _, c := range t.nodes {
		for _, d := range t.directions[c] {
			n := c.Add(d)
			if t.Has(n) {
				t.neighbors[c] = append(t.neighbors[c], n)
			}
		}
	}
	return t
}

func (t *Topology) edgeDirections(c Coordinate) []Direction {
	var dirs []Direction

	switch {
	case c.IsCenter():
		// Spokes to the side midpoints of the first ring
		dirs = append(dirs,
			Direction{DX: 0, DY: 1, DRing: 1},
			Direction{DX: 0, DY: -1, DRing: 1},
			Direction{DX: -1, DY: 0, DRing: 1},
			Direction{DX: 1, DY: 0, DRing: 1},
		)
		if t.diagonals {
			dirs = append(dirs,
				Direction{DX: -1, DY: 1, DRing: 1},
				Direction{DX: 1, DY: 1, DRing: 1},
				Direction{DX: -1, DY: -1, DRing: 1},
				Direction{DX: 1, DY: -1, DRing: 1},
			)
		}
	case c.IsCorner():
		// Along the perimeter of the same ring
		dirs = append(dirs,
			Direction{DX: -c.X},
			Direction{DY: -c.Y},
		)
		if t.diagonals {
			dirs = append(dirs, t.ringToRing(c)...)
		}
	default:
		if c.X == 0 {
			dirs = append(dirs, Direction{DX: 1}, Direction{DX: -1})
		} else {
			dirs = append(dirs, Direction{DY: 1}, Direction{DY: -1})
		}
		dirs = append(dirs, t.ringToRing(c)...)
	}
	return dirs
}

// ringToRing links c to the same angular position on the rings directly
// inside and outside of it. The first ring links inwards to the center node
// when there is one.
func (t *Topology) ringToRing(c Coordinate) []Direction {
	var dirs []Direction
	if c.Ring == 1 && t.centerNode {
		dirs = append(dirs, Direction{DX: -c.X, DY: -c.Y, DRing: -c.Ring})
	} else if c.Ring > 1 {
		dirs = append(dirs, Direction{DRing: -1})
	}
	if c.Ring < t.rings {
		dirs = append(dirs, Direction{DRing: 1})
	}
	return dirs
}

// Rings returns the ring count.
func (t *Topology) Rings() int {
	return t.rings
}

// Nodes returns every node coordinate in generation order.
func (t *Topology) Nodes() []Coordinate {
	return slices.Clone(t.nodes)
}

// Len returns the number of nodes.
func (t *Topology) Len() int {
	return len(t.nodes)
}

// Has reports whether c is a node of the board.
func (t *Topology) Has(c Coordinate) bool {
	_, ok := t.directions[c]
	return ok
}

// Directions returns the edge offsets of c, relative to c.
func (t *Topology) Directions(c Coordinate) []Direction {
	return slices.Clone(t.directions[c])
}

// Neighbors returns the existing nodes adjacent to c.
func (t *Topology) Neighbors(c Coordinate) []Coordinate {
	return slices.Clone(t.neighbors[c])
}

// Adjacent reports whether a and b share an edge.
func (t *Topology) Adjacent(a, b Coordinate) bool {
	return slices.Contains(t.neighbors[a], b)
}

// Adjacency returns the adjacency sets of all nodes.
func (t *Topology) Adjacency() map[Coordinate][]Coordinate {
	adj := make(map[Coordinate][]Coordinate, len(t.neighbors))
	for _, c := range t.nodes {
		adj[c] = t.Neighbors(c)
	}
	return adj
}

// Edges returns every undirected edge once. Edge A->B equals edge B->A.
func (t *Topology) Edges() []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, c := range t.nodes {
		for _, n := range t.neighbors[c] {
			e := Edge{A: c, B: n}
			if n.Less(c) {
				e = Edge{A: n, B: c}
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// Position returns the planar lattice point of c. Rings are spaced one unit
// apart, so a node at (x, y, ring) sits at (x*ring, y*ring).
func (t *Topology) Position(c Coordinate) (int, int) {
	return c.X * c.Ring, c.Y * c.Ring
}

func (t *Topology) headingTo(from, to Coordinate) heading {
	fx, fy := t.Position(from)
	tx, ty := t.Position(to)
	return heading{dx: sign(tx - fx), dy: sign(ty - fy)}
}

// step continues a straight line from c along h. It returns false when no
// neighbour of c lies in that heading.
func (t *Topology) step(c Coordinate, h heading) (Coordinate, bool) {
	for _, n := range t.neighbors[c] {
		if t.headingTo(c, n) == h {
			return n, true
		}
	}
	return Coordinate{}, false
}
