package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func c(x, y, ring int) Coordinate {
	return Coordinate{X: x, Y: y, Ring: ring}
}

func boardWith(topo *Topology, tokens map[Coordinate]PlayerID) *Board {
	board := NewBoard(topo, topo.Len())
	for node, p := range tokens {
		board.PlaceFromSupply(p, node)
	}
	return board
}

func TestFindMills(t *testing.T) {
	standard := newTopology(3, false, false)

	t.Run("pivot at the end of a side", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne,
		})

		mills := board.FindMills(c(1, 1, 1), PlayerOne, 3)

		require.Len(t, mills, 1)
		require.Equal(t, newMill([]Coordinate{c(-1, 1, 1), c(0, 1, 1), c(1, 1, 1)}), mills[0])
	})

	t.Run("pivot in the middle of a line", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(1, 0, 1): PlayerTwo, c(1, 0, 2): PlayerTwo, c(1, 0, 3): PlayerTwo,
		})

		mills := board.FindMills(c(1, 0, 2), PlayerTwo, 3)

		require.Len(t, mills, 1, "Both walks find the same mill and it should be returned once")
		require.Len(t, mills[0], 3)
	})

	t.Run("two mills through one pivot", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne,
			c(1, 0, 1): PlayerOne, c(1, -1, 1): PlayerOne,
		})

		mills := board.FindMills(c(1, 1, 1), PlayerOne, 3)

		require.Len(t, mills, 2)
		for _, m := range mills {
			require.True(t, m.Contains(c(1, 1, 1)))
		}
	})

	t.Run("lines do not turn around corners", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne, c(1, 0, 1): PlayerOne,
		})

		require.Empty(t, board.FindMills(c(1, 1, 1), PlayerOne, 3))
	})

	t.Run("mixed owners never form a mill", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerTwo, c(1, 1, 1): PlayerOne,
		})

		require.Empty(t, board.FindMills(c(1, 1, 1), PlayerOne, 3))
		require.Empty(t, board.FindMills(c(0, 1, 1), PlayerTwo, 3))
	})

	t.Run("pivot not owned by the player", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne,
		})

		require.Nil(t, board.FindMills(c(1, 1, 1), PlayerTwo, 3))
		require.Nil(t, board.FindMills(c(1, 1, 2), PlayerOne, 3))
	})

	t.Run("mills always have exactly the requested size", func(t *testing.T) {
		wide := newTopology(5, false, false)
		tokens := map[Coordinate]PlayerID{}
		for ring := 1; ring <= 5; ring++ {
			tokens[c(0, -1, ring)] = PlayerOne
		}
		board := boardWith(wide, tokens)

		for size := 2; size <= 5; size++ {
			for ring := 1; ring <= 5; ring++ {
				for _, m := range board.FindMills(c(0, -1, ring), PlayerOne, size) {
					require.Len(t, m, size)
					for _, node := range m {
						require.Equal(t, PlayerOne, board.OwnerAt(node))
					}
				}
			}
		}
		require.NotEmpty(t, board.FindMills(c(0, -1, 5), PlayerOne, 5))
	})

	t.Run("line through the center", func(t *testing.T) {
		topo := newTopology(1, false, true)
		board := boardWith(topo, map[Coordinate]PlayerID{
			c(0, -1, 1): PlayerOne, Center: PlayerOne, c(0, 1, 1): PlayerOne,
		})

		for _, pivot := range []Coordinate{c(0, -1, 1), Center, c(0, 1, 1)} {
			mills := board.FindMills(pivot, PlayerOne, 3)
			require.Len(t, mills, 1, "Pivot %v should see the line through the center", pivot)
			require.True(t, mills[0].Contains(Center))
		}
	})

	t.Run("diagonal line", func(t *testing.T) {
		topo := newTopology(3, true, false)
		board := boardWith(topo, map[Coordinate]PlayerID{
			c(-1, -1, 1): PlayerTwo, c(-1, -1, 2): PlayerTwo, c(-1, -1, 3): PlayerTwo,
		})

		require.Len(t, board.FindMills(c(-1, -1, 3), PlayerTwo, 3), 1)
		require.Empty(t, newBoardOf(standard, board).FindMills(c(-1, -1, 3), PlayerTwo, 3),
			"Corners are not ring to ring lines without diagonals")
	})

	t.Run("mill of two", func(t *testing.T) {
		topo := newTopology(1, false, false)
		board := boardWith(topo, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne,
		})

		require.Len(t, board.FindMills(c(0, 1, 1), PlayerOne, 2), 2)
		require.Len(t, board.FindMills(c(1, 1, 1), PlayerOne, 2), 1)
	})

	t.Run("mill size below two panics", func(t *testing.T) {
		board := boardWith(standard, nil)

		require.Panics(t, func() { board.FindMills(c(0, 1, 1), PlayerOne, 1) })
	})

	t.Run("detection does not change the board", func(t *testing.T) {
		board := boardWith(standard, map[Coordinate]PlayerID{
			c(-1, 1, 1): PlayerOne, c(0, 1, 1): PlayerOne, c(1, 1, 1): PlayerOne,
		})
		before := board.Tokens()

		board.FindMills(c(0, 1, 1), PlayerOne, 3)

		require.Equal(t, before, board.Tokens())
	})
}

// newBoardOf lays the tokens of board onto another topology.
func newBoardOf(topo *Topology, board *Board) *Board {
	tokens := map[Coordinate]PlayerID{}
	for _, node := range board.OccupiedNodes() {
		tokens[node] = board.OwnerAt(node)
	}
	return boardWith(topo, tokens)
}

func TestMill(t *testing.T) {
	t.Run("mills over the same nodes are equal", func(t *testing.T) {
		a := newMill([]Coordinate{c(1, 1, 1), c(0, 1, 1), c(-1, 1, 1)})
		b := newMill([]Coordinate{c(-1, 1, 1), c(1, 1, 1), c(0, 1, 1)})

		require.True(t, a.Equal(b))
		require.True(t, a.Contains(c(0, 1, 1)))
		require.False(t, a.Contains(c(0, 1, 2)))
	})
}
