package game

import (
	"fmt"
	"slices"
)

// Mill is a full-length straight line of one player's tokens. Its nodes are
// kept sorted so that two mills over the same nodes compare equal.
type Mill []Coordinate

func newMill(nodes []Coordinate) Mill {
	m := Mill(slices.Clone(nodes))
	slices.SortFunc(m, compareCoordinates)
	return m
}

func compareCoordinates(a, b Coordinate) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

func compareMills(a, b Mill) int {
	return slices.CompareFunc(a, b, compareCoordinates)
}

// Equal reports whether both mills cover the same nodes.
func (m Mill) Equal(o Mill) bool {
	return slices.Equal(m, o)
}

// Contains reports whether c is one of the mill's nodes.
func (m Mill) Contains(c Coordinate) bool {
	_, found := slices.BinarySearchFunc(m, c, compareCoordinates)
	return found
}

// FindMills returns every mill of player p that runs through pivot. For each
// edge direction of the pivot it walks forward along the line collecting p's
// tokens and, since the pivot may sit in the middle of a line, reverses once
// from the pivot when the forward walk stops short. Mills rediscovered from
// different directions are returned once. The board is not modified.
func (b *Board) FindMills(pivot Coordinate, p PlayerID, tokensForMill int) []Mill {
	if tokensForMill < 2 {
		panic(fmt.Sprintf("number of tokens per mill is too low (%d), must be at least 2", tokensForMill))
	}
	if b.OwnerAt(pivot) != p {
		return nil
	}

	friendly := func(c Coordinate) bool {
		return b.OwnerAt(c) == p
	}

	var found []Mill
	for _, second := range b.topology.neighbors[pivot] {
		if !friendly(second) {
			continue
		}

		run := []Coordinate{pivot, second}
		h := b.topology.headingTo(pivot, second)
		last := second
		reversed := false // Reverse once: the pivot could be in the middle of a mill
		for len(run) < tokensForMill {
			next, ok := b.topology.step(last, h)
			if ok && friendly(next) {
				run = append(run, next)
				last = next
				continue
			}
			if reversed {
				break // No more nodes to check, abandon this line
			}
			h = b.topology.headingTo(pivot, second).reverse()
			last = pivot
			reversed = true
		}

		if len(run) == tokensForMill {
			found = appendUnique(found, newMill(run))
		}
	}
	return found
}

func appendUnique(mills []Mill, m Mill) []Mill {
	for _, existing := range mills {
		if existing.Equal(m) {
			return mills
		}
	}
	return append(mills, m)
}
