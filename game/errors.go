package game

import (
	"errors"
	"fmt"
)

// Reason tags why a node selection was rejected.
type Reason int

const (
	NotOwnToken Reason = iota
	NotEmptyNode
	NotAdjacent
	ProtectedByMill
	NotEnemyToken
	UnknownNode
	GameOver
)

var reasonNames = map[Reason]string{
	NotOwnToken:     "NotOwnToken",
	NotEmptyNode:    "NotEmptyNode",
	NotAdjacent:     "NotAdjacent",
	ProtectedByMill: "ProtectedByMill",
	NotEnemyToken:   "NotEnemyToken",
	UnknownNode:     "UnknownNode",
	GameOver:        "GameOver",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "Unknown"
}

// ParseReason is the inverse of Reason.String.
func ParseReason(s string) (Reason, bool) {
	for r, name := range reasonNames {
		if name == s {
			return r, true
		}
	}
	return 0, false
}

// RejectionError reports an illegal node selection. The state it was
// returned from is unchanged.
type RejectionError struct {
	Phase  Phase
	Node   Coordinate
	Reason Reason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("selection of %v rejected in %v: %v", e.Node, e.Phase, e.Reason)
}

func reject(phase Phase, node Coordinate, reason Reason) error {
	return &RejectionError{Phase: phase, Node: node, Reason: reason}
}

// RejectionReason extracts the reason tag from err.
func RejectionReason(err error) (Reason, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return 0, false
}
