package engine

import (
	"fmt"
	"morris/game"
)

// Sink receives the notifications of a session, synchronously and in order.
// The session has already moved on when a notification arrives; a sink that
// animates must queue the work itself.
type Sink interface {
	OnPhaseChanged(phase game.Phase, player game.PlayerID)
	OnTokenSelected(node game.Coordinate, destinations []game.Coordinate)
	OnTokenPlaced(node game.Coordinate, player game.PlayerID)
	OnTokenMoved(from, to game.Coordinate, player game.PlayerID)
	OnTokenCaptured(node game.Coordinate)
	OnMillFormed(nodes game.Mill)
	OnPlayerWins(player game.PlayerID)
	OnDrawGame()
}

// NopSink ignores every notification. Embed it to implement only some of them.
type NopSink struct{}

func (NopSink) OnPhaseChanged(game.Phase, game.PlayerID)                     {}
func (NopSink) OnTokenSelected(game.Coordinate, []game.Coordinate)           {}
func (NopSink) OnTokenPlaced(game.Coordinate, game.PlayerID)                 {}
func (NopSink) OnTokenMoved(game.Coordinate, game.Coordinate, game.PlayerID) {}
func (NopSink) OnTokenCaptured(game.Coordinate)                              {}
func (NopSink) OnMillFormed(game.Mill)                                       {}
func (NopSink) OnPlayerWins(game.PlayerID)                                   {}
func (NopSink) OnDrawGame()                                                  {}

// Dispatch forwards events to the matching sink methods.
func Dispatch(sink Sink, events []game.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case game.PhaseChanged:
			sink.OnPhaseChanged(e.Phase, e.Player)
		case game.TokenSelected:
			sink.OnTokenSelected(e.Node, e.Destinations)
		case game.TokenPlaced:
			sink.OnTokenPlaced(e.Node, e.Player)
		case game.TokenMoved:
			sink.OnTokenMoved(e.From, e.To, e.Player)
		case game.TokenCaptured:
			sink.OnTokenCaptured(e.Node)
		case game.MillFormed:
			sink.OnMillFormed(e.Nodes)
		case game.PlayerWins:
			sink.OnPlayerWins(e.Player)
		case game.GameDrawn:
			sink.OnDrawGame()
		default:
			panic(fmt.Sprintf("unexpected event type %T", event))
		}
	}
}
