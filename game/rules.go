package game

import (
	"errors"
	"fmt"
)

// MaxRings is the largest ring count a board may have.
const MaxRings = 7

var (
	ErrInvalidRules   = errors.New("invalid rules")
	ErrInvalidPlayers = errors.New("invalid players")
)

// Rules holds the immutable parameters of a game: the board shape and the
// token rules. It is read once when a game is loaded.
type Rules struct {
	Rings              int  `yaml:"rings" json:"rings"`
	Diagonals          bool `yaml:"diagonals" json:"diagonals"`
	CenterNode         bool `yaml:"centerNode" json:"centerNode"`
	TokensForMill      int  `yaml:"tokensForMill" json:"tokensForMill"`
	TokensPerPlayer    int  `yaml:"tokensPerPlayer" json:"tokensPerPlayer"`
	MaxTokensForFlying int  `yaml:"maxTokensForFlying" json:"maxTokensForFlying"`
}

// StandardRules returns the classic Nine Men's Morris setup.
func StandardRules() Rules {
	return Rules{
		Rings:              3,
		Diagonals:          false,
		CenterNode:         false,
		TokensForMill:      3,
		TokensPerPlayer:    9,
		MaxTokensForFlying: 3,
	}
}

// NodeCount is the number of nodes of the board described by the rules.
func (r Rules) NodeCount() int {
	n := NodesPerRing * r.Rings
	if r.CenterNode {
		n++
	}
	return n
}

// LongestLine is the number of nodes on the longest straight line of the board.
func (r Rules) LongestLine() int {
	across := r.Rings
	if r.CenterNode {
		across = 2*r.Rings + 1
	}
	return max(3, across)
}

// Validate rejects configurations that cannot produce a playable game.
// Values are never clamped.
func (r Rules) Validate() error {
	if r.Rings < 1 {
		return fmt.Errorf("%w: ring count %d, must be at least 1", ErrInvalidRules, r.Rings)
	}
	if r.Rings > MaxRings {
		return fmt.Errorf("%w: ring count %d exceeds %d", ErrInvalidRules, r.Rings, MaxRings)
	}
	if r.TokensForMill < 2 {
		return fmt.Errorf("%w: tokens for mill %d, must be at least 2", ErrInvalidRules, r.TokensForMill)
	}
	if longest := r.LongestLine(); r.TokensForMill > longest {
		return fmt.Errorf("%w: tokens for mill %d exceeds longest line of %d nodes", ErrInvalidRules, r.TokensForMill, longest)
	}
	if r.TokensPerPlayer < r.TokensForMill {
		return fmt.Errorf("%w: tokens per player %d is fewer than tokens for mill %d", ErrInvalidRules, r.TokensPerPlayer, r.TokensForMill)
	}
	if limit := r.NodeCount() / 2; r.TokensPerPlayer > limit {
		return fmt.Errorf("%w: tokens per player %d exceeds half the board (%d)", ErrInvalidRules, r.TokensPerPlayer, limit)
	}
	if r.MaxTokensForFlying < 0 || r.MaxTokensForFlying > r.TokensPerPlayer {
		return fmt.Errorf("%w: max tokens for flying %d must be within [0, %d]", ErrInvalidRules, r.MaxTokensForFlying, r.TokensPerPlayer)
	}
	return nil
}

// Profile is the identity of one player.
type Profile struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// DefaultProfiles returns two distinct player identities.
func DefaultProfiles() [2]Profile {
	return [2]Profile{
		{Name: "Player1", Color: "white"},
		{Name: "Player2", Color: "black"},
	}
}

// ValidateProfiles rejects empty names and players sharing a name or color.
func ValidateProfiles(profiles [2]Profile) error {
	for i, p := range profiles {
		if p.Name == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidPlayers, i+1)
		}
	}
	if profiles[0].Name == profiles[1].Name {
		return fmt.Errorf("%w: both players are named %q", ErrInvalidPlayers, profiles[0].Name)
	}
	if profiles[0].Color != "" && profiles[0].Color == profiles[1].Color {
		return fmt.Errorf("%w: both players use color %q", ErrInvalidPlayers, profiles[0].Color)
	}
	return nil
}
