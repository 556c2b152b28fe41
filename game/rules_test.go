package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRulesValidate(t *testing.T) {
	t.Run("standard rules are valid", func(t *testing.T) {
		require.NoError(t, StandardRules().Validate())
		require.Equal(t, 24, StandardRules().NodeCount())
	})

	testCases := []struct {
		name   string
		modify func(*Rules)
		valid  bool
	}{
		{name: "no rings", modify: func(r *Rules) { r.Rings = 0 }},
		{name: "too many rings", modify: func(r *Rules) { r.Rings = MaxRings + 1 }},
		{name: "ring count that would overflow", modify: func(r *Rules) { r.Rings = 1 << 40 }},
		{name: "largest board", modify: func(r *Rules) { r.Rings = MaxRings }, valid: true},
		{name: "mill of one", modify: func(r *Rules) { r.TokensForMill = 1 }},
		{name: "mill longer than any line", modify: func(r *Rules) { r.TokensForMill = 4 }},
		{name: "mill across the center", modify: func(r *Rules) { r.CenterNode = true; r.TokensForMill = 7; r.TokensPerPlayer = 12 }, valid: true},
		{name: "fewer tokens than a mill", modify: func(r *Rules) { r.TokensPerPlayer = 2 }},
		{name: "more tokens than half the board", modify: func(r *Rules) { r.TokensPerPlayer = 13 }},
		{name: "half the board", modify: func(r *Rules) { r.TokensPerPlayer = 12 }, valid: true},
		{name: "negative flying threshold", modify: func(r *Rules) { r.MaxTokensForFlying = -1 }},
		{name: "flying threshold above supply", modify: func(r *Rules) { r.MaxTokensForFlying = 10 }},
		{name: "flying disabled", modify: func(r *Rules) { r.MaxTokensForFlying = 0 }, valid: true},
		{name: "mill of two", modify: func(r *Rules) { r.TokensForMill = 2 }, valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules := StandardRules()
			tc.modify(&rules)

			err := rules.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidRules)
			}
		})
	}
}

func TestValidateProfiles(t *testing.T) {
	t.Run("default profiles are valid", func(t *testing.T) {
		require.NoError(t, ValidateProfiles(DefaultProfiles()))
	})

	t.Run("profiles need names", func(t *testing.T) {
		err := ValidateProfiles([2]Profile{{Name: "Ada"}, {}})

		require.ErrorIs(t, err, ErrInvalidPlayers)
	})

	t.Run("profiles must be distinct", func(t *testing.T) {
		require.ErrorIs(t, ValidateProfiles([2]Profile{{Name: "Ada"}, {Name: "Ada"}}), ErrInvalidPlayers)
		require.ErrorIs(t, ValidateProfiles([2]Profile{{Name: "Ada", Color: "red"}, {Name: "Bo", Color: "red"}}), ErrInvalidPlayers)
	})

	t.Run("new game rejects invalid configuration", func(t *testing.T) {
		_, _, err := New(Rules{Rings: 3}, DefaultProfiles())
		require.ErrorIs(t, err, ErrInvalidRules)

		_, _, err = New(StandardRules(), [2]Profile{})
		require.ErrorIs(t, err, ErrInvalidPlayers)
	})
}
