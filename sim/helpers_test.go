package sim

import (
	"testing"

	"poke-splendor/const_data"
	"poke-splendor/entities"
	"poke-splendor/rules"

	"github.com/stretchr/testify/require"
)

func library(t *testing.T) map[int][]entities.Card {
	t.Helper()
	lib, err := const_data.DefaultLibrary()
	require.NoError(t, err)
	return lib.ByLevel()
}

func seats(levels ...int) []rules.Seat {
	out := make([]rules.Seat, len(levels))
	for i, level := range levels {
		out[i] = rules.Seat{ID: string(rune('a' + i)), Name: string(rune('A' + i)), AILevel: level}
	}
	return out
}

func startedEnv(t *testing.T, seed uint64, players int) *Env {
	t.Helper()
	levels := make([]int, players)
	for i := range levels {
		levels[i] = entities.DefaultAILevel
	}
	env := NewEnv(library(t))
	require.NoError(t, env.Reset(seed, seats(levels...)))
	return env
}

func hasType(actions []Action, typ ActionType) bool {
	for _, a := range actions {
		if a.Type == typ {
			return true
		}
	}
	return false
}
