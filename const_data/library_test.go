package const_data

import (
	"os"
	"path/filepath"
	"testing"

	"poke-splendor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLibraryIsComplete(t *testing.T) {
	lib, err := DefaultLibrary()
	require.NoError(t, err)

	byLevel := lib.ByLevel()
	for _, level := range entities.Levels {
		require.NotEmpty(t, byLevel[level], "level %d", level)
		for _, c := range byLevel[level] {
			assert.Equal(t, level, c.Level)
			assert.NotEmpty(t, c.ID)
			assert.NotEmpty(t, c.Name)
			for _, item := range c.Cost {
				assert.True(t, item.Color.Valid())
			}
		}
	}
}

func TestDefaultLibraryIDsUnique(t *testing.T) {
	lib, err := DefaultLibrary()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, cards := range lib.ByLevel() {
		for _, c := range cards {
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Equal(t, lib.Size(), len(seen))
}

func TestEvolutionTargetsExist(t *testing.T) {
	lib, err := DefaultLibrary()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, cards := range lib.ByLevel() {
		for _, c := range cards {
			names[c.Name] = true
		}
	}
	for _, cards := range lib.ByLevel() {
		for _, c := range cards {
			if c.Evolution != nil {
				assert.True(t, names[c.Evolution.Name], "%s evolves into unknown %s", c.Name, c.Evolution.Name)
			}
		}
	}
}

func TestLoadLibraryFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"level_1":[{"name":"皮卡丘","point":1}]}`), 0644))

	lib, err := LoadLibrary(path)
	require.NoError(t, err)
	cards := lib.ByLevel()[entities.LevelOne]
	require.Len(t, cards, 1)
	assert.Equal(t, 1, cards[0].Level)
	assert.Equal(t, "1-0", cards[0].ID)
}

func TestParseLibraryRejectsEmpty(t *testing.T) {
	_, err := ParseLibrary([]byte(`{}`))
	assert.Error(t, err)

	_, err = ParseLibrary([]byte(`not json`))
	assert.Error(t, err)
}
