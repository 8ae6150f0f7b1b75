package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	cameFrom := map[string]string{"b": "a", "c": "b", "d": "c"}

	t.Run("full chain", func(t *testing.T) {
		path, ok := ReconstructPath(cameFrom, "d", "a")
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b", "c", "d"}, path)
	})

	t.Run("current is start", func(t *testing.T) {
		path, ok := ReconstructPath(cameFrom, "a", "a")
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, path)
	})

	t.Run("chain ends early", func(t *testing.T) {
		path, ok := ReconstructPath(cameFrom, "d", "z")
		assert.False(t, ok)
		assert.Nil(t, path)
	})
}

func TestReconstructPath_Cycle(t *testing.T) {
	cameFrom := map[string]string{"b": "c", "c": "b", "a": "b"}

	path, ok := ReconstructPath(cameFrom, "a", "start")
	assert.False(t, ok)
	assert.Nil(t, path)
}
