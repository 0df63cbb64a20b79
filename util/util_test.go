package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceExt(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("fur_elise.mp3", ReplaceExt("fur_elise.wav", ".wav", ".mp3"))
	assert.Equal("fur_elise.flac", ReplaceExt("fur_elise.flac", ".wav", ".mp3"))
	assert.Equal("a.wav.mp3", ReplaceExt("a.wav.wav", ".wav", ".mp3"))
	assert.Equal("x.wav", ReplaceExt("x.wav", "", ".mp3"))
}

func TestNumericHelpers(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Min(3, 7))
	assert.Equal(0.25, Abs(-0.25))
	assert.Equal(6, Sum([]int{1, 2, 3}))
	assert.Equal(2.0, Mean([]int{1, 2, 3}))
	assert.Equal(0.0, Mean([]float64{}))
}

func TestGetKeysSorted(t *testing.T) {
	keys := GetKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []int{2, 1, 3}, GetValues(map[string]int{"b": 1, "a": 2, "c": 3}))
}

func TestFileExistsAndGather(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ode_to_joy.mp3")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "ode_to_joy.wav"), []byte("x"), 0644))

	assert := assert.New(t)
	assert.True(FileExists(path))
	assert.False(FileExists(dir))
	assert.False(FileExists(filepath.Join(dir, "nope.mp3")))
	assert.Equal([]string{path}, GatherAllPaths(dir, ".mp3"))
}
