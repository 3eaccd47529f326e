package engine

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadQLearnState_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	qpath := filepath.Join(dir, "qtable.bin")
	epath := filepath.Join(dir, "epsilon.bin")

	cfg := DefaultQLearnConfig(4)
	cfg.Epsilon = 0.33
	g := NewQLearnGrouper(cfg, 2, rand.New(rand.NewSource(0)))
	g.qtable[0] = 1.5
	g.qtable[len(g.qtable)-1] = -2.25

	require.NoError(t, SaveQLearnState(g, qpath, epath))

	loaded := NewQLearnGrouper(DefaultQLearnConfig(4), 2, rand.New(rand.NewSource(0)))
	LoadQLearnState(loaded, qpath, epath)

	assert.Equal(t, g.qtable, loaded.qtable)
	assert.InDelta(t, 0.33, loaded.cfg.Epsilon, 1e-9)
}

func TestLoadQLearnState_ShapeMismatchKeepsFreshTable(t *testing.T) {
	dir := t.TempDir()
	qpath := filepath.Join(dir, "qtable.bin")
	epath := filepath.Join(dir, "epsilon.bin")

	small := NewQLearnGrouper(DefaultQLearnConfig(4), 1, rand.New(rand.NewSource(0)))
	require.NoError(t, SaveQLearnState(small, qpath, epath))

	big := NewQLearnGrouper(DefaultQLearnConfig(4), 5, rand.New(rand.NewSource(0)))
	wantLen := len(big.qtable)
	LoadQLearnState(big, qpath, epath)

	assert.Len(t, big.qtable, wantLen)
	for _, v := range big.qtable {
		assert.Equal(t, 0.0, v)
	}
}

func TestLoadQLearnState_MissingFileLeavesFreshTable(t *testing.T) {
	dir := t.TempDir()
	g := NewQLearnGrouper(DefaultQLearnConfig(4), 2, rand.New(rand.NewSource(0)))
	LoadQLearnState(g, filepath.Join(dir, "missing.bin"), filepath.Join(dir, "missing-eps.bin"))
	for _, v := range g.qtable {
		assert.Equal(t, 0.0, v)
	}
}

func TestLoadQLearnState_WrongSizeFileDiscarded(t *testing.T) {
	dir := t.TempDir()
	qpath := filepath.Join(dir, "qtable.bin")
	require.NoError(t, os.WriteFile(qpath, []byte("not a qtable"), 0o644))

	g := NewQLearnGrouper(DefaultQLearnConfig(4), 2, rand.New(rand.NewSource(0)))
	LoadQLearnState(g, qpath, filepath.Join(dir, "eps.bin"))
	for _, v := range g.qtable {
		assert.Equal(t, 0.0, v)
	}
}
