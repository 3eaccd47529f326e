package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQLearnGrouper_AssignsEveryOrphanTask(t *testing.T) {
	w := NewWorkload(nil, 2)
	for i := 0; i < 4; i++ {
		task := NewTask(i, i, 0, []uint64{0})
		task.RecordTouch(i%2, 0)
		w.PushBucket(w.OrphanBucket(), task)
	}

	cfg := DefaultQLearnConfig(4)
	g := NewQLearnGrouper(cfg, 2, rand.New(rand.NewSource(0)))
	g.Group(w)

	assert.Empty(t, w.Bucket(w.OrphanBucket()))
	assert.Equal(t, 4, len(w.Bucket(0))+len(w.Bucket(1)))
}

func TestQLearnGrouper_SelectActionIsDeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultQLearnConfig(4)
	cfg.Epsilon = 0 // force pure exploitation
	g1 := NewQLearnGrouper(cfg, 3, rand.New(rand.NewSource(5)))
	g2 := NewQLearnGrouper(cfg, 3, rand.New(rand.NewSource(5)))

	assert.Equal(t, g1.selectAction(0), g2.selectAction(0))
}

func TestQLearnGrouper_UpdateMovesQTowardsReward(t *testing.T) {
	cfg := DefaultQLearnConfig(4)
	g := NewQLearnGrouper(cfg, 2, rand.New(rand.NewSource(0)))

	before := g.qtable[0]
	g.update(0, 0, 1.0, 0.0)
	after := g.qtable[0]

	assert.Greater(t, after, before)
}

func TestQLearnGrouper_Close_DecaysEpsilonWithFloor(t *testing.T) {
	cfg := DefaultQLearnConfig(4)
	cfg.Epsilon = 0.02
	cfg.MinEps = 0.01
	cfg.EpsilonDecay = 0.1
	g := NewQLearnGrouper(cfg, 2, rand.New(rand.NewSource(0)))

	g.Close()
	assert.InDelta(t, 0.01, g.cfg.Epsilon, 1e-9) // 0.02*0.1=0.002, floored to MinEps

	g.cfg.Epsilon = 0.5
	g.Close()
	assert.InDelta(t, 0.05, g.cfg.Epsilon, 1e-9) // 0.5*0.1=0.05, above floor
}

func TestDiscretize_Levels(t *testing.T) {
	assert.Equal(t, 0, discretize(0))
	assert.Equal(t, 1, discretize(0.5))
	assert.Equal(t, 2, discretize(0.9))
}

func TestBucketConflicts_IgnoresUnprocessedTasks(t *testing.T) {
	fresh := NewTask(0, 0, 0, []uint64{0})
	assert.Equal(t, 0.0, bucketConflicts([]*Task{fresh}, 4))
}

func TestBucketConflicts_DuplicateSetsRaiseFraction(t *testing.T) {
	a := NewTask(0, 0, 0, []uint64{0, 0})
	a.RecordTouch(1, 0)
	a.RecordTouch(1, 0)
	b := NewTask(1, 1, 0, []uint64{0, 0})
	b.RecordTouch(1, 0)
	b.RecordTouch(1, 0)

	frac := bucketConflicts([]*Task{a, b}, 2)
	assert.Equal(t, 0.75, frac) // all 4 touches share set 1: 3 duplicates / 4 total
}
