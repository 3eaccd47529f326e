package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKMedoidsGroup_IdenticalFingerprintsShareACluster reproduces spec.md
// §8 Scenario 6: two tasks with identical fingerprints and two cores
// should both end up in the same per-core bucket, leaving the other
// empty.
func TestKMedoidsGroup_IdenticalFingerprintsShareACluster(t *testing.T) {
	w := NewWorkload(nil, 2)
	a := NewTask(0, 0, 0, []uint64{0, 0})
	b := NewTask(1, 1, 0, []uint64{0, 0})
	a.RecordTouch(3, 0)
	a.RecordTouch(3, 0)
	b.RecordTouch(3, 0)
	b.RecordTouch(3, 0)
	w.PushBucket(w.OrphanBucket(), a)
	w.PushBucket(w.OrphanBucket(), b)

	KMedoidsGroup(w, 2, DefaultKMedoidsMaxIter, rand.New(rand.NewSource(0)))

	total := len(w.Bucket(0)) + len(w.Bucket(1))
	assert.Equal(t, 2, total)
	assert.True(t, len(w.Bucket(0)) == 0 || len(w.Bucket(1)) == 0)
	assert.Empty(t, w.Bucket(w.OrphanBucket()))
}

func TestKMedoidsGroup_EmptyOrphanBucketIsNoop(t *testing.T) {
	w := NewWorkload(nil, 2)
	KMedoidsGroup(w, 2, DefaultKMedoidsMaxIter, rand.New(rand.NewSource(0)))
	assert.Empty(t, w.Bucket(0))
	assert.Empty(t, w.Bucket(1))
}

func TestKMedoidsCluster_TwoWellSeparatedVectors(t *testing.T) {
	vectors := [][]float64{{0, 0}, {0, 0}, {100, 100}, {100, 100}}
	labels := kmedoidsCluster(vectors, 2, rand.New(rand.NewSource(2)), DefaultKMedoidsMaxIter)

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[2], labels[3])
	assert.NotEqual(t, labels[0], labels[2])
}

func TestUpdateMedoids_CopiesVectorVerbatimNotTransposed(t *testing.T) {
	vectors := [][]float64{{1, 2, 3}, {4, 5, 6}}
	labels := []int{0, 0}
	medoids := [][]float64{{0, 0, 0}}

	updated := updateMedoids(vectors, labels, medoids, 1)
	assert.True(t, updated[0][0] == vectors[0][0] || updated[0][0] == vectors[1][0])
	assert.Len(t, updated[0], 3)
}
