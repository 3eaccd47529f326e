package engine

import "math/rand"

// DefaultKMedoidsMaxIter bounds the number of medoid-update iterations
// when the caller doesn't override it.
const DefaultKMedoidsMaxIter = 100

// KMedoidsGroup re-clusters the orphan bucket by DTW distance between
// each task's last-winsize cache-set fingerprint, and distributes the
// tasks into the per-core buckets by cluster label (spec.md §4.9). It is
// a no-op if the orphan bucket is empty.
func KMedoidsGroup(w *Workload, winsize, maxIter int, rng *rand.Rand) {
	tasks := w.DrainBucket(w.OrphanBucket())
	if len(tasks) == 0 {
		return
	}

	numCores := w.numCores
	k := numCores
	if k > len(tasks) {
		k = len(tasks)
	}

	vectors := make([][]float64, len(tasks))
	for i, t := range tasks {
		vectors[i] = toFloats(t.Fingerprint(winsize))
	}

	labels := kmedoidsCluster(vectors, k, rng, maxIter)
	for i, t := range tasks {
		w.PushBucket(labels[i], t)
	}
}

// kmedoidsCluster clusters vectors into k groups by DTW distance,
// returning each vector's cluster label. Terminates early once medoids
// stop changing between iterations (spec.md P9), never exceeding maxIter.
func kmedoidsCluster(vectors [][]float64, k int, rng *rand.Rand, maxIter int) []int {
	medoids := initializeMedoids(vectors, k, rng)
	labels := assignLabels(vectors, medoids)

	for iter := 0; iter < maxIter; iter++ {
		newMedoids := updateMedoids(vectors, labels, medoids, k)
		if medoidVectorsEqual(medoids, newMedoids) {
			break
		}
		medoids = newMedoids
		labels = assignLabels(vectors, medoids)
	}

	return labels
}

// initializeMedoids is the k-medoids++-like seeding: the first medoid is a
// uniform-random vector; each subsequent medoid is the vector whose
// minimum DTW distance to the already-chosen medoids is maximal, ties
// going to the lowest index (spec.md §4.9).
func initializeMedoids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(vectors)
	chosen := make([]int, 0, k)
	chosen = append(chosen, rng.Intn(n))

	for len(chosen) < k {
		bestIdx := -1
		bestMinDist := -1.0
		for i, v := range vectors {
			if containsInt(chosen, i) {
				continue
			}
			minDist := minDistanceToSet(v, vectors, chosen)
			if minDist > bestMinDist {
				bestMinDist = minDist
				bestIdx = i
			}
		}
		chosen = append(chosen, bestIdx)
	}

	medoids := make([][]float64, k)
	for i, idx := range chosen {
		medoids[i] = append([]float64(nil), vectors[idx]...)
	}
	return medoids
}

func minDistanceToSet(v []float64, vectors [][]float64, idxs []int) float64 {
	min := -1.0
	for _, idx := range idxs {
		d := dtwDistance(v, vectors[idx])
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// assignLabels assigns each vector to the nearest medoid by DTW distance,
// ties going to the lowest cluster index.
func assignLabels(vectors [][]float64, medoids [][]float64) []int {
	labels := make([]int, len(vectors))
	for i, v := range vectors {
		best, bestDist := 0, -1.0
		for c, m := range medoids {
			d := dtwDistance(v, m)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = c
			}
		}
		labels[i] = best
	}
	return labels
}

// updateMedoids recomputes each cluster's medoid as the member minimizing
// total DTW distance, after min-max normalization within the cluster, to
// all other members. Ties go to the lowest member index. Empty clusters
// keep their previous medoid.
//
// spec.md §9 flags that the original implementation wrote
// medoids[i][j] = vectors[idx][i] (transposed); the corrected operation —
// copying the chosen vector verbatim — is implemented directly below.
func updateMedoids(vectors [][]float64, labels []int, medoids [][]float64, k int) [][]float64 {
	newMedoids := make([][]float64, k)
	for c := 0; c < k; c++ {
		var members []int
		for i, l := range labels {
			if l == c {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			newMedoids[c] = medoids[c]
			continue
		}

		normalized := make([][]float64, len(members))
		for i, idx := range members {
			normalized[i] = minMaxNormalize(vectors[idx])
		}

		bestLocal, bestSum := 0, -1.0
		for i := range members {
			sum := 0.0
			for j := range members {
				if i == j {
					continue
				}
				sum += dtwDistance(normalized[i], normalized[j])
			}
			if bestSum < 0 || sum < bestSum {
				bestSum = sum
				bestLocal = i
			}
		}

		newMedoids[c] = append([]float64(nil), vectors[members[bestLocal]]...)
	}
	return newMedoids
}

func medoidVectorsEqual(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
