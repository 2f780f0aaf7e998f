// Package clustering implements top-down k-way clustering of chunk
// embeddings into a balanced cluster hierarchy, the first stage of tree
// construction.
package clustering

import (
	"math"
	"math/rand"
)

// Seed fixes k-means initialization for reproducible tree builds.
const Seed = 42

// NInit is the number of k-means restarts; the lowest-inertia run wins.
const NInit = 10

// MaxIterations bounds Lloyd's algorithm per restart.
const MaxIterations = 100

// kmeans runs NInit restarts of Lloyd's algorithm over data and returns the
// cluster label (0..k-1) assigned to each point by the lowest-inertia run.
//
// sklearn's KMeans defaults to k-means++ seeding; no k-means library or
// k-means++ reference exists anywhere in the example corpus, so this is a
// from-scratch implementation seeding centroids from a uniform random sample
// of the data instead. The fixed seed and restart count keep results
// reproducible across builds even though initialization differs from
// sklearn's.
func kmeans(data [][]float32, k int, rng *rand.Rand) []int {
	n := len(data)
	if n == 0 {
		return nil
	}
	if k >= n {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		return labels
	}

	var bestLabels []int
	bestInertia := math.Inf(1)

	for run := 0; run < NInit; run++ {
		labels, inertia := kmeansOnce(data, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels
}

func kmeansOnce(data [][]float32, k int, rng *rand.Rand) ([]int, float64) {
	n := len(data)
	dim := len(data[0])

	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = toFloat64(data[perm[i]])
	}

	labels := make([]int, n)
	for iter := 0; iter < MaxIterations; iter++ {
		changed := false
		for i, point := range data {
			best, bestDist := 0, math.Inf(1)
			p := toFloat64(point)
			for c, centroid := range centroids {
				d := sqDist(p, centroid)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				changed = true
			}
			labels[i] = best
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, point := range data {
			lab := labels[i]
			counts[lab]++
			for d := 0; d < dim; d++ {
				sums[lab][d] += float64(point[d])
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				sums[c][d] /= float64(counts[c])
			}
			centroids[c] = sums[c]
		}

		if !changed {
			break
		}
	}

	inertia := 0.0
	for i, point := range data {
		inertia += sqDist(toFloat64(point), centroids[labels[i]])
	}

	return labels, inertia
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
