package abstraction

import (
	rand "math/rand/v2"
	"sort"

	"github.com/lox/holdem-abstraction/internal/equity"
	"github.com/lox/holdem-abstraction/internal/randutil"
)

// Cluster groups equity distributions into k buckets with seeded k-means so
// that similar histograms share a bucket id. Distance is squared Euclidean
// over the raw bin counts; initialization is k-means++ driven by a
// deterministic RNG over the sorted archetype keys, so identical inputs and
// seed always produce identical bucket ids. Abstraction-id stability across
// rebuilds matters because anything trained downstream is keyed by these ids.
func Cluster(dists map[string]equity.Distribution, k, iterations int, seed int64) map[string]int {
	keys := make([]string, 0, len(dists))
	for key := range dists {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return map[string]int{}
	}
	if k >= len(keys) {
		buckets := make(map[string]int, len(keys))
		for i, key := range keys {
			buckets[key] = i
		}
		return buckets
	}

	vectors := make([][]float64, len(keys))
	for i, key := range keys {
		vectors[i] = dists[key]
	}

	rng := randutil.New(seed)
	centroids := initialCentroids(vectors, k, rng)
	assignments := make([]int, len(vectors))

	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(centroids, vectors, assignments)
	}

	buckets := make(map[string]int, len(keys))
	for i, key := range keys {
		buckets[key] = assignments[i]
	}
	return buckets
}

// initialCentroids seeds k-means++ style: the first centroid is uniform, the
// rest are sampled proportionally to squared distance from the nearest
// chosen centroid.
func initialCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, copyVector(vectors[rng.IntN(len(vectors))]))

	weights := make([]float64, len(vectors))
	for len(centroids) < k {
		total := 0.0
		for i, v := range vectors {
			d := sqDistance(v, centroids[0])
			for _, c := range centroids[1:] {
				if cd := sqDistance(v, c); cd < d {
					d = cd
				}
			}
			weights[i] = d
			total += d
		}
		if total == 0 {
			// All remaining points coincide with a centroid; fall back to
			// uniform choice.
			centroids = append(centroids, copyVector(vectors[rng.IntN(len(vectors))]))
			continue
		}
		target := rng.Float64() * total
		chosen := len(vectors) - 1
		acc := 0.0
		for i, w := range weights {
			acc += w
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, copyVector(vectors[chosen]))
	}
	return centroids
}

func nearestCentroid(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := sqDistance(v, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := sqDistance(v, centroids[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// recomputeCentroids replaces each centroid with the mean of its members.
// A centroid that lost every member keeps its previous position.
func recomputeCentroids(centroids [][]float64, vectors [][]float64, assignments []int) {
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, len(centroids[i]))
	}
	for i, v := range vectors {
		c := assignments[i]
		counts[c]++
		for j, x := range v {
			sums[c][j] += x
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range centroids[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func sqDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func copyVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
