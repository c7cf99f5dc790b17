package strategy

import (
	"math"
	"math/rand"

	"github.com/courierlab/dispatchsim/core/model"
)

type cluster struct {
	center  model.Coordinate
	members []int
}

// kmeans partitions points into k geographic clusters by iterative
// centroid reassignment. Initial centers are drawn from the injected RNG,
// so a fixed seed yields a fixed partition; ties in the nearest-center
// comparison resolve to the lowest cluster index. Requires 0 < k <= len(points).
func kmeans(points []model.Coordinate, k, maxIterations int, rng *rand.Rand) []cluster {
	clusters := make([]cluster, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		clusters[i].center = points[idx]
	}

	assigned := make([]int, len(points))
	for i := range assigned {
		assigned[i] = -1
	}
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := range clusters {
			clusters[i].members = clusters[i].members[:0]
		}
		for p, pt := range points {
			best, bestDist := 0, math.Inf(1)
			for c := range clusters {
				if d := pt.DistanceTo(clusters[c].center); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assigned[p] != best {
				assigned[p] = best
				changed = true
			}
			clusters[best].members = append(clusters[best].members, p)
		}
		if !changed {
			break
		}
		for c := range clusters {
			if len(clusters[c].members) == 0 {
				// Keep the old center; the cluster may pick up points
				// on a later iteration.
				continue
			}
			var sum model.Coordinate
			for _, p := range clusters[c].members {
				sum.Lat += points[p].Lat
				sum.Lng += points[p].Lng
			}
			n := float64(len(clusters[c].members))
			clusters[c].center = model.Coordinate{Lat: sum.Lat / n, Lng: sum.Lng / n}
		}
	}
	return clusters
}
