package strategy

import (
	"math/rand"

	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/model"
)

const defaultKMeansIterations = 25

type clusterBundleConf struct {
	Seed          int64 `json:"seed"`
	MaxIterations int   `json:"max_iterations"`
}

// ClusterBundle is the tier-2 strategy: waiting orders are grouped into
// K = min(couriers, orders) pickup clusters, and couriers are matched
// optimally against the cluster centroids. A matched courier receives the
// whole cluster as one bundle proposal, so its task duration scales with
// the bundle size while the cycle still holds one proposal per courier.
type ClusterBundle struct {
	seed          int64
	maxIterations int
}

// NewClusterBundle returns the strategy with the clustering seed fixed so
// identical inputs reproduce identical bundles.
func NewClusterBundle(seed int64, maxIterations int) ClusterBundle {
	if maxIterations <= 0 {
		maxIterations = defaultKMeansIterations
	}
	return ClusterBundle{seed: seed, maxIterations: maxIterations}
}

func (ClusterBundle) Name() string { return "cluster_bundle" }

func (s ClusterBundle) Propose(orders []model.Order, couriers []model.Courier, costFn cost.Function) ([]model.Proposal, error) {
	k := len(couriers)
	if len(orders) < k {
		k = len(orders)
	}
	if k == 0 {
		return nil, nil
	}

	points := make([]model.Coordinate, len(orders))
	for i, o := range orders {
		points[i] = o.Pickup
	}
	rng := rand.New(rand.NewSource(s.seed))
	clusters := kmeans(points, k, s.maxIterations, rng)

	// Empty clusters propose nothing; the centroid matrix only carries
	// clusters that actually hold orders.
	occupied := clusters[:0]
	for _, c := range clusters {
		if len(c.members) > 0 {
			occupied = append(occupied, c)
		}
	}

	// The cost function sees each centroid as a synthetic pickup, so the
	// bundle cost is the courier-to-centroid distance under the same
	// metric the 1:1 strategies use.
	centroids := make([]model.Order, len(occupied))
	for i, c := range occupied {
		centroids[i] = model.Order{Pickup: c.center}
	}
	m, err := buildCostMatrix(centroids, couriers, costFn)
	if err != nil {
		return nil, err
	}
	match, err := solveAssignment(m)
	if err != nil {
		return nil, err
	}

	proposals := make([]model.Proposal, 0, len(occupied))
	for i, j := range match {
		if j < 0 {
			continue
		}
		members := make([]model.Order, len(occupied[i].members))
		for n, p := range occupied[i].members {
			members[n] = orders[p]
		}
		proposals = append(proposals, model.Proposal{
			Orders:  members,
			Courier: couriers[j],
			Cost:    m.At(i, j),
		})
	}
	return finalize(proposals), nil
}
