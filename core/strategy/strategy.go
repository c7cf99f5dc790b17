// Package strategy holds the pluggable assignment algorithms. A strategy
// turns one cycle's waiting orders and available couriers into a ranked
// list of proposals; it never mutates courier state and never pairs a
// courier with more than one proposal in the same cycle.
package strategy

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/factory"
	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// Strategy proposes courier-order assignments for one dispatch cycle.
// Proposals come back sorted by ascending cost with 1-based ranks.
type Strategy interface {
	Name() string
	Propose(orders []model.Order, couriers []model.Courier, costFn cost.Function) ([]model.Proposal, error)
}

var registry = factory.NewRegistry[Strategy]()

// Register adds a strategy factory under the given name.
func Register(name string, f factory.Factory[Strategy]) error {
	return registry.Register(name, f)
}

// New builds the strategy selected by configuration.
func New(cfg factory.ModuleConfig) (Strategy, error) {
	s, err := registry.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", cfg.Type, simerr.ErrConfiguration)
	}
	return s, nil
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(Register("bipartite", func(map[string]any) (Strategy, error) {
		return Bipartite{}, nil
	}))
	must(Register("cluster_bundle", func(conf map[string]any) (Strategy, error) {
		var c clusterBundleConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewClusterBundle(c.Seed, c.MaxIterations), nil
	}))
	must(Register("greedy_online", func(map[string]any) (Strategy, error) {
		return GreedyOnline{}, nil
	}))
}

// buildCostMatrix evaluates the cost function for every order/courier pair
// and rejects non-finite or negative entries before they can reach the
// solver.
func buildCostMatrix(orders []model.Order, couriers []model.Courier, costFn cost.Function) (*mat.Dense, error) {
	m := mat.NewDense(len(orders), len(couriers), nil)
	for i, o := range orders {
		for j, c := range couriers {
			v := costFn.Cost(c.Location, o)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("strategy: cost %v for order %d / courier %d: %w", v, o.ID, c.ID, simerr.ErrSolver)
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// finalize orders proposals by ascending cost (ties broken by courier id
// for reproducibility) and stamps the 1-based ranks.
func finalize(proposals []model.Proposal) []model.Proposal {
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].Cost != proposals[j].Cost {
			return proposals[i].Cost < proposals[j].Cost
		}
		return proposals[i].Courier.ID < proposals[j].Courier.ID
	})
	for i := range proposals {
		proposals[i].Rank = i + 1
	}
	return proposals
}
