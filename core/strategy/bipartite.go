package strategy

import (
	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/model"
)

// Bipartite is the tier-1 strategy: it builds the full order-by-courier
// cost matrix and solves it as a minimum-cost bipartite matching, so each
// order gets at most one courier, each courier at most one order and the
// total cost across the cycle is optimal. When the sides are unequal the
// smaller side is fully matched and the excess waits.
type Bipartite struct{}

func (Bipartite) Name() string { return "bipartite" }

func (Bipartite) Propose(orders []model.Order, couriers []model.Courier, costFn cost.Function) ([]model.Proposal, error) {
	if len(orders) == 0 || len(couriers) == 0 {
		return nil, nil
	}
	m, err := buildCostMatrix(orders, couriers, costFn)
	if err != nil {
		return nil, err
	}
	match, err := solveAssignment(m)
	if err != nil {
		return nil, err
	}
	proposals := make([]model.Proposal, 0, len(match))
	for i, j := range match {
		if j < 0 {
			continue
		}
		proposals = append(proposals, model.Proposal{
			Orders:  []model.Order{orders[i]},
			Courier: couriers[j],
			Cost:    m.At(i, j),
		})
	}
	return finalize(proposals), nil
}
