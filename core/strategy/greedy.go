package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// GreedyOnline is the tier-3 baseline: orders are visited in arrival
// order and each takes the closest courier not already claimed earlier in
// the cycle, until couriers run out. Intentionally myopic; it exists as
// the lower bound the optimal strategies are measured against.
type GreedyOnline struct{}

func (GreedyOnline) Name() string { return "greedy_online" }

func (GreedyOnline) Propose(orders []model.Order, couriers []model.Courier, costFn cost.Function) ([]model.Proposal, error) {
	if len(orders) == 0 || len(couriers) == 0 {
		return nil, nil
	}

	byArrival := make([]model.Order, len(orders))
	copy(byArrival, orders)
	sort.SliceStable(byArrival, func(i, j int) bool {
		if byArrival[i].ArrivalTime != byArrival[j].ArrivalTime {
			return byArrival[i].ArrivalTime < byArrival[j].ArrivalTime
		}
		return byArrival[i].ID < byArrival[j].ID
	})

	claimed := make([]bool, len(couriers))
	remaining := len(couriers)
	proposals := make([]model.Proposal, 0, min(len(orders), len(couriers)))
	for _, o := range byArrival {
		if remaining == 0 {
			break
		}
		best, bestCost := -1, math.Inf(1)
		for j, c := range couriers {
			if claimed[j] {
				continue
			}
			v := costFn.Cost(c.Location, o)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("strategy: cost %v for order %d / courier %d: %w", v, o.ID, c.ID, simerr.ErrSolver)
			}
			if v < bestCost {
				best, bestCost = j, v
			}
		}
		claimed[best] = true
		remaining--
		proposals = append(proposals, model.Proposal{
			Orders:  []model.Order{o},
			Courier: couriers[best],
			Cost:    bestCost,
		})
	}
	return finalize(proposals), nil
}
