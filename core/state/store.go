// Package state owns the per-courier availability table for a single
// simulation run. Time advances in discrete jumps equal to the dispatch
// interval, so availability is recomputed lazily at each cycle rather
// than scheduled with timers; this keeps runs deterministic and replayable.
package state

import (
	"fmt"
	"sort"

	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// Reason explains a courier state transition in the timeline log.
type Reason string

const (
	ReasonInitialized       Reason = "initialized"
	ReasonAssignedOrder     Reason = "assigned_order"
	ReasonCompletedDelivery Reason = "completed_delivery"
)

// Observer receives every courier state transition as it happens. The
// orchestrator wires it to the timeline record stream.
type Observer interface {
	ObserveTransition(ts int64, courierID int64, newState model.CourierState, reason Reason)
}

type courier struct {
	state              model.CourierState
	becomesAvailableAt int64
	location           model.Coordinate
}

// Store holds the state of every courier for the duration of one run.
// Couriers are created at initialization and never destroyed; all
// mutation goes through Available and MarkBusy. The store is owned by a
// single run and must not be shared across runs: courier ids are only
// unique within one day's trace.
type Store struct {
	couriers map[int64]*courier
	// ids fixes iteration order so Available output is deterministic.
	ids []int64
	obs Observer
}

// New seeds the store from the first cycle's courier snapshot. Every
// courier starts AVAILABLE at its reported location; the observer sees an
// "initialized" transition per courier at seedTime.
func New(seedTime int64, snapshot []model.Courier, obs Observer) (*Store, error) {
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("state: initial courier snapshot is empty: %w", simerr.ErrConfiguration)
	}
	s := &Store{couriers: make(map[int64]*courier, len(snapshot)), obs: obs}
	for _, c := range snapshot {
		if _, ok := s.couriers[c.ID]; ok {
			continue
		}
		s.couriers[c.ID] = &courier{state: model.CourierAvailable, location: c.Location}
		s.ids = append(s.ids, c.ID)
	}
	sort.Slice(s.ids, func(i, j int) bool { return s.ids[i] < s.ids[j] })
	if obs != nil {
		for _, id := range s.ids {
			obs.ObserveTransition(seedTime, id, model.CourierAvailable, ReasonInitialized)
		}
	}
	return s, nil
}

// Available releases every courier whose busy period has ended by now and
// returns the AVAILABLE set, ordered by courier id. This is the only
// BUSY-to-AVAILABLE transition point; calling it again with the same time
// and no intervening MarkBusy returns an identical result.
func (s *Store) Available(now int64) []model.Courier {
	out := make([]model.Courier, 0, len(s.ids))
	for _, id := range s.ids {
		c := s.couriers[id]
		if c.state == model.CourierBusy && c.becomesAvailableAt <= now {
			c.state = model.CourierAvailable
			if s.obs != nil {
				s.obs.ObserveTransition(now, id, model.CourierAvailable, ReasonCompletedDelivery)
			}
		}
		if c.state == model.CourierAvailable {
			out = append(out, model.Courier{ID: id, Location: c.location})
		}
	}
	return out
}

// MarkBusy records an accepted assignment: the courier turns BUSY until
// dispatchTime+taskDuration and is relocated to the task destination.
func (s *Store) MarkBusy(id int64, dispatchTime int64, destination model.Coordinate, taskDuration int64) error {
	c, ok := s.couriers[id]
	if !ok {
		return fmt.Errorf("state: courier %d at t=%d: %w", id, dispatchTime, simerr.ErrNotFound)
	}
	c.state = model.CourierBusy
	c.becomesAvailableAt = dispatchTime + taskDuration
	c.location = destination
	if s.obs != nil {
		s.obs.ObserveTransition(dispatchTime, id, model.CourierBusy, ReasonAssignedOrder)
	}
	return nil
}

// Summary reports fleet counts as of now. It never mutates state, so a
// courier whose busy period just elapsed counts as available here even
// before the next Available call flips it.
type Summary struct {
	Total       int
	Available   int
	Busy        int
	Utilization float64
}

func (s *Store) Summary(now int64) Summary {
	sum := Summary{Total: len(s.ids)}
	for _, id := range s.ids {
		c := s.couriers[id]
		if c.state == model.CourierAvailable || c.becomesAvailableAt <= now {
			sum.Available++
		} else {
			sum.Busy++
		}
	}
	if sum.Total > 0 {
		sum.Utilization = float64(sum.Busy) / float64(sum.Total)
	}
	return sum
}
