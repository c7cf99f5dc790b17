// Package sim drives the discrete-time replay: it walks the historical
// dispatch cycles in order, wires the courier state store, the assignment
// strategy and the acceptance model together, and emits the assignment,
// cycle and timeline record streams. A run is single-threaded by design;
// the state store is owned by one runner and never shared.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/courierlab/dispatchsim/core/acceptance"
	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/logger"
	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/core/simerr"
	"github.com/courierlab/dispatchsim/core/state"
	"github.com/courierlab/dispatchsim/core/strategy"
)

// Config carries the calibration constants of a run.
type Config struct {
	// TaskDurationSeconds is how long one accepted order occupies a
	// courier; bundles occupy linearly per member order.
	TaskDurationSeconds int64
	// RunID is stamped on every emitted record.
	RunID string
}

// Totals aggregates a completed run.
type Totals struct {
	Cycles    int
	Orders    int
	Proposed  int
	Accepted  int
	Rejected  int
	Matches   int
	TotalCost float64
}

// Runner replays one historical trace under one strategy.
type Runner struct {
	cfg    Config
	strat  strategy.Strategy
	costFn cost.Function
	accept *acceptance.Model
	rec    record.Recorder
	log    logger.Logger

	store *state.Store
}

// New validates the wiring and returns a runner. The courier state store
// is created lazily from the first cycle's snapshot.
func New(cfg Config, strat strategy.Strategy, costFn cost.Function, accept *acceptance.Model, rec record.Recorder, log logger.Logger) (*Runner, error) {
	if strat == nil || costFn == nil || accept == nil || rec == nil || log == nil {
		return nil, fmt.Errorf("sim: nil collaborator passed to New: %w", simerr.ErrConfiguration)
	}
	if cfg.TaskDurationSeconds <= 0 {
		return nil, fmt.Errorf("sim: task duration %d must be positive: %w", cfg.TaskDurationSeconds, simerr.ErrConfiguration)
	}
	if cfg.RunID == "" {
		cfg.RunID = record.NewRunID()
	}
	return &Runner{cfg: cfg, strat: strat, costFn: costFn, accept: accept, rec: rec, log: log}, nil
}

// transitionSink adapts the store's observer callback onto the record
// stream. Write failures surface at the end of the cycle.
type transitionSink struct {
	runID string
	rec   record.Recorder
	err   error
}

func (t *transitionSink) ObserveTransition(ts int64, id int64, st model.CourierState, reason state.Reason) {
	if t.err != nil {
		return
	}
	t.err = t.rec.RecordTransition(record.TransitionRecord{
		RunID:     t.runID,
		Timestamp: ts,
		CourierID: id,
		EventType: record.EventStateChange,
		NewState:  string(st),
		Reason:    string(reason),
	})
}

// Run processes every cycle the source yields and returns the run totals.
// Any snapshot, strategy, state or recorder failure aborts the run with
// the cycle's dispatch time attached; there are no partial skips.
func (r *Runner) Run(ctx context.Context, src Source) (*Totals, error) {
	r.log.Infof("run %s: strategy=%s cost=%s task_duration=%ds p_reject=%.4f",
		r.cfg.RunID, r.strat.Name(), r.costFn.Name(), r.cfg.TaskDurationSeconds, r.accept.RejectionProbability())

	sink := &transitionSink{runID: r.cfg.RunID, rec: r.rec}
	totals := &Totals{}
	for cycle := 0; ; cycle++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snap, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sim: load snapshot for cycle %d: %w", cycle, err)
		}

		if r.store == nil {
			r.store, err = state.New(snap.DispatchTime, snap.Couriers, sink)
			if err != nil {
				return nil, err
			}
		}
		if err := r.runCycle(snap, sink, totals); err != nil {
			return nil, fmt.Errorf("sim: cycle %d (t=%d): %w", cycle, snap.DispatchTime, err)
		}
		totals.Cycles++
	}

	r.log.Infof("run %s complete: cycles=%d orders=%d proposed=%d accepted=%d rejected=%d matches=%d total_cost=%.1f",
		r.cfg.RunID, totals.Cycles, totals.Orders, totals.Proposed, totals.Accepted, totals.Rejected, totals.Matches, totals.TotalCost)
	return totals, nil
}

type resolution struct {
	proposal model.Proposal
	accepted bool
}

func (r *Runner) runCycle(snap *model.CycleSnapshot, sink *transitionSink, totals *Totals) error {
	now := snap.DispatchTime
	available := r.store.Available(now)

	proposals, err := r.strat.Propose(snap.Orders, available, r.costFn)
	if err != nil {
		return err
	}

	// Resolve acceptance in rank order so the draw sequence is a pure
	// function of seed and inputs.
	byOrder := make(map[int64]resolution, len(snap.Orders))
	accepted, rejected, ordersAssigned := 0, 0, 0
	cycleCost := 0.0
	for _, p := range proposals {
		ok := r.accept.Resolve(p)
		if ok {
			accepted++
			ordersAssigned += p.Size()
			cycleCost += p.Cost
			duration := r.cfg.TaskDurationSeconds * int64(p.Size())
			if err := r.store.MarkBusy(p.Courier.ID, now, p.DropoffCentroid(), duration); err != nil {
				return err
			}
		} else {
			rejected++
		}
		for _, o := range p.Orders {
			byOrder[o.ID] = resolution{proposal: p, accepted: ok}
		}
	}

	// Every waiting order gets a row, proposed or not; silently dropping
	// one would corrupt the downstream join against ground truth.
	matches := 0
	for _, o := range snap.Orders {
		rec := record.AssignmentRecord{
			RunID:           r.cfg.RunID,
			DispatchTime:    now,
			OrderID:         o.ID,
			ActualCourierID: o.ActualCourierID,
			BatchOrders:     len(snap.Orders),
			BatchCouriers:   len(available),
			WaitSeconds:     now - o.ArrivalTime,
			PickupLat:       o.Pickup.Lat,
			PickupLng:       o.Pickup.Lng,
		}
		if res, ok := byOrder[o.ID]; ok {
			rec.Proposed = true
			rec.CourierID = res.proposal.Courier.ID
			rec.Cost = res.proposal.Cost
			rec.Rank = res.proposal.Rank
			rec.BundleSize = res.proposal.Size()
			rec.Accepted = res.accepted
			rec.Match = res.accepted && o.ActualCourierID != 0 && res.proposal.Courier.ID == o.ActualCourierID
			if rec.Match {
				matches++
			}
		}
		if err := r.rec.RecordAssignment(rec); err != nil {
			return fmt.Errorf("record assignment for order %d: %w", o.ID, err)
		}
	}
	if sink.err != nil {
		return fmt.Errorf("record transitions: %w", sink.err)
	}

	summary := r.store.Summary(now)
	cr := record.CycleRecord{
		RunID:            r.cfg.RunID,
		DispatchTime:     now,
		Orders:           len(snap.Orders),
		Couriers:         len(available),
		Proposed:         len(proposals),
		Accepted:         accepted,
		Rejected:         rejected,
		OrdersAssigned:   ordersAssigned,
		TotalCost:        cycleCost,
		FleetUtilization: summary.Utilization,
	}
	if cr.Orders > 0 {
		cr.SupplyDemandRatio = float64(cr.Couriers) / float64(cr.Orders)
		cr.AssignmentRate = float64(ordersAssigned) / float64(cr.Orders)
		cr.AgreementRate = float64(matches) / float64(cr.Orders)
	}
	if cr.Proposed > 0 {
		cr.AcceptanceRate = float64(accepted) / float64(cr.Proposed)
	}
	if accepted > 0 {
		cr.AvgCost = cycleCost / float64(accepted)
	}
	if err := r.rec.RecordCycle(cr); err != nil {
		return fmt.Errorf("record cycle summary: %w", err)
	}

	r.log.Debugw("cycle complete", map[string]any{
		"dispatch_time": now,
		"orders":        cr.Orders,
		"couriers":      cr.Couriers,
		"proposed":      cr.Proposed,
		"accepted":      cr.Accepted,
		"utilization":   summary.Utilization,
	})

	totals.Orders += cr.Orders
	totals.Proposed += cr.Proposed
	totals.Accepted += accepted
	totals.Rejected += rejected
	totals.Matches += matches
	totals.TotalCost += cycleCost
	return nil
}
