// Package record defines the structured outputs of a replay run: one row
// per waiting order per cycle, one summary per cycle, and one row per
// courier state transition. Downstream evaluation joins these against the
// platform's historical assignments, so the streams must be complete: an
// order that never shows up in the assignment log is a defect.
package record

import "github.com/google/uuid"

// EventStateChange is the event type stamped on transition records.
const EventStateChange = "state_change"

// AssignmentRecord documents what happened to one waiting order in one
// dispatch cycle, whether or not it was proposed a courier.
type AssignmentRecord struct {
	RunID        string `json:"run_id"`
	DispatchTime int64  `json:"dispatch_time"`
	OrderID      int64  `json:"order_id"`
	// CourierID is the proposed courier, zero when the order went
	// unproposed this cycle.
	CourierID int64   `json:"courier_id,omitempty"`
	Cost      float64 `json:"cost"`
	// Rank is the proposal's 1-based position by ascending cost within
	// the cycle; zero for unproposed orders.
	Rank       int  `json:"rank,omitempty"`
	BundleSize int  `json:"bundle_size,omitempty"`
	Proposed   bool `json:"proposed"`
	Accepted   bool `json:"accepted"`
	// ActualCourierID is the ground-truth historical assignment.
	ActualCourierID int64 `json:"actual_courier_id,omitempty"`
	// Match is true when the accepted proposal agrees with ground truth.
	Match         bool    `json:"match"`
	BatchOrders   int     `json:"batch_orders"`
	BatchCouriers int     `json:"batch_couriers"`
	WaitSeconds   int64   `json:"wait_seconds"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLng     float64 `json:"pickup_lng"`
}

// CycleRecord aggregates one dispatch cycle. Proposal counts are
// bundle-level (a bundle is one proposal); OrdersAssigned counts the
// orders covered by accepted proposals so 1:1 strategies keep
// AssignmentRate = accepted/orders.
type CycleRecord struct {
	RunID             string  `json:"run_id"`
	DispatchTime      int64   `json:"dispatch_time"`
	Orders            int     `json:"orders"`
	Couriers          int     `json:"couriers"`
	SupplyDemandRatio float64 `json:"supply_demand_ratio"`
	Proposed          int     `json:"proposed"`
	Accepted          int     `json:"accepted"`
	Rejected          int     `json:"rejected"`
	OrdersAssigned    int     `json:"orders_assigned"`
	AssignmentRate    float64 `json:"assignment_rate"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
	TotalCost         float64 `json:"total_cost"`
	AvgCost           float64 `json:"avg_cost"`
	AgreementRate     float64 `json:"agreement_rate"`
	FleetUtilization  float64 `json:"fleet_utilization"`
}

// TransitionRecord is one courier state change in the timeline log.
type TransitionRecord struct {
	RunID     string `json:"run_id"`
	Timestamp int64  `json:"timestamp"`
	CourierID int64  `json:"courier_id"`
	EventType string `json:"event_type"`
	NewState  string `json:"new_state"`
	Reason    string `json:"reason"`
}

// Recorder consumes the three record streams of a run. Implementations
// must not drop records; a failing sink aborts the run.
type Recorder interface {
	RecordAssignment(AssignmentRecord) error
	RecordCycle(CycleRecord) error
	RecordTransition(TransitionRecord) error
}

// NewRunID mints the identifier stamped on every record of a run.
func NewRunID() string { return uuid.NewString() }
