package model

import "math"

// Coordinate is a point on the shifted planar grid used by the historical
// traces. Distances between coordinates are Euclidean, in grid units.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceTo returns the Euclidean distance to o in grid units.
func (c Coordinate) DistanceTo(o Coordinate) float64 {
	return math.Hypot(c.Lat-o.Lat, c.Lng-o.Lng)
}

// Order is one waiting order from a dispatch cycle snapshot. Orders are
// immutable once loaded and live for a single cycle.
type Order struct {
	ID      int64      `json:"order_id"`
	Pickup  Coordinate `json:"pickup"`
	Dropoff Coordinate `json:"dropoff"`
	// ArrivalTime is the unix second the order was pushed to the platform.
	ArrivalTime int64 `json:"arrival_time"`
	// ActualCourierID is the courier the production system assigned
	// historically, or zero when the trace has no record of one.
	ActualCourierID int64 `json:"actual_courier_id,omitempty"`
}

// CycleSnapshot is the pre-loaded input for one dispatch cycle.
type CycleSnapshot struct {
	DispatchTime int64     `json:"dispatch_time"`
	Orders       []Order   `json:"orders"`
	Couriers     []Courier `json:"couriers"`
}
