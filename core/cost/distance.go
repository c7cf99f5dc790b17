package cost

import "github.com/courierlab/dispatchsim/core/model"

// DistanceToPickup scores a pairing by the Euclidean distance from the
// courier's current position to the order's pickup location. It ignores
// the delivery leg entirely, which makes it the fastest baseline.
type DistanceToPickup struct{}

func (DistanceToPickup) Cost(courierPos model.Coordinate, order model.Order) float64 {
	return courierPos.DistanceTo(order.Pickup)
}

func (DistanceToPickup) Name() string { return "distance_to_pickup" }

func (DistanceToPickup) Description() string {
	return "minimizes Euclidean distance from courier to restaurant pickup location"
}
