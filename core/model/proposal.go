package model

// Proposal is one courier-to-order assignment suggested by a strategy for
// a single cycle. Bundle strategies attach several orders to one courier;
// all other strategies produce exactly one order per proposal. Proposals
// are ephemeral: they exist between the strategy and the acceptance model.
type Proposal struct {
	Orders  []Order
	Courier Courier
	Cost    float64
	// Rank is the 1-based position of the proposal when the cycle's
	// proposals are ordered by ascending cost.
	Rank int
}

// Size returns the number of orders carried by the proposal.
func (p Proposal) Size() int { return len(p.Orders) }

// DropoffCentroid returns the mean dropoff location of the member orders.
// For single-order proposals this is just the order's dropoff.
func (p Proposal) DropoffCentroid() Coordinate {
	if len(p.Orders) == 0 {
		return Coordinate{}
	}
	var c Coordinate
	for _, o := range p.Orders {
		c.Lat += o.Dropoff.Lat
		c.Lng += o.Dropoff.Lng
	}
	n := float64(len(p.Orders))
	return Coordinate{Lat: c.Lat / n, Lng: c.Lng / n}
}
