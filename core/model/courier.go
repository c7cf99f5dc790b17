package model

// CourierState is the availability state tracked for every courier.
type CourierState string

const (
	CourierAvailable CourierState = "AVAILABLE"
	CourierBusy      CourierState = "BUSY"
)

// Courier is a point-in-time view of a courier: its identifier and the
// location it would start the next task from. The authoritative state
// lives in the state store; strategies only ever see these snapshots.
type Courier struct {
	ID       int64      `json:"courier_id"`
	Location Coordinate `json:"location"`
}
