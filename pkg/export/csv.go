// Package export renders record streams as CSV for spreadsheet and
// notebook analysis. Column layouts follow the evaluation tooling that
// consumes them.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/courierlab/dispatchsim/core/record"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteAssignmentsCSV writes the assignment log. Courier, cost and rank
// columns are left empty for orders that went unproposed.
func WriteAssignmentsCSV(w io.Writer, recs []record.AssignmentRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"dispatch_time", "order_id",
		"assigned_courier_id", "cost", "courier_rank_by_cost",
		"is_assigned", "was_accepted",
		"actual_assigned_courier_id", "is_match_with_actual",
		"num_orders_in_batch", "num_couriers_in_pool",
		"order_pickup_lat", "order_pickup_lng",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range recs {
		courierID, cost, rank := "", "", ""
		if r.Proposed {
			courierID = strconv.FormatInt(r.CourierID, 10)
			cost = formatFloat(r.Cost)
			rank = strconv.Itoa(r.Rank)
		}
		row := []string{
			strconv.FormatInt(r.DispatchTime, 10),
			strconv.FormatInt(r.OrderID, 10),
			courierID, cost, rank,
			strconv.FormatBool(r.Proposed),
			strconv.FormatBool(r.Accepted),
			strconv.FormatInt(r.ActualCourierID, 10),
			strconv.FormatBool(r.Match),
			strconv.Itoa(r.BatchOrders),
			strconv.Itoa(r.BatchCouriers),
			formatFloat(r.PickupLat),
			formatFloat(r.PickupLng),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCyclesCSV writes the cycle summary log.
func WriteCyclesCSV(w io.Writer, recs []record.CycleRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"dispatch_time",
		"num_orders_in_batch", "num_available_couriers", "supply_demand_ratio",
		"num_proposed_assignments", "num_accepted_assignments", "num_rejections",
		"assignment_rate", "acceptance_rate",
		"total_cost_of_cycle", "avg_cost_per_assignment",
		"agreement_rate_with_actual",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			strconv.FormatInt(r.DispatchTime, 10),
			strconv.Itoa(r.Orders),
			strconv.Itoa(r.Couriers),
			formatFloat(r.SupplyDemandRatio),
			strconv.Itoa(r.Proposed),
			strconv.Itoa(r.Accepted),
			strconv.Itoa(r.Rejected),
			formatFloat(r.AssignmentRate),
			formatFloat(r.AcceptanceRate),
			formatFloat(r.TotalCost),
			formatFloat(r.AvgCost),
			formatFloat(r.AgreementRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransitionsCSV writes the courier timeline log.
func WriteTransitionsCSV(w io.Writer, recs []record.TransitionRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "courier_id", "event_type", "new_state", "reason"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			strconv.FormatInt(r.Timestamp, 10),
			strconv.FormatInt(r.CourierID, 10),
			r.EventType,
			r.NewState,
			r.Reason,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
