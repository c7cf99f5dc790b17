package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courierlab/dispatchsim/core/record"
)

func TestWriteAssignmentsCSV(t *testing.T) {
	recs := []record.AssignmentRecord{
		{
			DispatchTime: 1000, OrderID: 1, CourierID: 7, Cost: 2.5, Rank: 1,
			Proposed: true, Accepted: true, ActualCourierID: 7, Match: true,
			BatchOrders: 2, BatchCouriers: 1, PickupLat: 1.5, PickupLng: -2,
		},
		{
			DispatchTime: 1000, OrderID: 2,
			Proposed: false, ActualCourierID: 9,
			BatchOrders: 2, BatchCouriers: 1, PickupLat: 3, PickupLng: 4,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssignmentsCSV(&buf, recs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t,
		"dispatch_time,order_id,assigned_courier_id,cost,courier_rank_by_cost,"+
			"is_assigned,was_accepted,actual_assigned_courier_id,is_match_with_actual,"+
			"num_orders_in_batch,num_couriers_in_pool,order_pickup_lat,order_pickup_lng",
		lines[0])
	require.Equal(t, "1000,1,7,2.5,1,true,true,7,true,2,1,1.5,-2", lines[1])
	// Unproposed orders keep courier, cost and rank empty.
	require.Equal(t, "1000,2,,,,false,false,9,false,2,1,3,4", lines[2])
}

func TestWriteCyclesCSV(t *testing.T) {
	recs := []record.CycleRecord{{
		DispatchTime: 1000, Orders: 2, Couriers: 1, SupplyDemandRatio: 0.5,
		Proposed: 1, Accepted: 1, Rejected: 0,
		AssignmentRate: 0.5, AcceptanceRate: 1,
		TotalCost: 2.5, AvgCost: 2.5, AgreementRate: 1,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCyclesCSV(&buf, recs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "1000,2,1,0.5,1,1,0,0.5,1,2.5,2.5,1", lines[1])
}

func TestWriteTransitionsCSV(t *testing.T) {
	recs := []record.TransitionRecord{{
		Timestamp: 1000, CourierID: 7,
		EventType: record.EventStateChange, NewState: "BUSY", Reason: "assigned_order",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteTransitionsCSV(&buf, recs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "timestamp,courier_id,event_type,new_state,reason", lines[0])
	require.Equal(t, "1000,7,state_change,BUSY,assigned_order", lines[1])
}
