package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/courierlab/dispatchsim/core/record"
)

func TestPromSink_RecordCycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry("", reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	if err := sink.RecordCycle(record.CycleRecord{
		Orders:            3,
		Couriers:          2,
		OrdersAssigned:    2,
		Proposed:          2,
		Accepted:          2,
		Rejected:          0,
		AvgCost:           1.5,
		FleetUtilization:  0.5,
		SupplyDemandRatio: 0.667,
	}); err != nil {
		t.Fatalf("record cycle: %v", err)
	}

	expected := `
# HELP replay_orders_total Orders seen per dispatch cycle, by outcome
# TYPE replay_orders_total counter
replay_orders_total{outcome="assigned"} 2
replay_orders_total{outcome="unassigned"} 1
`
	if err := testutil.CollectAndCompare(sink.orders, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected orders metric: %v", err)
	}
	if v := testutil.ToFloat64(sink.utilization); v != 0.5 {
		t.Errorf("utilization = %v, want 0.5", v)
	}
	if c := testutil.CollectAndCount(sink.cycleCost); c == 0 {
		t.Error("expected cycle cost histogram to collect")
	}
}

func TestPromSink_RecordTransition(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry("", reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := sink.RecordTransition(record.TransitionRecord{NewState: "BUSY"}); err != nil {
			t.Fatalf("record transition: %v", err)
		}
	}
	if v := testutil.ToFloat64(sink.transitions.WithLabelValues("BUSY")); v != 3 {
		t.Errorf("transitions = %v, want 3", v)
	}
}

func TestPromSink_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry("", reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSinkWithRegistry("", reg); err != nil {
		t.Fatalf("second sink should reuse collectors: %v", err)
	}
}
