package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courierlab/dispatchsim/core/record"
)

// PromSink exposes per-cycle simulation metrics as Prometheus series.
type PromSink struct {
	orders      *prometheus.CounterVec
	proposals   *prometheus.CounterVec
	transitions *prometheus.CounterVec
	cycleCost   prometheus.Histogram
	utilization prometheus.Gauge
	ratio       prometheus.Gauge
	server      *http.Server
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. When addr is non-empty an HTTP server exposing /metrics is
// started on it.
func NewPromSink(addr string) (*PromSink, error) {
	return NewPromSinkWithRegistry(addr, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(addr string, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replay_orders_total",
		Help: "Orders seen per dispatch cycle, by outcome",
	}, []string{"outcome"})
	proposals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replay_proposals_total",
		Help: "Proposals emitted per dispatch cycle, by courier decision",
	}, []string{"decision"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replay_courier_transitions_total",
		Help: "Courier state transitions, by new state",
	}, []string{"state"})
	cycleCost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "replay_cycle_avg_cost",
		Help:    "Average accepted proposal cost per cycle",
		Buckets: prometheus.DefBuckets,
	})
	utilization := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replay_fleet_utilization",
		Help: "Busy share of the fleet after the latest cycle",
	})
	ratio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replay_supply_demand_ratio",
		Help: "Available couriers per waiting order in the latest cycle",
	})

	if err := registerCounterVec(reg, &orders); err != nil {
		return nil, err
	}
	if err := registerCounterVec(reg, &proposals); err != nil {
		return nil, err
	}
	if err := registerCounterVec(reg, &transitions); err != nil {
		return nil, err
	}
	if err := reg.Register(cycleCost); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		cycleCost = are.ExistingCollector.(prometheus.Histogram)
	}
	if err := reg.Register(utilization); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		utilization = are.ExistingCollector.(prometheus.Gauge)
	}
	if err := reg.Register(ratio); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		ratio = are.ExistingCollector.(prometheus.Gauge)
	}

	s := &PromSink{
		orders:      orders,
		proposals:   proposals,
		transitions: transitions,
		cycleCost:   cycleCost,
		utilization: utilization,
		ratio:       ratio,
	}
	if addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		s.server = &http.Server{Addr: addr, Handler: mux}
		go func() { _ = s.server.ListenAndServe() }()
	}
	return s, nil
}

func registerCounterVec(reg prometheus.Registerer, cv **prometheus.CounterVec) error {
	if err := reg.Register(*cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return err
		}
		*cv = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return nil
}

// RecordAssignment is a no-op; prom series are cycle-grained.
func (s *PromSink) RecordAssignment(record.AssignmentRecord) error { return nil }

func (s *PromSink) RecordCycle(r record.CycleRecord) error {
	s.orders.WithLabelValues("assigned").Add(float64(r.OrdersAssigned))
	s.orders.WithLabelValues("unassigned").Add(float64(r.Orders - r.OrdersAssigned))
	s.proposals.WithLabelValues("accepted").Add(float64(r.Accepted))
	s.proposals.WithLabelValues("rejected").Add(float64(r.Rejected))
	if r.Accepted > 0 {
		s.cycleCost.Observe(r.AvgCost)
	}
	s.utilization.Set(r.FleetUtilization)
	s.ratio.Set(r.SupplyDemandRatio)
	return nil
}

func (s *PromSink) RecordTransition(r record.TransitionRecord) error {
	s.transitions.WithLabelValues(r.NewState).Inc()
	return nil
}

// Close shuts the /metrics server down, if one was started.
func (s *PromSink) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
