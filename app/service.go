// Package app assembles a replay run from configuration: strategy, cost
// function, acceptance model, record store, metrics sinks and the trace
// source, wired into a runner.
package app

import (
	"context"
	"fmt"

	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/core/acceptance"
	"github.com/courierlab/dispatchsim/core/cost"
	"github.com/courierlab/dispatchsim/core/factory"
	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/core/sim"
	"github.com/courierlab/dispatchsim/core/strategy"
	infralogger "github.com/courierlab/dispatchsim/infra/logger"
	inframetrics "github.com/courierlab/dispatchsim/infra/metrics"
	infrarecord "github.com/courierlab/dispatchsim/infra/record"
	"github.com/courierlab/dispatchsim/infra/trace"
)

// Service owns one replay run and its attached sinks.
type Service struct {
	runner    *sim.Runner
	store     infrarecord.Store
	metrics   record.Recorder
	tracePath string
	log       infralogger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")

	costFn, err := cost.New(cfg.Simulation.CostFunction)
	if err != nil {
		return nil, fmt.Errorf("cost function: %w", err)
	}

	strat, err := strategy.New(factory.ModuleConfig{
		Type: cfg.Simulation.Strategy,
		Conf: map[string]any{
			"seed":           cfg.Simulation.RandomSeed,
			"max_iterations": cfg.Simulation.KMeansMaxIterations,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}

	accept, err := acceptance.New(*cfg.Simulation.RejectionProbability, cfg.Simulation.RandomSeed)
	if err != nil {
		return nil, fmt.Errorf("acceptance model: %w", err)
	}

	store, err := infrarecord.NewStore(cfg.Records)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}

	sink, err := inframetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	runner, err := sim.New(sim.Config{
		TaskDurationSeconds: cfg.Simulation.TaskDurationSeconds,
		RunID:               record.NewRunID(),
	}, strat, costFn, accept, record.NewMulti(store, sink), infralogger.New("runner"))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("runner: %w", err)
	}

	return &Service{
		runner:    runner,
		store:     store,
		metrics:   sink,
		tracePath: cfg.Trace.Path,
		log:       logg,
	}, nil
}

// Run replays the configured trace and returns the run totals.
func (s *Service) Run(ctx context.Context) (*sim.Totals, error) {
	src, err := trace.Open(s.tracePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	totals, err := s.runner.Run(ctx, src)
	if err != nil {
		return nil, err
	}
	s.log.Infof("replay finished: %d cycles, %d orders, %d accepted",
		totals.Cycles, totals.Orders, totals.Accepted)
	return totals, nil
}

// Store exposes the record store for post-run queries.
func (s *Service) Store() infrarecord.Store { return s.store }

// Close flushes and releases the attached sinks.
func (s *Service) Close() error {
	sinks := []record.Recorder{s.metrics}
	if m, ok := s.metrics.(*record.MultiRecorder); ok {
		sinks = m.Recorders
	}
	for _, sink := range sinks {
		if c, ok := sink.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				s.log.Errorf("metrics close: %v", err)
			}
		}
	}
	return s.store.Close()
}
