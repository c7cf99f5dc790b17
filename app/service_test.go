package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/core/simerr"
	infrarecord "github.com/courierlab/dispatchsim/infra/record"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.jsonl")
	trace := `{"dispatch_time":1000,"orders":[{"order_id":1,"pickup":{"lat":0,"lng":0},"dropoff":{"lat":1,"lng":1},"arrival_time":900,"actual_courier_id":7}],"couriers":[{"courier_id":7,"location":{"lat":0,"lng":1}}]}
{"dispatch_time":1600,"orders":[],"couriers":[{"courier_id":7,"location":{"lat":0,"lng":1}}]}
`
	require.NoError(t, os.WriteFile(tracePath, []byte(trace), 0o644))

	zero := 0.0
	return &config.Config{
		Simulation: config.SimulationConfig{
			Strategy:             "bipartite",
			CostFunction:         "distance_to_pickup",
			TaskDurationSeconds:  600,
			RejectionProbability: &zero,
			RandomSeed:           42,
		},
		Trace:   config.TraceConfig{Path: tracePath},
		Records: config.RecordsConfig{Backend: config.RecordBackendJSONL, Path: filepath.Join(dir, "records")},
	}
}

func TestService_RunReplay(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	totals, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, totals.Cycles)
	require.Equal(t, 1, totals.Orders)
	require.Equal(t, 1, totals.Accepted)
	require.Equal(t, 1, totals.Matches)

	assignments, err := svc.Store().QueryAssignments(context.Background(), infrarecord.Query{})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.True(t, assignments[0].Match)
}

func TestService_UnknownStrategy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Strategy = "oracle"
	_, err := New(cfg)
	require.ErrorIs(t, err, simerr.ErrConfiguration)
}

func TestService_MissingTrace(t *testing.T) {
	cfg := testConfig(t)
	cfg.Trace.Path = filepath.Join(t.TempDir(), "missing.jsonl")
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	_, err = svc.Run(context.Background())
	require.Error(t, err)
}
