package record

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/core/simerr"
)

func seedStore(t *testing.T, s Store) {
	t.Helper()
	require.NoError(t, s.RecordAssignment(record.AssignmentRecord{
		RunID: "r", DispatchTime: 100, OrderID: 1, CourierID: 10,
		Cost: 2.5, Rank: 1, Proposed: true, Accepted: true,
	}))
	require.NoError(t, s.RecordAssignment(record.AssignmentRecord{
		RunID: "r", DispatchTime: 200, OrderID: 2, ActualCourierID: 11,
		Proposed: false,
	}))
	require.NoError(t, s.RecordCycle(record.CycleRecord{
		RunID: "r", DispatchTime: 100, Orders: 1, Couriers: 2,
	}))
	require.NoError(t, s.RecordCycle(record.CycleRecord{
		RunID: "r", DispatchTime: 200, Orders: 1, Couriers: 0,
	}))
	require.NoError(t, s.RecordTransition(record.TransitionRecord{
		RunID: "r", Timestamp: 100, CourierID: 10,
		EventType: record.EventStateChange, NewState: "BUSY", Reason: "assigned_order",
	}))
	require.NoError(t, s.RecordTransition(record.TransitionRecord{
		RunID: "r", Timestamp: 300, CourierID: 11,
		EventType: record.EventStateChange, NewState: "AVAILABLE", Reason: "completed_delivery",
	}))
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	jsonl, err := NewJSONLStore(t.TempDir())
	require.NoError(t, err)
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	return map[string]Store{"jsonl": jsonl, "sqlite": sqlite}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seedStore(t, s)

			assignments, err := s.QueryAssignments(ctx, Query{})
			require.NoError(t, err)
			require.Len(t, assignments, 2)
			require.Equal(t, int64(1), assignments[0].OrderID)
			require.Equal(t, 2.5, assignments[0].Cost)
			require.True(t, assignments[0].Accepted)
			require.False(t, assignments[1].Proposed)

			cycles, err := s.QueryCycles(ctx, Query{})
			require.NoError(t, err)
			require.Len(t, cycles, 2)
			require.Equal(t, 2, cycles[0].Couriers)

			transitions, err := s.QueryTransitions(ctx, Query{})
			require.NoError(t, err)
			require.Len(t, transitions, 2)
			require.Equal(t, record.EventStateChange, transitions[0].EventType)

			require.NoError(t, s.Close())
		})
	}
}

func TestStore_Filters(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seedStore(t, s)

			// End is exclusive.
			assignments, err := s.QueryAssignments(ctx, Query{Start: 100, End: 200})
			require.NoError(t, err)
			require.Len(t, assignments, 1)
			require.Equal(t, int64(1), assignments[0].OrderID)

			// Courier filter also matches the ground-truth courier.
			assignments, err = s.QueryAssignments(ctx, Query{CourierID: 11})
			require.NoError(t, err)
			require.Len(t, assignments, 1)
			require.Equal(t, int64(2), assignments[0].OrderID)

			assignments, err = s.QueryAssignments(ctx, Query{OrderID: 2})
			require.NoError(t, err)
			require.Len(t, assignments, 1)

			transitions, err := s.QueryTransitions(ctx, Query{CourierID: 10})
			require.NoError(t, err)
			require.Len(t, transitions, 1)
			require.Equal(t, "BUSY", transitions[0].NewState)

			require.NoError(t, s.Close())
		})
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(config.RecordsConfig{Backend: config.RecordBackendJSONL, Path: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &JSONLStore{}, s)
	require.NoError(t, s.Close())

	s, err = NewStore(config.RecordsConfig{
		Backend: config.RecordBackendSQLite,
		Path:    filepath.Join(t.TempDir(), "r.db"),
	})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = NewStore(config.RecordsConfig{Backend: "csv", Path: "x"})
	require.ErrorIs(t, err, simerr.ErrConfiguration)
}
