// Package record provides persistent backends for simulation records.
//
// Two backends are available: an append-only JSONL directory and a
// SQLite database. Both implement Store, which extends the in-core
// Recorder interface with query and lifecycle operations.
package record

import (
	"context"
	"fmt"

	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// Query filters record lookups. Zero values leave the corresponding
// dimension unconstrained; End is exclusive.
type Query struct {
	Start     int64
	End       int64
	CourierID int64
	OrderID   int64
}

func (q Query) matchesTime(ts int64) bool {
	if q.Start != 0 && ts < q.Start {
		return false
	}
	if q.End != 0 && ts >= q.End {
		return false
	}
	return true
}

// Store persists records during a run and serves them back afterwards.
type Store interface {
	record.Recorder

	QueryAssignments(ctx context.Context, q Query) ([]record.AssignmentRecord, error)
	QueryCycles(ctx context.Context, q Query) ([]record.CycleRecord, error)
	QueryTransitions(ctx context.Context, q Query) ([]record.TransitionRecord, error)

	Close() error
}

// NewStore builds the store named by the configuration.
func NewStore(cfg config.RecordsConfig) (Store, error) {
	switch cfg.Backend {
	case config.RecordBackendJSONL:
		return NewJSONLStore(cfg.Path)
	case config.RecordBackendSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: unknown record backend %q", simerr.ErrConfiguration, cfg.Backend)
	}
}
