package record

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/courierlab/dispatchsim/core/record"
)

const (
	assignmentsFile = "assignments.jsonl"
	cyclesFile      = "cycles.jsonl"
	transitionsFile = "transitions.jsonl"
)

// JSONLStore appends each record stream to its own JSONL file under a
// directory.
type JSONLStore struct {
	dir string
	mu  sync.Mutex
}

// NewJSONLStore creates dir if needed and touches the three stream files.
func NewJSONLStore(dir string) (*JSONLStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	for _, name := range []string{assignmentsFile, cyclesFile, transitionsFile} {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return nil, err
		}
		if cerr := f.Close(); cerr != nil {
			return nil, cerr
		}
	}
	return &JSONLStore{dir: dir}, nil
}

func (s *JSONLStore) append(name string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

func (s *JSONLStore) RecordAssignment(r record.AssignmentRecord) error {
	return s.append(assignmentsFile, r)
}

func (s *JSONLStore) RecordCycle(r record.CycleRecord) error {
	return s.append(cyclesFile, r)
}

func (s *JSONLStore) RecordTransition(r record.TransitionRecord) error {
	return s.append(transitionsFile, r)
}

// scan decodes every line of the named file, passing each to keep.
// Undecodable lines are skipped.
func scan[T any](s *JSONLStore, name string, keep func(T) bool) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []T
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r T
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if keep(r) {
			res = append(res, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *JSONLStore) QueryAssignments(_ context.Context, q Query) ([]record.AssignmentRecord, error) {
	return scan(s, assignmentsFile, func(r record.AssignmentRecord) bool {
		if !q.matchesTime(r.DispatchTime) {
			return false
		}
		if q.CourierID != 0 && r.CourierID != q.CourierID && r.ActualCourierID != q.CourierID {
			return false
		}
		if q.OrderID != 0 && r.OrderID != q.OrderID {
			return false
		}
		return true
	})
}

func (s *JSONLStore) QueryCycles(_ context.Context, q Query) ([]record.CycleRecord, error) {
	return scan(s, cyclesFile, func(r record.CycleRecord) bool {
		return q.matchesTime(r.DispatchTime)
	})
}

func (s *JSONLStore) QueryTransitions(_ context.Context, q Query) ([]record.TransitionRecord, error) {
	return scan(s, transitionsFile, func(r record.TransitionRecord) bool {
		if !q.matchesTime(r.Timestamp) {
			return false
		}
		return q.CourierID == 0 || r.CourierID == q.CourierID
	})
}

func (s *JSONLStore) Close() error { return nil }
