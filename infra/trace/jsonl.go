// Package trace loads historical cycle snapshots from disk. A trace file
// is JSONL with one cycle snapshot per line, sorted by dispatch time.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/courierlab/dispatchsim/core/model"
)

// JSONLSource streams cycle snapshots from a JSONL trace file.
type JSONLSource struct {
	f       *os.File
	scanner *bufio.Scanner
	line    int
	lastT   int64
	started bool
}

// Open opens the trace file at path.
func Open(path string) (*JSONLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &JSONLSource{f: f, scanner: scanner}, nil
}

// Next returns the following snapshot, io.EOF at end of trace. Blank
// lines are skipped; a snapshot whose dispatch time goes backwards is an
// error, since the replay clock only moves forward.
func (s *JSONLSource) Next() (*model.CycleSnapshot, error) {
	for s.scanner.Scan() {
		s.line++
		b := s.scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var snap model.CycleSnapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", s.line, err)
		}
		if s.started && snap.DispatchTime < s.lastT {
			return nil, fmt.Errorf("trace: line %d: dispatch time %d before %d",
				s.line, snap.DispatchTime, s.lastT)
		}
		s.started = true
		s.lastT = snap.DispatchTime
		return &snap, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return nil, io.EOF
}

// Close closes the underlying file.
func (s *JSONLSource) Close() error { return s.f.Close() }
