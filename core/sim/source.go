package sim

import (
	"io"

	"github.com/courierlab/dispatchsim/core/model"
)

// Source yields pre-loaded cycle snapshots in non-decreasing dispatch
// time order. Next returns io.EOF after the last cycle; any other error
// is fatal to the run, since evaluation assumes a complete cycle sequence.
type Source interface {
	Next() (*model.CycleSnapshot, error)
}

// SliceSource serves snapshots from memory.
type SliceSource struct {
	cycles []model.CycleSnapshot
	pos    int
}

func NewSliceSource(cycles ...model.CycleSnapshot) *SliceSource {
	return &SliceSource{cycles: cycles}
}

func (s *SliceSource) Next() (*model.CycleSnapshot, error) {
	if s.pos >= len(s.cycles) {
		return nil, io.EOF
	}
	snap := s.cycles[s.pos]
	s.pos++
	return &snap, nil
}
