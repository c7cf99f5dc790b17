package record

// MemoryRecorder keeps records in memory. It backs tests and small
// programmatic runs where no persistence is needed.
type MemoryRecorder struct {
	Assignments []AssignmentRecord
	Cycles      []CycleRecord
	Transitions []TransitionRecord
}

func NewMemoryRecorder() *MemoryRecorder { return &MemoryRecorder{} }

func (m *MemoryRecorder) RecordAssignment(r AssignmentRecord) error {
	m.Assignments = append(m.Assignments, r)
	return nil
}

func (m *MemoryRecorder) RecordCycle(r CycleRecord) error {
	m.Cycles = append(m.Cycles, r)
	return nil
}

func (m *MemoryRecorder) RecordTransition(r TransitionRecord) error {
	m.Transitions = append(m.Transitions, r)
	return nil
}
