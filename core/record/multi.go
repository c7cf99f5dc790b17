package record

// NopRecorder discards every record.
type NopRecorder struct{}

func (NopRecorder) RecordAssignment(AssignmentRecord) error { return nil }
func (NopRecorder) RecordCycle(CycleRecord) error           { return nil }
func (NopRecorder) RecordTransition(TransitionRecord) error { return nil }

// MultiRecorder fans every record out to all recorders, returning the
// first error encountered.
type MultiRecorder struct {
	Recorders []Recorder
}

// NewMulti builds a MultiRecorder; with a single recorder it is returned
// unwrapped, with none a NopRecorder.
func NewMulti(recorders ...Recorder) Recorder {
	switch len(recorders) {
	case 0:
		return NopRecorder{}
	case 1:
		return recorders[0]
	}
	return &MultiRecorder{Recorders: recorders}
}

func (m *MultiRecorder) RecordAssignment(r AssignmentRecord) error {
	for _, rec := range m.Recorders {
		if err := rec.RecordAssignment(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiRecorder) RecordCycle(r CycleRecord) error {
	for _, rec := range m.Recorders {
		if err := rec.RecordCycle(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiRecorder) RecordTransition(r TransitionRecord) error {
	for _, rec := range m.Recorders {
		if err := rec.RecordTransition(r); err != nil {
			return err
		}
	}
	return nil
}
