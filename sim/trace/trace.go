package trace

// RunTrace collects frame records during a single simulation run.
// Not safe for concurrent use; each run owns its trace.
type RunTrace struct {
	Estimator string
	TagCount  int
	Frames    []FrameRecord
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(estimator string, tagCount int) *RunTrace {
	return &RunTrace{
		Estimator: estimator,
		TagCount:  tagCount,
		Frames:    make([]FrameRecord, 0),
	}
}

// RecordFrame appends a frame record.
func (rt *RunTrace) RecordFrame(record FrameRecord) {
	rt.Frames = append(rt.Frames, record)
}
