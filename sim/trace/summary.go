package trace

// TraceSummary aggregates statistics from a RunTrace.
type TraceSummary struct {
	TotalFrames    int
	TotalSlots     int
	IdleSlots      int
	SuccessSlots   int
	CollisionSlots int
	MaxFrameSize   int
	MeanFrameSize  float64
	// Throughput is success slots per processed slot.
	Throughput float64
	// Unbalanced counts frames whose slot outcomes do not add up to Slots.
	Unbalanced int
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *TraceSummary {
	summary := &TraceSummary{}
	if rt == nil || len(rt.Frames) == 0 {
		return summary
	}

	totalSize := 0
	for _, f := range rt.Frames {
		summary.TotalSlots += f.Slots
		summary.IdleSlots += f.Idle
		summary.SuccessSlots += f.Success
		summary.CollisionSlots += f.Collision
		totalSize += f.Size
		if f.Size > summary.MaxFrameSize {
			summary.MaxFrameSize = f.Size
		}
		if f.Idle+f.Success+f.Collision != f.Slots {
			summary.Unbalanced++
		}
	}
	summary.TotalFrames = len(rt.Frames)
	summary.MeanFrameSize = float64(totalSize) / float64(summary.TotalFrames)
	if summary.TotalSlots > 0 {
		summary.Throughput = float64(summary.SuccessSlots) / float64(summary.TotalSlots)
	}

	return summary
}
