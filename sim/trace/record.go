// Package trace provides per-frame recording of inventory rounds.
// It has no dependencies on sim/ and stores plain data types.
package trace

// FrameRecord captures one frame as the reader saw it.
// Under block feedback a frame ends early when the estimator changes the
// frame size, so Slots may be smaller than Size.
type FrameRecord struct {
	Index     int // 0-based frame number within the run
	Size      int // announced frame size
	Slots     int // slots actually processed
	Idle      int
	Success   int
	Collision int
	NextSize  int // frame size chosen after this frame (0 = round ended)
}
