package sim

import "math/rand"

// Tag is one simulated transponder. A tag stays silent until the reader
// starts an inventory round and goes silent again once it is identified.
type Tag struct {
	silenced bool
	// slot is the countdown used under BlockFeedback; -1 until first assigned.
	slot int
	rng  *rand.Rand
}

// NewTag creates a silenced tag that draws from rng. The rng must not be
// shared with any other tag.
func NewTag(rng *rand.Rand) *Tag {
	return &Tag{
		silenced: true,
		slot:     -1,
		rng:      rng,
	}
}

// ReaderStarting makes the tag respond for the current round.
func (t *Tag) ReaderStarting() {
	t.silenced = false
}

// CommunicationSuccessful silences the tag after it was uniquely identified.
func (t *Tag) CommunicationSuccessful() {
	t.silenced = true
}

// Silenced reports whether the tag ignores reader queries.
func (t *Tag) Silenced() bool {
	return t.silenced
}

// CalculateAndGetSlot draws a fresh slot in [0, frameSize) or returns -1 when
// the tag is silenced. Used under SimpleFrameFeedback.
func (t *Tag) CalculateAndGetSlot(frameSize int) int {
	if t.silenced {
		return -1
	}
	return t.rng.Intn(frameSize)
}

// QueryAdjust draws and stores a new slot counter for a frame whose size just
// changed. It reports whether the tag transmits in the current slot.
func (t *Tag) QueryAdjust(frameSize int) bool {
	if t.silenced {
		return false
	}
	t.slot = t.rng.Intn(frameSize)
	return t.slot == 0
}

// QueryRep decrements the stored slot counter and reports whether the tag
// transmits in the current slot.
func (t *Tag) QueryRep() bool {
	if t.silenced {
		return false
	}
	t.slot--
	return t.slot == 0
}
