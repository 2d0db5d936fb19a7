package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_StartsSilenced(t *testing.T) {
	tag := NewTag(rand.New(rand.NewSource(1)))

	assert.True(t, tag.Silenced())
	assert.Equal(t, -1, tag.CalculateAndGetSlot(16))
	assert.False(t, tag.QueryAdjust(1))
	assert.False(t, tag.QueryRep())
}

func TestTag_Lifecycle(t *testing.T) {
	// GIVEN a tag that joined the round
	tag := NewTag(rand.New(rand.NewSource(1)))
	tag.ReaderStarting()
	assert.False(t, tag.Silenced())

	// WHEN it is identified
	tag.CommunicationSuccessful()

	// THEN it stops answering until the next round
	assert.True(t, tag.Silenced())
	assert.Equal(t, -1, tag.CalculateAndGetSlot(8))

	tag.ReaderStarting()
	assert.False(t, tag.Silenced())
}

func TestTag_CalculateAndGetSlot_InRange(t *testing.T) {
	tag := NewTag(rand.New(rand.NewSource(7)))
	tag.ReaderStarting()
	for _, size := range []int{1, 2, 3, 64, 1000} {
		for i := 0; i < 200; i++ {
			slot := tag.CalculateAndGetSlot(size)
			assert.GreaterOrEqual(t, slot, 0)
			assert.Less(t, slot, size)
		}
	}
}

func TestTag_CalculateAndGetSlot_Uniform(t *testing.T) {
	// GIVEN a single tag in an 8-slot frame
	tag := NewTag(rand.New(rand.NewSource(42)))
	tag.ReaderStarting()
	const draws = 20000

	// WHEN it picks a slot many times
	hits := 0
	for i := 0; i < draws; i++ {
		if tag.CalculateAndGetSlot(8) == 0 {
			hits++
		}
	}

	// THEN slot 0 is chosen about once per frame size
	assert.InDelta(t, 1.0/8, float64(hits)/draws, 0.02)
}

func TestTag_QueryAdjustThenRep_TransmitsExactlyOncePerFrame(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		tag := NewTag(rand.New(rand.NewSource(seed)))
		tag.ReaderStarting()
		const size = 16

		transmissions := 0
		if tag.QueryAdjust(size) {
			transmissions++
		}
		for slot := 1; slot < size; slot++ {
			if tag.QueryRep() {
				transmissions++
			}
		}
		assert.Equal(t, 1, transmissions, "seed %d", seed)
	}
}

func TestTag_QueryAdjust_SingleSlotFrameAlwaysTransmits(t *testing.T) {
	tag := NewTag(rand.New(rand.NewSource(3)))
	tag.ReaderStarting()
	assert.True(t, tag.QueryAdjust(1))
	// counter is spent; further reps stay quiet
	assert.False(t, tag.QueryRep())
	assert.False(t, tag.QueryRep())
}

func TestTag_SingleTagFirstSlotAcrossRuns(t *testing.T) {
	// GIVEN tag 0's stream as the Simulator derives it, for many run keys
	const runs = 20000
	const frameSize = 8

	// WHEN the tag picks its slot in the first frame of each run
	hits := 0
	for seed := int64(0); seed < runs; seed++ {
		rng := NewPartitionedRNG(NewSimulationKey(seed))
		tag := NewTag(rng.ForSubsystem(SubsystemTag(0)))
		tag.ReaderStarting()
		if tag.CalculateAndGetSlot(frameSize) == 0 {
			hits++
		}
	}

	// THEN slot 0 is taken in about 1/frameSize of the runs
	assert.InDelta(t, 1.0/frameSize, float64(hits)/runs, 0.02)
}
