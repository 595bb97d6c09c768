package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "find_pile", PhaseFindPile.String())
	assert.Equal(t, "reconstruct", PhaseReconstruct.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in   string
		want Speed
		err  bool
	}{
		{in: "slow", want: SpeedSlow},
		{in: " Normal ", want: SpeedNormal},
		{in: "FAST", want: SpeedFast},
		{in: "warp", want: SpeedNormal, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpeed(tt.in)
			if tt.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpeedNextCycles(t *testing.T) {
	assert.Equal(t, SpeedNormal, SpeedSlow.Next())
	assert.Equal(t, SpeedFast, SpeedNormal.Next())
	assert.Equal(t, SpeedSlow, SpeedFast.Next())
	assert.Equal(t, SpeedSlow, Speed(0).Next())
	assert.Equal(t, "speed(0)", Speed(0).String())
}

func TestDelaysFor(t *testing.T) {
	var zero Delays
	assert.Equal(t, 2500*time.Millisecond, zero.For(SpeedSlow))
	assert.Equal(t, 1500*time.Millisecond, zero.For(SpeedNormal))
	assert.Equal(t, 800*time.Millisecond, zero.For(SpeedFast))

	custom := Delays{Fast: time.Millisecond}
	assert.Equal(t, time.Millisecond, custom.For(SpeedFast))
	assert.Equal(t, 1500*time.Millisecond, custom.For(SpeedNormal))
}

func TestListingLines(t *testing.T) {
	assert.Contains(t, Listing[LineLoop], "range values")
	assert.Contains(t, Listing[LineSearch], "findTargetPile")
	assert.Contains(t, Listing[LineBranch], "idx == -1")
	assert.Contains(t, Listing[LineNewPile], "[]int{x}")
	assert.Contains(t, Listing[LineAppend], "piles[idx]")
	assert.Contains(t, Listing[LineReturn], "reconstruct")
}
