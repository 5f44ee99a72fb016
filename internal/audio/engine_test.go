package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle(t *testing.T) {
	assert.Equal(t, 0.0, throttle(0))
	assert.InDelta(t, 0.5, throttle(fullSpeed/2), 1e-12)
	assert.Equal(t, 1.0, throttle(1))
	assert.Equal(t, 0.0, throttle(-1))
}

func TestHumReaderFillsWholeFrames(t *testing.T) {
	h := newHumReader()
	buf := make([]byte, 8*100+5)
	n, err := h.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 800, n)
}

func TestHumReaderSamplesInRange(t *testing.T) {
	h := newHumReader()
	h.setThrottle(1)
	buf := make([]byte, 8*SampleRate)
	_, err := h.Read(buf)
	require.NoError(t, err)

	for i := 0; i < SampleRate; i++ {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		require.Equal(t, l, r)
		require.LessOrEqual(t, math.Abs(float64(l)), 1.0)
	}
	assert.Greater(t, h.level, 0.9)
}

func TestHumLevelFollowsThrottle(t *testing.T) {
	h := newHumReader()
	buf := make([]byte, 8*4096)
	_, _ = h.Read(buf)
	assert.Equal(t, 0.0, h.level)

	h.setThrottle(1)
	_, _ = h.Read(buf)
	up := h.level
	assert.Greater(t, up, 0.0)

	h.setThrottle(0)
	_, _ = h.Read(buf)
	assert.Less(t, h.level, up)
}

func TestNilEngineIsSafe(t *testing.T) {
	var e *Engine
	e.SetSpeed(0.1)
	e.Close()
}

func TestSoftSat(t *testing.T) {
	assert.Equal(t, 0.0, softSat(0))
	assert.InDelta(t, 11.0/12, softSat(2), 1e-12)
	assert.InDelta(t, -11.0/12, softSat(-2), 1e-12)

	// No jump where the cubic hands over to the tail.
	for _, edge := range []float64{1, -1} {
		assert.InDelta(t, softSat(edge), softSat(edge*(1+1e-9)), 1e-6)
	}
	assert.Less(t, softSat(1e6), 1.0)
}
