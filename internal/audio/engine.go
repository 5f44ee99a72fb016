// Package audio plays a procedural engine hum that follows the car's speed.
package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"
)

const (
	SampleRate   = 44100
	ChannelCount = 2

	idleFreq  = 38.0 // Hz at standstill
	freqRange = 95.0 // Hz added at full throttle
	idleGain  = 0.18
	fullSpeed = 0.15 // linear speed that counts as full throttle
)

// Engine owns the oto context and the hum player.
type Engine struct {
	ctx *oto.Context
	hum *humReader
	log zerolog.Logger

	mu     sync.Mutex
	player oto.Player
	closed bool
}

// NewEngine opens the audio device. The hum starts once the device
// reports ready.
func NewEngine(volume float64, log zerolog.Logger) (*Engine, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	e := &Engine{ctx: ctx, hum: newHumReader(), log: log}
	go func() {
		<-ready
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.closed {
			return
		}
		e.player = ctx.NewPlayer(e.hum)
		e.player.SetVolume(clamp01(volume))
		e.player.Play()
		log.Debug().Msg("engine hum started")
	}()
	return e, nil
}

// SetSpeed feeds the car's linear speed to the hum. Safe from any goroutine.
func (e *Engine) SetSpeed(speed float64) {
	if e == nil {
		return
	}
	e.hum.setThrottle(throttle(speed))
}

func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.player == nil {
		return
	}
	if err := e.player.Close(); err != nil {
		e.log.Warn().Err(err).Msg("close engine player")
	}
}

// throttle maps linear speed onto [0, 1].
func throttle(speed float64) float64 {
	return clamp01(speed / fullSpeed)
}

// humReader is an endless stereo float32 stream. Throttle is published
// atomically by the game loop and smoothed per sample on oto's goroutine.
type humReader struct {
	target atomic.Uint64 // math.Float64bits of the throttle

	level float64
	phase float64
	mod   float64
	seed  uint64
	lp    float64
}

func newHumReader() *humReader {
	return &humReader{seed: 0x5EED}
}

func (h *humReader) setThrottle(v float64) {
	h.target.Store(math.Float64bits(v))
}

func (h *humReader) Read(p []byte) (int, error) {
	n := len(p) / 8
	target := math.Float64frombits(h.target.Load())
	for i := 0; i < n; i++ {
		h.level += (target - h.level) * 0.0005
		freq := idleFreq + freqRange*h.level
		h.phase += 2 * math.Pi * freq / SampleRate
		if h.phase > 2*math.Pi {
			h.phase -= 2 * math.Pi
		}
		h.mod += 2 * math.Pi * freq * 0.5 / SampleRate
		if h.mod > 2*math.Pi {
			h.mod -= 2 * math.Pi
		}
		// Two-operator FM body plus a little lowpassed noise for rasp.
		body := math.Sin(h.phase + (1.2+1.8*h.level)*math.Sin(h.mod))
		h.lp = h.lp*0.9 + lcg(&h.seed)*0.1
		gain := idleGain + (1-idleGain)*h.level
		putStereoF32(p, i, softSat((body*0.5+h.lp*0.25*h.level)*gain))
	}
	return n * 8, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 1.0/(3.0*x*x)
	}
	if x < -1.0 {
		return -1.0 + 1.0/(3.0*x*x)
	}
	return x - x*x*x/3.0
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
