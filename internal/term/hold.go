package term

import (
	"time"

	"uberdrive/internal/drive"
)

// HoldTracker turns the press-only key stream of a terminal into held keys.
// A key stays down until it has not repeated for a while: initialHold after
// the first press, which covers the typematic delay, then releaseDelay after
// each auto-repeat.
type HoldTracker struct {
	initialHold  time.Duration
	releaseDelay time.Duration

	keys map[string]holdState
}

type holdState struct {
	last     time.Time
	repeated bool
}

func NewHoldTracker(initialHold, releaseDelay time.Duration) *HoldTracker {
	return &HoldTracker{
		initialHold:  initialHold,
		releaseDelay: releaseDelay,
		keys:         make(map[string]holdState),
	}
}

// Press records a key event at now and marks the key held.
func (h *HoldTracker) Press(in *drive.InputState, key string, now time.Time) {
	st, held := h.keys[key]
	if !held {
		in.KeyDown(key)
	}
	h.keys[key] = holdState{last: now, repeated: held || st.repeated}
}

// Expire releases every key whose repeat stream has gone quiet by now.
func (h *HoldTracker) Expire(in *drive.InputState, now time.Time) {
	for key, st := range h.keys {
		limit := h.initialHold
		if st.repeated {
			limit = h.releaseDelay
		}
		if now.Sub(st.last) >= limit {
			in.KeyUp(key)
			delete(h.keys, key)
		}
	}
}
