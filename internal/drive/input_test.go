package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputState(t *testing.T) {
	in := NewInputState()
	assert.False(t, in.Held(KeyW))

	in.KeyDown(KeyW)
	assert.True(t, in.Held(KeyW))
	assert.False(t, in.Held(KeyS))

	in.KeyUp(KeyW)
	assert.False(t, in.Held(KeyW))

	var nilState *InputState
	assert.False(t, nilState.Held(KeyW))
}

func TestBindingsResolve(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		name string
		keys []string
		want Controls
	}{
		{name: "nothing held", want: Controls{}},
		{name: "arrow left", keys: []string{KeyArrowLeft}, want: Controls{TurnLeft: true}},
		{name: "letter a", keys: []string{KeyA}, want: Controls{TurnLeft: true}},
		{name: "arrow right", keys: []string{KeyArrowRight}, want: Controls{TurnRight: true}},
		{name: "letter d", keys: []string{KeyD}, want: Controls{TurnRight: true}},
		{name: "arrow up", keys: []string{KeyArrowUp}, want: Controls{Accelerate: true}},
		{name: "letter w", keys: []string{KeyW}, want: Controls{Accelerate: true}},
		{name: "arrow down", keys: []string{KeyArrowDown}, want: Controls{Brake: true}},
		{name: "letter s", keys: []string{KeyS}, want: Controls{Brake: true}},
		{name: "upper case ignored", keys: []string{"W", "A"}, want: Controls{}},
		{
			name: "combined",
			keys: []string{KeyW, KeyArrowLeft, KeyD},
			want: Controls{Accelerate: true, TurnLeft: true, TurnRight: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Resolve(hold(tt.keys...)))
		})
	}
}

func TestBindingsReleaseOneOfTwo(t *testing.T) {
	in := hold(KeyArrowUp, KeyW)
	in.KeyUp(KeyW)
	assert.True(t, DefaultBindings().Resolve(in).Accelerate)
	in.KeyUp(KeyArrowUp)
	assert.False(t, DefaultBindings().Resolve(in).Accelerate)
}
