package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(eventType uint32, key sdl.Keycode) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{
		Type:   eventType,
		Keysym: sdl.Keysym{Sym: key},
	}
}

func TestKeyState(t *testing.T) {
	s := NewSystem()

	s.HandleEvent(keyEvent(sdl.KEYDOWN, sdl.K_w))
	assert.True(t, s.KeyDown(sdl.K_w))
	assert.False(t, s.KeyDown(sdl.K_s))

	s.HandleEvent(keyEvent(sdl.KEYUP, sdl.K_w))
	assert.False(t, s.KeyDown(sdl.K_w))
}

func TestKeyStateSurvivesReset(t *testing.T) {
	s := NewSystem()
	s.HandleEvent(keyEvent(sdl.KEYDOWN, sdl.K_a))
	s.Reset()
	assert.True(t, s.KeyDown(sdl.K_a))
}

func TestScrollAccumulatesUntilReset(t *testing.T) {
	s := NewSystem()
	s.HandleEvent(&sdl.MouseWheelEvent{X: 0, Y: 1})
	s.HandleEvent(&sdl.MouseWheelEvent{X: 2, Y: 1})

	x, y := s.Scroll()
	assert.Equal(t, float32(2), x)
	assert.Equal(t, float32(2), y)

	s.Reset()
	x, y = s.Scroll()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestFocusLossClearsKeys(t *testing.T) {
	s := NewSystem()
	s.HandleEvent(keyEvent(sdl.KEYDOWN, sdl.K_q))
	s.HandleEvent(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST})
	assert.False(t, s.KeyDown(sdl.K_q))
}
