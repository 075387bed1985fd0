// Package input tracks keyboard and mouse wheel state from window events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// NewSystem creates an empty input state tracker.
func NewSystem() *System {
	return &System{
		keys: make(map[sdl.Keycode]bool),
	}
}

// System accumulates input events between frames. Key state persists
// until the key is released or window focus is lost, scroll state is
// per-frame and cleared by Reset.
type System struct {
	keys    map[sdl.Keycode]bool
	scrollX float32
	scrollY float32
}

// HandleEvent folds one window event into the tracked state.
func (s *System) HandleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			s.keys[e.Keysym.Sym] = true
		case sdl.KEYUP:
			delete(s.keys, e.Keysym.Sym)
		}
	case *sdl.MouseWheelEvent:
		s.scrollX += float32(e.X)
		s.scrollY += float32(e.Y)
	case *sdl.WindowEvent:
		// Keys released while unfocused would otherwise stick.
		if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			s.clear()
		}
	}
}

// KeyDown reports whether the key is currently held.
func (s *System) KeyDown(key sdl.Keycode) bool {
	return s.keys[key]
}

// Scroll returns the wheel movement accumulated since the last Reset.
func (s *System) Scroll() (x, y float32) {
	return s.scrollX, s.scrollY
}

// Reset clears the per-frame state. Call once per tick after all
// consumers have read it.
func (s *System) Reset() {
	s.scrollX = 0
	s.scrollY = 0
}

func (s *System) clear() {
	s.keys = make(map[sdl.Keycode]bool)
	s.scrollX = 0
	s.scrollY = 0
}
