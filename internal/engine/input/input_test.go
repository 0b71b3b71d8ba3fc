package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func key(typ uint32, sc sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Scancode: sc}}
}

func TestKeyState(t *testing.T) {
	in := New()
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 0))
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 1))

	if !in.IsKeyDown(sdl.SCANCODE_W) {
		t.Errorf("IsKeyDown(W) = false, want true")
	}
	if !in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Errorf("IsKeyPressed(W) = false, want true")
	}
	if got := len(in.Events()); got != 1 {
		t.Errorf("len(Events()) = %d, want 1 (repeats dropped)", got)
	}
	if got := in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W); got != 1 {
		t.Errorf("Axis(S, W) = %v, want 1", got)
	}

	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_S, 0))
	if got := in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W); got != 0 {
		t.Errorf("Axis(S, W) = %v, want 0", got)
	}

	in.handle(key(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if in.IsKeyDown(sdl.SCANCODE_W) {
		t.Errorf("IsKeyDown(W) = true after release")
	}
	if got := in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W); got != -1 {
		t.Errorf("Axis(S, W) = %v, want -1", got)
	}
}

func TestMouseEvents(t *testing.T) {
	in := New()
	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6})
	in.handle(&sdl.MouseMotionEvent{X: 10, Y: 12, XRel: 5, YRel: 6})
	in.handle(&sdl.MouseWheelEvent{Y: -2})

	if !in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Errorf("IsButtonDown(left) = false, want true")
	}
	events := in.Events()
	if len(events) != 3 {
		t.Fatalf("len(Events()) = %d, want 3", len(events))
	}
	if events[1].DeltaX != 5 || events[1].DeltaY != 6 {
		t.Errorf("motion delta = (%d, %d), want (5, 6)", events[1].DeltaX, events[1].DeltaY)
	}
	if events[2].Wheel != -2 {
		t.Errorf("wheel = %v, want -2", events[2].Wheel)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	if in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Errorf("IsButtonDown(left) = true after release")
	}
}

func TestQuitAndResize(t *testing.T) {
	in := New()
	if in.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480}) {
		t.Errorf("resize reported quit")
	}
	if !in.handle(&sdl.QuitEvent{}) {
		t.Errorf("quit not reported")
	}
	events := in.Events()
	if events[0].Type != EventWindowResize || events[0].Width != 640 || events[0].Height != 480 {
		t.Errorf("resize event = %+v", events[0])
	}
	if events[1].Type != EventQuit {
		t.Errorf("events[1].Type = %v, want EventQuit", events[1].Type)
	}
}
