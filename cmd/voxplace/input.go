package main

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"voxplace/internal/render"
	"voxplace/internal/world"
)

// reach is how far away, in cells, the player can paint.
const reach = 8

type input struct {
	window *glfw.Window
	cam    *render.Camera
	reg    *world.Registry

	maxColor uint8
	color    uint8
	showHUD  bool

	firstMouse   bool
	lastX, lastY float64
}

func newInput(window *glfw.Window, cam *render.Camera, reg *world.Registry, maxColor uint8) *input {
	in := &input{
		window:     window,
		cam:        cam,
		reg:        reg,
		maxColor:   maxColor,
		color:      1,
		showHUD:    true,
		firstMouse: true,
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetKeyCallback(in.key)
	window.SetCursorPosCallback(in.mouseMove)
	window.SetMouseButtonCallback(in.mouseButton)
	window.SetScrollCallback(in.scroll)
	return in
}

func (in *input) key(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyF3:
		in.showHUD = !in.showHUD
	}
}

func (in *input) mouseMove(w *glfw.Window, x, y float64) {
	if in.firstMouse {
		in.lastX, in.lastY = x, y
		in.firstMouse = false
	}
	// screen y grows downwards
	in.cam.Look(float32(x-in.lastX), float32(in.lastY-y))
	in.lastX, in.lastY = x, y
}

// mouseButton erases the targeted cell on left click and paints the
// selected colour in front of it on right click.
func (in *input) mouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	hit, ok := in.reg.Raycast(in.cam.Position, in.cam.Front(), reach)
	if !ok {
		return
	}
	switch button {
	case glfw.MouseButtonLeft:
		in.reg.SetBlock(hit.X, hit.Y, hit.Z, 0)
	case glfw.MouseButtonRight:
		in.reg.SetBlock(hit.BeforeX, hit.BeforeY, hit.BeforeZ, in.color)
	}
}

func (in *input) scroll(w *glfw.Window, xoff, yoff float64) {
	switch {
	case yoff > 0:
		in.color = in.color%in.maxColor + 1
	case yoff < 0:
		in.color--
		if in.color == 0 {
			in.color = in.maxColor
		}
	}
}

// move is polled every frame so held keys fly smoothly.
func (in *input) move(dt float32) {
	axis := func(pos, neg glfw.Key) float32 {
		var v float32
		if in.window.GetKey(pos) == glfw.Press {
			v++
		}
		if in.window.GetKey(neg) == glfw.Press {
			v--
		}
		return v
	}
	in.cam.Move(
		axis(glfw.KeyW, glfw.KeyS),
		axis(glfw.KeyD, glfw.KeyA),
		axis(glfw.KeySpace, glfw.KeyLeftControl),
		dt,
	)
}

type fpsCounter struct {
	frames int
	since  time.Time
	fps    float64
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{since: time.Now()}
}

// tick counts a frame and reports whether the rate was refreshed.
func (f *fpsCounter) tick(now time.Time) bool {
	f.frames++
	elapsed := now.Sub(f.since)
	if elapsed < 500*time.Millisecond {
		return false
	}
	f.fps = float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.since = now
	return true
}

func (f *fpsCounter) String() string {
	return fmt.Sprintf("FPS        : %.1f", f.fps)
}
