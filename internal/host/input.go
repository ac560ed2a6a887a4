// Package host embeds the simulation in an ebiten window: device polling,
// the fixed-step drive loop, and a top-down debug view.
package host

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Versifine/stride/internal/input"
)

const (
	stickDeadzone = 0.2
	// stick deflection is a rate; scale to degrees per second before the
	// orientation pass multiplies by dt
	gamepadLookRate = 150.0
	// degrees of look per pixel of cursor travel
	mouseSensitivity = 0.15
)

// Source polls the keyboard, mouse, and first gamepad into an input frame.
// Poll must run once per tick before the simulation reads Frame.
type Source struct {
	frame  input.Frame
	device input.DeviceClass

	lastCursorX int
	lastCursorY int
	hasCursor   bool
}

func NewSource() *Source {
	return &Source{device: input.PointerDevice}
}

func (s *Source) Frame() *input.Frame { return &s.frame }
func (s *Source) LookDevice() input.DeviceClass { return s.device }

func (s *Source) Poll() {
	f := input.Frame{}
	device := input.PointerDevice

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		f.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		f.Move[1] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		f.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		f.Move[0] -= 1
	}
	f.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	f.ToggleView = ebiten.IsKeyPressed(ebiten.KeyV) || ebiten.IsKeyPressed(ebiten.KeyTab)

	cx, cy := ebiten.CursorPosition()
	if s.hasCursor && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		f.Look[0] = float64(cx-s.lastCursorX) * mouseSensitivity
		f.Look[1] = float64(cy-s.lastCursorY) * mouseSensitivity
	}
	s.lastCursorX, s.lastCursorY = cx, cy
	s.hasCursor = true

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]

		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// stick up is negative in HID terms, forward is positive here
			f.Move = mgl64.Vec2{lx, -ly}
			f.AnalogMovement = true
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			f.Look = mgl64.Vec2{rx * gamepadLookRate, ry * gamepadLookRate}
			device = input.RateDevice
		}

		f.Jump = f.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		f.Sprint = f.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		f.ToggleView = f.ToggleView || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop)
	}

	s.frame = f
	s.device = device
}
