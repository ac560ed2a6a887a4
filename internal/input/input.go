package input

import "github.com/go-gl/mathgl/mgl64"

// DeviceClass describes how look deltas from a device scale over time.
// Pointer devices report raw per-frame deltas that are already frame-rate
// independent; rate devices report a deflection that must be scaled by dt.
type DeviceClass int

const (
	PointerDevice DeviceClass = iota
	RateDevice
)

// Frame is one frame of player intent, produced by a Source before the
// simulation step. It is read-only to the core with one exception: the
// vertical integrator force-clears Jump while airborne so a buffered press
// cannot fire on landing.
type Frame struct {
	Move           mgl64.Vec2 // [-1,1] x [-1,1]
	Look           mgl64.Vec2 // device-dependent magnitude
	Jump           bool
	Sprint         bool
	ToggleView     bool // level of the view-toggle key; edge-detected by the loop
	AnalogMovement bool
}

// Source supplies a refreshed Frame once per simulation frame.
type Source interface {
	Frame() *Frame
	LookDevice() DeviceClass
}
