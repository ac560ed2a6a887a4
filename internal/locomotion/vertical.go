package locomotion

import (
	"math"

	"github.com/Versifine/stride/internal/input"
)

const (
	// TerminalVelocity bounds downward speed. The gravity step is applied
	// after the comparison, so a single frame may overshoot slightly.
	TerminalVelocity = 53.0

	// groundedStickVelocity keeps the character pressed to the ground
	// without accumulating unbounded negative velocity while standing.
	groundedStickVelocity = -2.0
)

// VerticalConfig tunes jumping and gravity. Gravity is negative.
type VerticalConfig struct {
	JumpHeight  float64
	Gravity     float64
	JumpTimeout float64 // seconds before another jump is accepted
	FallTimeout float64 // seconds airborne before FreeFalling raises
}

// VerticalState is owned by the controller loop and mutated once per frame
// by IntegrateVertical. Jumping and FreeFalling are animation flags.
type VerticalState struct {
	Velocity             float64
	JumpTimeoutRemaining float64
	FallTimeoutRemaining float64
	Jumping              bool
	FreeFalling          bool
}

// IntegrateVertical advances jump/gravity state for one frame. While
// airborne it force-clears frame.Jump so a buffered press cannot fire the
// instant the character lands.
func IntegrateVertical(st *VerticalState, frame *input.Frame, grounded bool, cfg VerticalConfig, dt float64) {
	if grounded {
		st.FallTimeoutRemaining = cfg.FallTimeout
		st.Jumping = false
		st.FreeFalling = false

		if st.Velocity < 0 {
			st.Velocity = groundedStickVelocity
		}

		if frame.Jump && st.JumpTimeoutRemaining <= 0 {
			// Launch velocity for the requested apex: v = sqrt(h * -2g).
			st.Velocity = math.Sqrt(cfg.JumpHeight * -2 * cfg.Gravity)
			st.Jumping = true
		}

		if st.JumpTimeoutRemaining >= 0 {
			st.JumpTimeoutRemaining -= dt
		}
	} else {
		st.JumpTimeoutRemaining = cfg.JumpTimeout

		if st.FallTimeoutRemaining >= 0 {
			st.FallTimeoutRemaining -= dt
		} else {
			st.FreeFalling = true
		}

		frame.Jump = false
	}

	if st.Velocity < TerminalVelocity {
		st.Velocity += cfg.Gravity * dt
	}
}
