// Package orientation accumulates, clamps, and smooths camera yaw/pitch for
// the two view modes. All angles are degrees.
package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/mathx"
)

// lookThresholdSq skips look updates for residual device noise.
const lookThresholdSq = 0.01

// State holds the accumulated camera angles. Owned by the controller loop.
type State struct {
	Yaw   float64
	Pitch float64
}

// FirstPersonConfig tunes first-person look.
type FirstPersonConfig struct {
	RotationSpeed float64
	TopClamp      float64
	BottomClamp   float64
}

// ThirdPersonConfig tunes third-person orbit.
type ThirdPersonConfig struct {
	TopClamp    float64
	BottomClamp float64
	// LockCamera freezes yaw/pitch accumulation while set.
	LockCamera bool
	// AngleOverride is added to pitch only when building the final camera
	// rotation; it is never stored in State.
	AngleOverride float64
}

// deltaMultiplier avoids double-scaling: pointer devices already deliver
// frame-rate-independent deltas, rate devices deliver a deflection per
// second.
func deltaMultiplier(device input.DeviceClass, dt float64) float64 {
	if device == input.PointerDevice {
		return 1.0
	}
	return dt
}

// UpdateFirstPerson accumulates pitch against the first-person clamps and
// applies the yaw delta directly to the character body. The body free-rotates;
// its yaw is not clamped. State.Yaw mirrors the body so rigs read one source.
func UpdateFirstPerson(st *State, pose *locomotion.Pose, look mgl64.Vec2, device input.DeviceClass, cfg FirstPersonConfig, dt float64) {
	if look.Dot(look) >= lookThresholdSq {
		mult := cfg.RotationSpeed * deltaMultiplier(device, dt)
		st.Pitch += look.Y() * mult
		pose.Yaw += look.X() * mult
	}
	st.Pitch = mathx.ClampAngle(st.Pitch, cfg.BottomClamp, cfg.TopClamp)
	st.Yaw = pose.Yaw
}

// UpdateThirdPerson accumulates yaw and pitch from raw look deltas. Yaw is
// wrapped but unclamped; pitch is clamped to the third-person bounds. No
// accumulation happens while the camera is locked.
func UpdateThirdPerson(st *State, look mgl64.Vec2, device input.DeviceClass, cfg ThirdPersonConfig, dt float64) {
	if look.Dot(look) >= lookThresholdSq && !cfg.LockCamera {
		mult := deltaMultiplier(device, dt)
		st.Yaw += look.X() * mult
		st.Pitch += look.Y() * mult
	}
	st.Yaw = mathx.ClampAngle(st.Yaw, math.Inf(-1), math.Inf(1))
	st.Pitch = mathx.ClampAngle(st.Pitch, cfg.BottomClamp, cfg.TopClamp)
}

// CameraAngles returns the effective camera pitch and yaw for rig placement,
// applying the third-person additive override at construction time only.
func CameraAngles(st *State, override float64) (pitch, yaw float64) {
	return st.Pitch + override, st.Yaw
}
