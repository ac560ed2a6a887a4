package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/mathx"
)

// MovementPolicy selects how the horizontal movement direction is resolved.
type MovementPolicy int

const (
	// CharacterRelative builds the direction in the character's own basis;
	// the character strafes without rotating.
	CharacterRelative MovementPolicy = iota
	// CameraRelative builds the direction from the camera's flattened basis
	// and rotates the character's facing toward the resolved heading.
	CameraRelative
)

const (
	// speedDeadBand: gaps to the target speed below this snap instead of
	// ramping, so the speed settles exactly.
	speedDeadBand = 0.1
	// moveThreshold gates facing rotation on actual movement intent.
	moveThreshold = 1e-3
)

// Config tunes horizontal movement for one view mode.
type Config struct {
	MoveSpeed          float64
	SprintSpeed        float64
	SpeedChangeRate    float64
	RotationSmoothTime float64
}

// Pose is the character's world transform: position plus facing yaw in
// degrees. Owned by the controller loop.
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
}

// State carries per-frame locomotion scratch between frames.
type State struct {
	Speed            float64
	TargetSpeed      float64
	InputMagnitude   float64
	AnimationBlend   float64 // normalized [0,1], rounded to 2 decimals
	RotationVelocity float64 // SmoothDampAngle scratch

	rawBlend float64 // exponential smoothing of TargetSpeed, in speed units
}

// ResetBlend clears the blend smoothing scratch, used when animation
// parameters are force-reset on a view-mode transition.
func (st *State) ResetBlend() {
	st.rawBlend = 0
}

// Step resolves one frame of horizontal movement: speed ramp, direction,
// facing, and the single combined Move call folding in the integrator's
// vertical velocity. cameraYaw is only consulted under CameraRelative.
func Step(st *State, pose *Pose, frame *input.Frame, policy MovementPolicy, cameraYaw, verticalVelocity float64, cfg Config, mover Mover, dt float64) {
	st.TargetSpeed = cfg.MoveSpeed
	if frame.Sprint {
		st.TargetSpeed = cfg.SprintSpeed
	}
	if frame.Move.X() == 0 && frame.Move.Y() == 0 {
		st.TargetSpeed = 0
	}

	st.InputMagnitude = 1.0
	if frame.AnalogMovement {
		st.InputMagnitude = frame.Move.Len()
	}

	// Linear ramp toward the target, snapping inside the dead-band. A
	// predictable acceleration feel, not a spring.
	if math.Abs(st.Speed-st.TargetSpeed) > speedDeadBand {
		st.Speed = mathx.MoveTowards(st.Speed, st.TargetSpeed, cfg.SpeedChangeRate*dt)
	} else {
		st.Speed = st.TargetSpeed
	}

	st.rawBlend = mathx.Lerp(st.rawBlend, st.TargetSpeed, dt*cfg.SpeedChangeRate)
	if st.rawBlend < 0.01 {
		st.rawBlend = 0
	}
	st.AnimationBlend = normalizeBlend(st.rawBlend, cfg.MoveSpeed, cfg.SprintSpeed)

	dir := resolveDirection(frame.Move, pose, policy, cameraYaw)

	if policy == CameraRelative && frame.Move.Len() > moveThreshold {
		target := facingTarget(frame.Move, cameraYaw)
		pose.Yaw, st.RotationVelocity = mathx.SmoothDampAngle(pose.Yaw, target, st.RotationVelocity, cfg.RotationSmoothTime, dt)
	}

	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	displacement := dir.Mul(st.Speed * st.InputMagnitude * dt)
	displacement[1] += verticalVelocity * dt

	if mover != nil {
		pose.Position = pose.Position.Add(mover.Move(pose.Position, displacement))
	} else {
		pose.Position = pose.Position.Add(displacement)
	}
}

func resolveDirection(move mgl64.Vec2, pose *Pose, policy MovementPolicy, cameraYaw float64) mgl64.Vec3 {
	basisYaw := pose.Yaw
	if policy == CameraRelative {
		basisYaw = cameraYaw
	}
	right := mathx.YawToRight(basisYaw)
	forward := mathx.YawToDir(basisYaw)
	return right.Mul(move.X()).Add(forward.Mul(move.Y()))
}

// facingTarget is the heading the character turns toward. Backward intent
// mirrors both components so the facing stays on the forward-looking
// interpretation: the character backs up rather than spinning to face the
// camera. Pure strafe is deliberately not mirrored.
func facingTarget(move mgl64.Vec2, cameraYaw float64) float64 {
	x, y := move.X(), move.Y()
	if y < 0 {
		x, y = -x, -y
	}
	return mgl64.RadToDeg(math.Atan2(x, y)) + cameraYaw
}

// normalizeBlend maps a smoothed speed to [0,1]: 0–0.5 covers idle to walk,
// 0.5–1 covers walk to sprint. Rounded to 2 decimals to stop animation
// parameter chatter.
func normalizeBlend(blend, moveSpeed, sprintSpeed float64) float64 {
	var n float64
	switch {
	case moveSpeed <= 0:
		n = 0
	case blend <= moveSpeed:
		n = 0.5 * blend / moveSpeed
	case sprintSpeed > moveSpeed:
		n = 0.5 + 0.5*(blend-moveSpeed)/(sprintSpeed-moveSpeed)
	default:
		n = 0.5
	}
	return math.Round(mathx.Clamp(n, 0, 1)*100) / 100
}
