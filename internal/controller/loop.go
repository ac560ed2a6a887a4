// Package controller owns the per-frame orchestration: input, the view-mode
// state machine, vertical integration, locomotion, animation publishing, and
// the late orientation phase.
package controller

import (
	"log/slog"

	"github.com/Versifine/stride/internal/anim"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/orientation"
)

// ModeConfig bundles the tuning of one view mode.
type ModeConfig struct {
	Policy     locomotion.MovementPolicy
	Locomotion locomotion.Config
	Vertical   locomotion.VerticalConfig
}

// Config is the full controller tuning, immutable during a frame. It may be
// replaced between frames via ApplyConfig.
type Config struct {
	FirstPerson     ModeConfig
	ThirdPerson     ModeConfig
	FirstPersonLook orientation.FirstPersonConfig
	ThirdPersonLook orientation.ThirdPersonConfig
	Ground          locomotion.GroundConfig
}

// Loop runs the character simulation once per frame. It is the single owner
// and single writer of all controller state; it must only be driven from the
// simulation goroutine.
type Loop struct {
	cfg    Config
	source input.Source
	probe  locomotion.GroundProbe
	mover  locomotion.Mover

	sink   anim.Sink // optional
	fpRig  CameraRig // optional
	tpRig  CameraRig // optional
	diag   func(msg string)
	warned map[string]bool

	mode     ViewMode
	pose     locomotion.Pose
	vertical locomotion.VerticalState
	motion   locomotion.State
	orient   orientation.State
	grounded bool

	prevToggle bool
}

// New builds a loop starting in first person. The source, probe, and mover
// collaborators are required for normal operation but may be nil: affected
// sub-updates are skipped per frame and reported once.
func New(cfg Config, source input.Source, probe locomotion.GroundProbe, mover locomotion.Mover) *Loop {
	l := &Loop{
		cfg:    cfg,
		source: source,
		probe:  probe,
		mover:  mover,
		warned: make(map[string]bool),
		mode:   FirstPerson,
	}
	return l
}

// AttachAnimationSink wires the optional animation parameter sink.
func (l *Loop) AttachAnimationSink(s anim.Sink) { l.sink = s }

// AttachRigs wires the two camera rigs and activates the rig of the current
// mode, deactivating the other.
func (l *Loop) AttachRigs(firstPerson, thirdPerson CameraRig) {
	l.fpRig = firstPerson
	l.tpRig = thirdPerson
	if active := l.rig(l.mode); active != nil {
		active.SetActive(true)
		active.SetFollowTarget(followTargetFor(l.mode))
	}
	if inactive := l.rig(otherMode(l.mode)); inactive != nil {
		inactive.SetActive(false)
	}
}

// SetDiagnostic registers an optional callback receiving the same one-shot
// configuration diagnostics that go to the log.
func (l *Loop) SetDiagnostic(fn func(msg string)) { l.diag = fn }

// ApplyConfig swaps the tuning. Call between frames only.
func (l *Loop) ApplyConfig(cfg Config) { l.cfg = cfg }

// SetPose teleports the character. Call between frames only.
func (l *Loop) SetPose(pose locomotion.Pose) { l.pose = pose }

// Update runs phases one and two of the frame: view-mode edge detection,
// vertical integration, ground probe, locomotion, and animation publishing.
// Camera orientation runs later, in LateUpdate.
func (l *Loop) Update(dt float64) {
	frame := l.frame()
	if frame == nil {
		return
	}

	if frame.ToggleView && !l.prevToggle {
		l.switchMode()
	}
	l.prevToggle = frame.ToggleView

	mode := l.modeConfig()

	// Integrator first, consuming last frame's probe result; then the probe
	// refreshes for the locomotion step and next frame.
	locomotion.IntegrateVertical(&l.vertical, frame, l.grounded, mode.Vertical, dt)
	l.grounded = locomotion.ProbeGround(l.probe, l.pose.Position, l.cfg.Ground)

	if l.mover == nil {
		l.warnOnce("mover", "displacement primitive missing, movement skipped")
	} else {
		locomotion.Step(&l.motion, &l.pose, frame, mode.Policy, l.orient.Yaw, l.vertical.Velocity, mode.Locomotion, l.mover, dt)
	}

	l.publishAnimation(frame)
}

// LateUpdate runs the orientation phase. It is split from Update so camera
// rotation reads a position that already includes this frame's movement,
// avoiding a one-frame lag between body and camera.
func (l *Loop) LateUpdate(dt float64) {
	frame := l.frame()
	if frame == nil {
		return
	}
	device := l.source.LookDevice()

	switch l.mode {
	case FirstPerson:
		orientation.UpdateFirstPerson(&l.orient, &l.pose, frame.Look, device, l.cfg.FirstPersonLook, dt)
	case ThirdPerson:
		orientation.UpdateThirdPerson(&l.orient, frame.Look, device, l.cfg.ThirdPersonLook, dt)
	}
}

// Mode returns the active view mode.
func (l *Loop) Mode() ViewMode { return l.mode }

// Pose returns the character's current transform.
func (l *Loop) Pose() locomotion.Pose { return l.pose }

// Orientation returns the accumulated camera angles.
func (l *Loop) Orientation() orientation.State { return l.orient }

// Motion returns the locomotion scratch state.
func (l *Loop) Motion() locomotion.State { return l.motion }

// Vertical returns the vertical integrator state.
func (l *Loop) Vertical() locomotion.VerticalState { return l.vertical }

// Grounded reports the last ground probe result.
func (l *Loop) Grounded() bool { return l.grounded }

// CameraAngles returns the effective camera pitch and yaw for the active
// mode, with the third-person override applied at construction time only.
func (l *Loop) CameraAngles() (pitch, yaw float64) {
	override := 0.0
	if l.mode == ThirdPerson {
		override = l.cfg.ThirdPersonLook.AngleOverride
	}
	return orientation.CameraAngles(&l.orient, override)
}

func (l *Loop) frame() *input.Frame {
	if l.source == nil {
		l.warnOnce("input", "input source missing, frame skipped")
		return nil
	}
	frame := l.source.Frame()
	if frame == nil {
		l.warnOnce("frame", "input source returned nil frame, frame skipped")
	}
	return frame
}

func (l *Loop) modeConfig() ModeConfig {
	if l.mode == ThirdPerson {
		return l.cfg.ThirdPerson
	}
	return l.cfg.FirstPerson
}

func (l *Loop) rig(mode ViewMode) CameraRig {
	if mode == ThirdPerson {
		return l.tpRig
	}
	return l.fpRig
}

func otherMode(mode ViewMode) ViewMode {
	if mode == ThirdPerson {
		return FirstPerson
	}
	return ThirdPerson
}

func (l *Loop) publishAnimation(frame *input.Frame) {
	if l.sink == nil {
		return
	}
	l.sink.SetFloat(anim.ParamSpeed, l.motion.AnimationBlend)
	l.sink.SetFloat(anim.ParamDirection, direction(frame))
	l.sink.SetFloat(anim.ParamMotionSpeed, l.motion.InputMagnitude)
	l.sink.SetBool(anim.ParamGrounded, l.grounded)
	l.sink.SetBool(anim.ParamJump, l.vertical.Jumping)
	l.sink.SetBool(anim.ParamFreeFall, l.vertical.FreeFalling)
}

func direction(frame *input.Frame) float64 {
	switch {
	case frame.Move.Y() > 0:
		return 1
	case frame.Move.Y() < 0:
		return -1
	default:
		return 0
	}
}

// warnOnce reports a configuration defect a single time per key. The
// per-frame pipeline keeps running; the condition is re-checked fresh each
// frame and self-heals once corrected.
func (l *Loop) warnOnce(key, msg string, args ...any) {
	if l.warned[key] {
		return
	}
	l.warned[key] = true
	slog.Warn(msg, args...)
	if l.diag != nil {
		l.diag(msg)
	}
}
