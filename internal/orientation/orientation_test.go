package orientation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func fpConfig() FirstPersonConfig {
	return FirstPersonConfig{RotationSpeed: 1.0, TopClamp: 90, BottomClamp: -90}
}

func tpConfig() ThirdPersonConfig {
	return ThirdPersonConfig{TopClamp: 70, BottomClamp: -30}
}

func TestUpdateFirstPerson_PitchStaysClamped(t *testing.T) {
	st := &State{}
	pose := &locomotion.Pose{}

	for i := 0; i < 500; i++ {
		UpdateFirstPerson(st, pose, mgl64.Vec2{0, 5}, input.PointerDevice, fpConfig(), 1.0/60.0)
		if st.Pitch < -90 || st.Pitch > 90 {
			t.Fatalf("pitch %.4f escaped clamp at frame %d", st.Pitch, i)
		}
	}
	approxEqual(t, st.Pitch, 90, 1e-9, "pinned at top clamp")
}

func TestUpdateFirstPerson_YawRotatesBodyUnclamped(t *testing.T) {
	st := &State{}
	pose := &locomotion.Pose{Yaw: 0}

	for i := 0; i < 100; i++ {
		UpdateFirstPerson(st, pose, mgl64.Vec2{5, 0}, input.PointerDevice, fpConfig(), 1.0/60.0)
	}

	approxEqual(t, pose.Yaw, 500, 1e-9, "body yaw accumulates freely")
	approxEqual(t, st.Yaw, pose.Yaw, 1e-12, "state mirrors body")
}

func TestUpdateFirstPerson_RateDeviceScalesByDt(t *testing.T) {
	st := &State{}
	pose := &locomotion.Pose{}
	dt := 1.0 / 60.0

	UpdateFirstPerson(st, pose, mgl64.Vec2{0, 6}, input.RateDevice, fpConfig(), dt)

	approxEqual(t, st.Pitch, 6*dt, 1e-12, "dt-scaled pitch")
}

func TestUpdateThirdPerson_PitchStaysClamped(t *testing.T) {
	st := &State{}

	for i := 0; i < 500; i++ {
		UpdateThirdPerson(st, mgl64.Vec2{0, -3}, input.PointerDevice, tpConfig(), 1.0/60.0)
		if st.Pitch < -30 || st.Pitch > 70 {
			t.Fatalf("pitch %.4f escaped clamp at frame %d", st.Pitch, i)
		}
	}
	approxEqual(t, st.Pitch, -30, 1e-9, "pinned at bottom clamp")
}

func TestUpdateThirdPerson_YawWrapsButNeverClamps(t *testing.T) {
	st := &State{}

	for i := 0; i < 2000; i++ {
		UpdateThirdPerson(st, mgl64.Vec2{1, 0}, input.PointerDevice, tpConfig(), 1.0/60.0)
	}

	// The single-step wrap keeps accumulated yaw inside two rotations.
	if st.Yaw < -360 || st.Yaw > 360 {
		t.Fatalf("yaw %.4f escaped the wrap window", st.Yaw)
	}
}

func TestUpdateThirdPerson_NoRotationSpeedFactor(t *testing.T) {
	st := &State{}

	UpdateThirdPerson(st, mgl64.Vec2{2, 1}, input.PointerDevice, tpConfig(), 1.0/60.0)

	approxEqual(t, st.Yaw, 2, 1e-12, "raw yaw delta")
	approxEqual(t, st.Pitch, 1, 1e-12, "raw pitch delta")
}

func TestUpdateThirdPerson_LockCameraSuppressesLook(t *testing.T) {
	st := &State{Yaw: 15, Pitch: 10}
	cfg := tpConfig()
	cfg.LockCamera = true

	UpdateThirdPerson(st, mgl64.Vec2{4, 4}, input.PointerDevice, cfg, 1.0/60.0)

	approxEqual(t, st.Yaw, 15, 1e-12, "yaw frozen")
	approxEqual(t, st.Pitch, 10, 1e-12, "pitch frozen")
}

func TestLookDeadZone_BelowThresholdLeavesAnglesUnchanged(t *testing.T) {
	// |look|^2 = 0.005, below the 0.01 threshold.
	look := mgl64.Vec2{math.Sqrt(0.005), 0}

	st := &State{Yaw: 20, Pitch: 5}
	UpdateThirdPerson(st, look, input.PointerDevice, tpConfig(), 1.0/60.0)
	approxEqual(t, st.Yaw, 20, 1e-12, "tp yaw")
	approxEqual(t, st.Pitch, 5, 1e-12, "tp pitch")

	fp := &State{Pitch: 5}
	pose := &locomotion.Pose{Yaw: 20}
	UpdateFirstPerson(fp, pose, look, input.PointerDevice, fpConfig(), 1.0/60.0)
	approxEqual(t, pose.Yaw, 20, 1e-12, "fp yaw")
	approxEqual(t, fp.Pitch, 5, 1e-12, "fp pitch")
}

func TestCameraAngles_OverrideNotStored(t *testing.T) {
	st := &State{Pitch: 10, Yaw: 30}

	pitch, yaw := CameraAngles(st, 15)

	approxEqual(t, pitch, 25, 1e-12, "effective pitch")
	approxEqual(t, yaw, 30, 1e-12, "yaw")
	approxEqual(t, st.Pitch, 10, 1e-12, "stored pitch untouched")
}
