package mathx

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestClampAngle_SingleStepWrap(t *testing.T) {
	approxEqual(t, ClampAngle(370, math.Inf(-1), math.Inf(1)), 10, 1e-12, "wrap above")
	approxEqual(t, ClampAngle(-370, math.Inf(-1), math.Inf(1)), -10, 1e-12, "wrap below")
	// Single correction only, by contract.
	approxEqual(t, ClampAngle(730, math.Inf(-1), math.Inf(1)), 370, 1e-12, "single step")
}

func TestClampAngle_ClampsAfterWrap(t *testing.T) {
	approxEqual(t, ClampAngle(400, -30, 70), 40, 1e-12, "wrapped within bounds")
	approxEqual(t, ClampAngle(100, -30, 70), 70, 1e-12, "top clamp")
	approxEqual(t, ClampAngle(-100, -30, 70), -30, 1e-12, "bottom clamp")
}

func TestClampAngle_InfiniteBoundsIsWrapOnly(t *testing.T) {
	approxEqual(t, ClampAngle(359.5, math.Inf(-1), math.Inf(1)), 359.5, 1e-12, "in range untouched")
}

func TestNormalizeAngle(t *testing.T) {
	approxEqual(t, NormalizeAngle(270), -90, 1e-12, "270")
	approxEqual(t, NormalizeAngle(-270), 90, 1e-12, "-270")
	approxEqual(t, NormalizeAngle(180), 180, 1e-12, "180 stays")
	approxEqual(t, NormalizeAngle(-180), 180, 1e-12, "-180 wraps to 180")
}

func TestSignedAngleDelta_ShortestArc(t *testing.T) {
	approxEqual(t, SignedAngleDelta(10, 350), -20, 1e-12, "crosses zero backward")
	approxEqual(t, SignedAngleDelta(350, 10), 20, 1e-12, "crosses zero forward")
}

func TestMoveTowards(t *testing.T) {
	approxEqual(t, MoveTowards(0, 6, 1), 1, 1e-12, "bounded step")
	approxEqual(t, MoveTowards(5.5, 6, 1), 6, 1e-12, "snaps within step")
	approxEqual(t, MoveTowards(6, 0, 1), 5, 1e-12, "descending")
}

func TestSmoothDampAngle_ConvergesWithoutOvershoot(t *testing.T) {
	current, velocity := 0.0, 0.0
	for i := 0; i < 600; i++ {
		current, velocity = SmoothDampAngle(current, 90, velocity, 0.12, 1.0/60.0)
		if current > 90+1e-9 {
			t.Fatalf("overshoot at step %d: %.8f", i, current)
		}
	}
	approxEqual(t, current, 90, 1e-3, "converged angle")
}

func TestSmoothDampAngle_TakesShortestArc(t *testing.T) {
	// 350 -> 10 should rotate forward through 360, not backward through 180.
	current, velocity := 350.0, 0.0
	next, _ := SmoothDampAngle(current, 10, velocity, 0.12, 1.0/60.0)
	if next <= current {
		t.Fatalf("expected rotation past 350, got %.4f", next)
	}
}
