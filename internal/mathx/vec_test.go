package mathx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestYawToDir_CardinalDirections(t *testing.T) {
	cases := []struct {
		yaw  float64
		want mgl64.Vec3
	}{
		{0, mgl64.Vec3{0, 0, 1}},
		{90, mgl64.Vec3{1, 0, 0}},
		{180, mgl64.Vec3{0, 0, -1}},
		{-90, mgl64.Vec3{-1, 0, 0}},
	}
	for _, c := range cases {
		got := YawToDir(c.yaw)
		if got.Sub(c.want).Len() > 1e-9 {
			t.Fatalf("YawToDir(%v) = %v, want %v", c.yaw, got, c.want)
		}
	}
}

func TestYawToRight_PerpendicularToForward(t *testing.T) {
	for _, yaw := range []float64{0, 33, 90, 145, -60} {
		fwd := YawToDir(yaw)
		right := YawToRight(yaw)
		if dot := fwd.Dot(right); dot > 1e-9 || dot < -1e-9 {
			t.Fatalf("yaw %v: forward and right not perpendicular (dot=%v)", yaw, dot)
		}
	}
}

func TestHeadingDeg_RoundTripsYaw(t *testing.T) {
	for _, yaw := range []float64{0, 45, 90, 135, 179, -45, -135} {
		got := HeadingDeg(YawToDir(yaw))
		approxEqual(t, got, yaw, 1e-9, "heading")
	}
}

func TestFlatten_DropsVerticalComponent(t *testing.T) {
	got := Flatten(mgl64.Vec3{3, 5, 4})
	approxEqual(t, got.Y(), 0, 1e-12, "y")
	approxEqual(t, got.Len(), 1, 1e-12, "len")
}

func TestFlatten_VerticalOnlyIsZero(t *testing.T) {
	got := Flatten(mgl64.Vec3{0, 1, 0})
	if got.Len() != 0 {
		t.Fatalf("expected zero vector, got %v", got)
	}
}
