package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// YawToDir returns the unit forward vector for a yaw given in degrees, using
// the 0° = +Z, 90° = +X convention.
func YawToDir(yawDeg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yawDeg)
	return mgl64.Vec3{math.Sin(r), 0, math.Cos(r)}
}

// YawToRight returns the unit right vector for a yaw given in degrees.
func YawToRight(yawDeg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yawDeg)
	return mgl64.Vec3{math.Cos(r), 0, -math.Sin(r)}
}

// HeadingDeg returns the yaw, in degrees, of the horizontal components of v.
// A zero horizontal vector yields 0.
func HeadingDeg(v mgl64.Vec3) float64 {
	if v.X() == 0 && v.Z() == 0 {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(v.X(), v.Z()))
}

// Flatten projects v onto the horizontal plane and normalizes it. A vector
// with no horizontal component returns the zero vector.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	flat := mgl64.Vec3{v.X(), 0, v.Z()}
	if flat.Len() == 0 {
		return mgl64.Vec3{}
	}
	return flat.Normalize()
}
