package mathx

import "math"

// ClampAngle wraps angle into [-360, 360] by a single 360 correction, then
// clamps it into [min, max]. It is a narrow wrap for values already within
// roughly two rotations, not a general normalizer. Passing infinite bounds
// degenerates to the wrap-only behavior.
func ClampAngle(angle, min, max float64) float64 {
	if angle < -360 {
		angle += 360
	}
	if angle > 360 {
		angle -= 360
	}
	return Clamp(angle, min, max)
}

// NormalizeAngle wraps angle into (-180, 180].
func NormalizeAngle(angle float64) float64 {
	for angle <= -180 {
		angle += 360
	}
	for angle > 180 {
		angle -= 360
	}
	return angle
}

// SignedAngleDelta returns the shortest signed rotation from one angle to
// another, in (-180, 180].
func SignedAngleDelta(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards advances current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// SmoothDampAngle moves current toward target along the shortest arc using a
// critically damped spring. velocity is scratch state carried between frames.
// Returns the new angle and the updated velocity.
func SmoothDampAngle(current, target float64, velocity float64, smoothTime, dt float64) (float64, float64) {
	target = current + SignedAngleDelta(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}

// SmoothDamp is the scalar critically damped spring underlying
// SmoothDampAngle. The approximation of exp(-omega*dt) follows the common
// game-math polynomial form.
func SmoothDamp(current, target float64, velocity float64, smoothTime, dt float64) (float64, float64) {
	if smoothTime < 1e-4 {
		smoothTime = 1e-4
	}
	omega := 2.0 / smoothTime
	x := omega * dt
	exp := 1.0 / (1.0 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	origTarget := target
	target = current - change

	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// Prevent overshooting past the original target.
	if (origTarget-current > 0) == (out > origTarget) {
		out = origTarget
		if dt > 0 {
			velocity = (out - origTarget) / dt
		}
	}
	return out, velocity
}
