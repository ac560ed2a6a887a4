package locomotion

import "github.com/go-gl/mathgl/mgl64"

// LayerMask selects which collision layers a query considers.
type LayerMask uint32

const (
	GroundLayer LayerMask = 1 << iota
	ObstacleLayer
	TriggerLayer
)

// GroundProbe is the world-collision query the integrator depends on.
// Implementations must ignore trigger volumes.
type GroundProbe interface {
	Overlaps(center mgl64.Vec3, radius float64, mask LayerMask) bool
}

// Mover is the displacement primitive. It attempts to move the character
// from a position by a delta, resolving against world geometry, and returns
// the realized delta. It is called at most once per frame with the combined
// horizontal and vertical displacement.
type Mover interface {
	Move(from, delta mgl64.Vec3) mgl64.Vec3
}

// GroundConfig is the probe geometry, immutable during a frame.
type GroundConfig struct {
	Offset float64 // probe center sits this far below the character position
	Radius float64
	Mask   LayerMask
}

// ProbeGround recomputes groundedness from a sphere overlap below the
// character. A nil probe reports airborne.
func ProbeGround(probe GroundProbe, position mgl64.Vec3, cfg GroundConfig) bool {
	if probe == nil {
		return false
	}
	center := mgl64.Vec3{position.X(), position.Y() - cfg.Offset, position.Z()}
	return probe.Overlaps(center, cfg.Radius, cfg.Mask)
}
