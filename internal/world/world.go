// Package world is a static collision world of axis-aligned boxes. It
// implements the ground-probe and displacement primitives the controller
// depends on, resolving movement one axis at a time.
package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/mathx"
)

const (
	// groundPlaneDepth is the thickness of the implicit ground slab built
	// from WorldConfig.GroundY.
	groundPlaneDepth = 10.0
	// groundPlaneExtent bounds the implicit ground slab horizontally.
	groundPlaneExtent = 10000.0
)

// Box is one static collider. Trigger boxes are volumes that report nothing
// to probes and never block movement.
type Box struct {
	Min, Max mgl64.Vec3
	Layers   locomotion.LayerMask
	Trigger  bool
}

// CharacterSize is the character's collision volume, an axis-aligned box
// around the feet position: half Width to each side, Height upward.
type CharacterSize struct {
	Width  float64
	Height float64
}

type World struct {
	boxes     []Box
	character CharacterSize
}

func New(character CharacterSize, boxes ...Box) *World {
	return &World{boxes: boxes, character: character}
}

// NewFromConfig builds the demo world: an implicit ground slab at GroundY
// plus the configured boxes, all on the ground and obstacle layers.
func NewFromConfig(wc config.WorldConfig, character CharacterSize) *World {
	boxes := []Box{{
		Min:    mgl64.Vec3{-groundPlaneExtent, wc.GroundY - groundPlaneDepth, -groundPlaneExtent},
		Max:    mgl64.Vec3{groundPlaneExtent, wc.GroundY, groundPlaneExtent},
		Layers: locomotion.GroundLayer | locomotion.ObstacleLayer,
	}}
	for _, b := range wc.Boxes {
		layers := locomotion.GroundLayer | locomotion.ObstacleLayer
		if b.Trigger {
			layers = locomotion.TriggerLayer
		}
		boxes = append(boxes, Box{
			Min:     mgl64.Vec3{b.Min[0], b.Min[1], b.Min[2]},
			Max:     mgl64.Vec3{b.Max[0], b.Max[1], b.Max[2]},
			Layers:  layers,
			Trigger: b.Trigger,
		})
	}
	return New(character, boxes...)
}

// Boxes returns the static colliders, for debug rendering.
func (w *World) Boxes() []Box { return w.boxes }

// Overlaps reports whether a sphere intersects any non-trigger box on the
// given layers. Implements locomotion.GroundProbe.
func (w *World) Overlaps(center mgl64.Vec3, radius float64, mask locomotion.LayerMask) bool {
	for _, box := range w.boxes {
		if box.Trigger || box.Layers&mask == 0 {
			continue
		}
		if sphereIntersectsBox(center, radius, box) {
			return true
		}
	}
	return false
}

// Move resolves a displacement of the character volume, one axis at a time
// with vertical first, and returns the realized delta. Implements
// locomotion.Mover.
func (w *World) Move(from, delta mgl64.Vec3) mgl64.Vec3 {
	pos := from
	var realized mgl64.Vec3
	for _, axis := range [...]int{1, 0, 2} {
		d := w.resolveAxis(pos, delta[axis], axis)
		pos[axis] += d
		realized[axis] = d
	}
	return realized
}

func (w *World) resolveAxis(pos mgl64.Vec3, delta float64, axis int) float64 {
	if delta == 0 {
		return 0
	}
	bodyMin, bodyMax := w.characterBounds(pos)
	allowed := delta

	for _, box := range w.boxes {
		if box.Trigger {
			continue
		}
		if !overlapsCrossAxes(bodyMin, bodyMax, box, axis) {
			continue
		}
		if delta > 0 {
			gap := box.Min[axis] - bodyMax[axis]
			if gap >= delta || gap < 0 {
				continue
			}
			if gap < allowed {
				allowed = gap
			}
		} else {
			gap := box.Max[axis] - bodyMin[axis]
			if gap <= delta || gap > 0 {
				continue
			}
			if gap > allowed {
				allowed = gap
			}
		}
	}
	return allowed
}

func (w *World) characterBounds(pos mgl64.Vec3) (min, max mgl64.Vec3) {
	half := w.character.Width / 2
	min = mgl64.Vec3{pos.X() - half, pos.Y(), pos.Z() - half}
	max = mgl64.Vec3{pos.X() + half, pos.Y() + w.character.Height, pos.Z() + half}
	return min, max
}

// overlapsCrossAxes checks overlap on the two axes other than the one being
// resolved, so a box beside the character never clamps vertical movement.
func overlapsCrossAxes(bodyMin, bodyMax mgl64.Vec3, box Box, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if bodyMax[i] <= box.Min[i] || bodyMin[i] >= box.Max[i] {
			return false
		}
	}
	return true
}

func sphereIntersectsBox(center mgl64.Vec3, radius float64, box Box) bool {
	var closest mgl64.Vec3
	for i := 0; i < 3; i++ {
		closest[i] = mathx.Clamp(center[i], box.Min[i], box.Max[i])
	}
	diff := center.Sub(closest)
	return diff.Dot(diff) <= radius*radius
}
