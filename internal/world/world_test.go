package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/locomotion"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func testCharacter() CharacterSize {
	return CharacterSize{Width: 0.6, Height: 1.8}
}

func floorBox() Box {
	return Box{
		Min:    mgl64.Vec3{-10, -1, -10},
		Max:    mgl64.Vec3{10, 0, 10},
		Layers: locomotion.GroundLayer | locomotion.ObstacleLayer,
	}
}

func TestMove_FallStopsOnFloor(t *testing.T) {
	w := New(testCharacter(), floorBox())

	realized := w.Move(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -2, 0})

	approxEqual(t, realized.Y(), -0.5, 1e-12, "vertical delta clamped to floor")
}

func TestMove_RestingOnFloorRealizesZeroVertical(t *testing.T) {
	w := New(testCharacter(), floorBox())

	realized := w.Move(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, -0.1, 0})

	approxEqual(t, realized.Y(), 0, 1e-12, "no sink through floor")
}

func TestMove_WallStopsHorizontalMovement(t *testing.T) {
	wall := Box{
		Min:    mgl64.Vec3{1, 0, -10},
		Max:    mgl64.Vec3{2, 3, 10},
		Layers: locomotion.ObstacleLayer,
	}
	w := New(testCharacter(), floorBox(), wall)

	realized := w.Move(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0})

	// Body half-width 0.3: the face reaches the wall at x=0.7.
	approxEqual(t, realized.X(), 0.7, 1e-12, "clamped at wall")
	approxEqual(t, realized.Z(), 0, 1e-12, "z untouched")
}

func TestMove_SlidesAlongWall(t *testing.T) {
	wall := Box{
		Min:    mgl64.Vec3{1, 0, -10},
		Max:    mgl64.Vec3{2, 3, 10},
		Layers: locomotion.ObstacleLayer,
	}
	w := New(testCharacter(), floorBox(), wall)

	realized := w.Move(mgl64.Vec3{0.7, 0, 0}, mgl64.Vec3{0.5, 0, 0.5})

	approxEqual(t, realized.X(), 0, 1e-12, "x blocked")
	approxEqual(t, realized.Z(), 0.5, 1e-12, "z keeps sliding")
}

func TestMove_CeilingStopsJump(t *testing.T) {
	ceiling := Box{
		Min:    mgl64.Vec3{-10, 2, -10},
		Max:    mgl64.Vec3{10, 3, 10},
		Layers: locomotion.ObstacleLayer,
	}
	w := New(testCharacter(), floorBox(), ceiling)

	realized := w.Move(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})

	// Head at 1.8, ceiling at 2: only 0.2 of rise is possible.
	approxEqual(t, realized.Y(), 0.2, 1e-12, "clamped at ceiling")
}

func TestMove_BoxBesideCharacterDoesNotBlockVertical(t *testing.T) {
	side := Box{
		Min:    mgl64.Vec3{5, 0, 5},
		Max:    mgl64.Vec3{6, 3, 6},
		Layers: locomotion.ObstacleLayer,
	}
	w := New(testCharacter(), side)

	realized := w.Move(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0})

	approxEqual(t, realized.Y(), -1, 1e-12, "free fall unobstructed")
}

func TestMove_TriggerBoxesNeverBlock(t *testing.T) {
	trigger := Box{
		Min:     mgl64.Vec3{1, 0, -10},
		Max:     mgl64.Vec3{2, 3, 10},
		Layers:  locomotion.TriggerLayer,
		Trigger: true,
	}
	w := New(testCharacter(), trigger)

	realized := w.Move(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0})

	approxEqual(t, realized.X(), 2, 1e-12, "trigger walked through")
}

func TestOverlaps_SphereTouchingFloor(t *testing.T) {
	w := New(testCharacter(), floorBox())

	// Probe below the feet, as the grounded check does.
	if !w.Overlaps(mgl64.Vec3{0, -0.14, 0}, 0.28, locomotion.GroundLayer) {
		t.Fatalf("probe at floor level reported airborne")
	}
	if w.Overlaps(mgl64.Vec3{0, 1.0, 0}, 0.28, locomotion.GroundLayer) {
		t.Fatalf("probe a meter up reported grounded")
	}
}

func TestOverlaps_MaskFiltersLayers(t *testing.T) {
	w := New(testCharacter(), Box{
		Min:    mgl64.Vec3{-1, -1, -1},
		Max:    mgl64.Vec3{1, 1, 1},
		Layers: locomotion.ObstacleLayer,
	})

	if w.Overlaps(mgl64.Vec3{0, 0, 0}, 0.5, locomotion.GroundLayer) {
		t.Fatalf("mask did not filter non-ground box")
	}
	if !w.Overlaps(mgl64.Vec3{0, 0, 0}, 0.5, locomotion.ObstacleLayer) {
		t.Fatalf("obstacle mask missed obstacle box")
	}
}

func TestOverlaps_IgnoresTriggerVolumes(t *testing.T) {
	w := New(testCharacter(), Box{
		Min:     mgl64.Vec3{-1, -1, -1},
		Max:     mgl64.Vec3{1, 1, 1},
		Layers:  locomotion.GroundLayer,
		Trigger: true,
	})

	if w.Overlaps(mgl64.Vec3{0, 0, 0}, 0.5, locomotion.GroundLayer) {
		t.Fatalf("trigger volume reported to probe")
	}
}

func TestNewFromConfig_GroundSlabAndBoxes(t *testing.T) {
	w := NewFromConfig(config.WorldConfig{
		GroundY: 0,
		Boxes: []config.BoxConfig{
			{Min: [3]float64{1, 0, 1}, Max: [3]float64{2, 1, 2}},
		},
	}, testCharacter())

	if !w.Overlaps(mgl64.Vec3{0, -0.14, 0}, 0.28, locomotion.GroundLayer) {
		t.Fatalf("implicit ground slab missing")
	}
	if !w.Overlaps(mgl64.Vec3{1.5, 0.5, 1.5}, 0.1, locomotion.GroundLayer) {
		t.Fatalf("configured box missing")
	}
}

func TestWorld_IntegratesWithControllerContracts(t *testing.T) {
	// The world satisfies both collaborator interfaces.
	var _ locomotion.GroundProbe = (*World)(nil)
	var _ locomotion.Mover = (*World)(nil)
}
