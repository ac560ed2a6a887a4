package controller

import (
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/orientation"
)

// FromTuning maps the file-level tuning onto the loop's config. First person
// moves character-relative, third person camera-relative.
func FromTuning(t config.Tuning) Config {
	return Config{
		FirstPerson: ModeConfig{
			Policy:     locomotion.CharacterRelative,
			Locomotion: modeLocomotion(t.FirstPerson),
			Vertical:   modeVertical(t.FirstPerson),
		},
		ThirdPerson: ModeConfig{
			Policy:     locomotion.CameraRelative,
			Locomotion: modeLocomotion(t.ThirdPerson),
			Vertical:   modeVertical(t.ThirdPerson),
		},
		FirstPersonLook: orientation.FirstPersonConfig{
			RotationSpeed: t.FirstPerson.RotationSpeed,
			TopClamp:      t.FirstPerson.TopClamp,
			BottomClamp:   t.FirstPerson.BottomClamp,
		},
		ThirdPersonLook: orientation.ThirdPersonConfig{
			TopClamp:      t.ThirdPerson.TopClamp,
			BottomClamp:   t.ThirdPerson.BottomClamp,
			AngleOverride: t.ThirdPerson.CameraAngleOverride,
		},
		Ground: locomotion.GroundConfig{
			Offset: t.Ground.Offset,
			Radius: t.Ground.Radius,
			Mask:   locomotion.GroundLayer,
		},
	}
}

func modeLocomotion(m config.ModeTuning) locomotion.Config {
	return locomotion.Config{
		MoveSpeed:          m.MoveSpeed,
		SprintSpeed:        m.SprintSpeed,
		SpeedChangeRate:    m.SpeedChangeRate,
		RotationSmoothTime: m.RotationSmoothTime,
	}
}

func modeVertical(m config.ModeTuning) locomotion.VerticalConfig {
	return locomotion.VerticalConfig{
		JumpHeight:  m.JumpHeight,
		Gravity:     m.Gravity,
		JumpTimeout: m.JumpTimeout,
		FallTimeout: m.FallTimeout,
	}
}
