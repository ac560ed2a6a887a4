package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Tuning  Tuning        `yaml:"tuning"`
	Audio   AudioConfig   `yaml:"audio"`
	World   WorldConfig   `yaml:"world"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Tuning is the designer-tunable controller configuration. It is immutable
// during a frame and may be live-edited between frames via Watch.
type Tuning struct {
	FirstPerson ModeTuning   `yaml:"first_person"`
	ThirdPerson ModeTuning   `yaml:"third_person"`
	Ground      GroundTuning `yaml:"ground"`
}

type ModeTuning struct {
	MoveSpeed           float64 `yaml:"move_speed"`
	SprintSpeed         float64 `yaml:"sprint_speed"`
	RotationSpeed       float64 `yaml:"rotation_speed"`
	RotationSmoothTime  float64 `yaml:"rotation_smooth_time"`
	SpeedChangeRate     float64 `yaml:"speed_change_rate"`
	JumpHeight          float64 `yaml:"jump_height"`
	Gravity             float64 `yaml:"gravity"`
	JumpTimeout         float64 `yaml:"jump_timeout"`
	FallTimeout         float64 `yaml:"fall_timeout"`
	TopClamp            float64 `yaml:"top_clamp"`
	BottomClamp         float64 `yaml:"bottom_clamp"`
	CameraAngleOverride float64 `yaml:"camera_angle_override"`
}

type GroundTuning struct {
	Offset float64 `yaml:"offset"`
	Radius float64 `yaml:"radius"`
}

type AudioConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Volume         float64 `yaml:"volume"`
	RolloffPerUnit float64 `yaml:"rolloff_per_unit"`
}

// WorldConfig describes the demo collision world: a ground plane height plus
// static boxes.
type WorldConfig struct {
	GroundY float64     `yaml:"ground_y"`
	Boxes   []BoxConfig `yaml:"boxes"`
}

type BoxConfig struct {
	Min     [3]float64 `yaml:"min"`
	Max     [3]float64 `yaml:"max"`
	Trigger bool       `yaml:"trigger"`
}

// Default returns the tuning the controller ships with.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Tuning: Tuning{
			FirstPerson: ModeTuning{
				MoveSpeed:       4.0,
				SprintSpeed:     6.0,
				RotationSpeed:   1.0,
				SpeedChangeRate: 10.0,
				JumpHeight:      1.2,
				Gravity:         -15.0,
				JumpTimeout:     0.1,
				FallTimeout:     0.15,
				TopClamp:        90.0,
				BottomClamp:     -90.0,
			},
			ThirdPerson: ModeTuning{
				MoveSpeed:          2.0,
				SprintSpeed:        5.335,
				RotationSmoothTime: 0.12,
				SpeedChangeRate:    10.0,
				JumpHeight:         1.2,
				Gravity:            -15.0,
				JumpTimeout:        0.5,
				FallTimeout:        0.15,
				TopClamp:           70.0,
				BottomClamp:        -30.0,
			},
			Ground: GroundTuning{Offset: 0.14, Radius: 0.28},
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5, RolloffPerUnit: 0.25},
		World: WorldConfig{GroundY: 0},
	}
}

// Load reads and validates a config file. Values omitted from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Tuning.FirstPerson.validate("first_person"); err != nil {
		return err
	}
	if err := c.Tuning.ThirdPerson.validate("third_person"); err != nil {
		return err
	}
	if c.Tuning.Ground.Radius <= 0 {
		return fmt.Errorf("ground.radius must be positive, got %v", c.Tuning.Ground.Radius)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1], got %v", c.Audio.Volume)
	}
	return nil
}

func (m ModeTuning) validate(name string) error {
	if m.MoveSpeed < 0 || m.SprintSpeed < m.MoveSpeed {
		return fmt.Errorf("%s: need 0 <= move_speed <= sprint_speed, got %v/%v", name, m.MoveSpeed, m.SprintSpeed)
	}
	if m.SpeedChangeRate <= 0 {
		return fmt.Errorf("%s: speed_change_rate must be positive, got %v", name, m.SpeedChangeRate)
	}
	if m.Gravity >= 0 {
		return fmt.Errorf("%s: gravity must be negative, got %v", name, m.Gravity)
	}
	if m.JumpHeight < 0 {
		return fmt.Errorf("%s: jump_height must be non-negative, got %v", name, m.JumpHeight)
	}
	if m.BottomClamp > m.TopClamp {
		return fmt.Errorf("%s: bottom_clamp %v above top_clamp %v", name, m.BottomClamp, m.TopClamp)
	}
	return nil
}
