package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stride.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "values override defaults",
			content: `logging:
  level: debug
tuning:
  third_person:
    move_speed: 3.5
    sprint_speed: 7.0
    camera_angle_override: 10
  ground:
    radius: 0.3
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
				}
				if cfg.Tuning.ThirdPerson.MoveSpeed != 3.5 {
					t.Errorf("MoveSpeed = %v, want 3.5", cfg.Tuning.ThirdPerson.MoveSpeed)
				}
				if cfg.Tuning.ThirdPerson.CameraAngleOverride != 10 {
					t.Errorf("CameraAngleOverride = %v, want 10", cfg.Tuning.ThirdPerson.CameraAngleOverride)
				}
				// Untouched fields keep defaults.
				if cfg.Tuning.FirstPerson.JumpHeight != 1.2 {
					t.Errorf("FirstPerson.JumpHeight = %v, want default 1.2", cfg.Tuning.FirstPerson.JumpHeight)
				}
				if cfg.Tuning.ThirdPerson.Gravity != -15.0 {
					t.Errorf("ThirdPerson.Gravity = %v, want default -15", cfg.Tuning.ThirdPerson.Gravity)
				}
			},
		},
		{
			name:    "empty file keeps all defaults",
			content: "",
			validate: func(t *testing.T, cfg *Config) {
				want := Default()
				if cfg.Tuning != want.Tuning {
					t.Errorf("Tuning = %+v, want defaults", cfg.Tuning)
				}
			},
		},
		{
			name:    "malformed yaml",
			content: "tuning: [oops",
			wantErr: "parse config",
		},
		{
			name: "positive gravity rejected",
			content: `tuning:
  first_person:
    gravity: 9.81
`,
			wantErr: "gravity must be negative",
		},
		{
			name: "sprint below move speed rejected",
			content: `tuning:
  third_person:
    move_speed: 6
    sprint_speed: 2
`,
			wantErr: "move_speed <= sprint_speed",
		},
		{
			name: "inverted pitch clamps rejected",
			content: `tuning:
  third_person:
    bottom_clamp: 80
    top_clamp: 70
`,
			wantErr: "bottom_clamp",
		},
		{
			name: "out of range volume rejected",
			content: `audio:
  volume: 1.5
`,
			wantErr: "audio.volume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("Load() succeeded on a missing file")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
