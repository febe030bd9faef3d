package clipforge

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if engine.config.MinDuration != 15 {
		t.Errorf("MinDuration = %v, want 15", engine.config.MinDuration)
	}
	if engine.config.MaxDuration != 60 {
		t.Errorf("MaxDuration = %v, want 60", engine.config.MaxDuration)
	}
	if !engine.config.ForceVertical {
		t.Error("ForceVertical should default to true")
	}
}

func TestNewAppliesOptions(t *testing.T) {
	engine, err := New(
		WithDurationBounds(10, 30),
		WithVertical(false),
		WithTargetSize(720, 1280),
		WithMotionThreshold(45),
		WithAmplification(2),
		WithSampleRate(4),
		WithSeed(99),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	cfg := engine.config
	if cfg.MinDuration != 10 || cfg.MaxDuration != 30 {
		t.Errorf("duration bounds = %v/%v, want 10/30", cfg.MinDuration, cfg.MaxDuration)
	}
	if cfg.ForceVertical {
		t.Error("ForceVertical should be disabled")
	}
	if cfg.TargetWidth != 720 || cfg.TargetHeight != 1280 {
		t.Errorf("target size = %dx%d, want 720x1280", cfg.TargetWidth, cfg.TargetHeight)
	}
	if cfg.MotionThreshold != 45 {
		t.Errorf("MotionThreshold = %v, want 45", cfg.MotionThreshold)
	}
	if cfg.Amplification != 2 {
		t.Errorf("Amplification = %v, want 2", cfg.Amplification)
	}
	if cfg.SamplesPerSecond != 4 {
		t.Errorf("SamplesPerSecond = %v, want 4", cfg.SamplesPerSecond)
	}
	if engine.seed == nil || *engine.seed != 99 {
		t.Errorf("seed = %v, want 99", engine.seed)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"max below min", []Option{WithDurationBounds(30, 10)}},
		{"zero min duration", []Option{WithDurationBounds(0, 60)}},
		{"odd target width", []Option{WithTargetSize(1081, 1920)}},
		{"threshold out of range", []Option{WithMotionThreshold(300)}},
		{"amplification below one", []Option{WithAmplification(0.5)}},
		{"zero sample rate", []Option{WithSampleRate(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
