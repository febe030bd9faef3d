package validation

import (
	"context"
	"testing"

	"github.com/clipforge/clipforge/internal/ffprobe"
)

func probeReturning(info *ffprobe.MediaInfo) Prober {
	return func(context.Context, string) (*ffprobe.MediaInfo, error) {
		return info, nil
	}
}

func ptrF(v float64) *float64 { return &v }
func ptrB(v bool) *bool       { return &v }

func TestValidateClipAllChecksPass(t *testing.T) {
	probe := probeReturning(&ffprobe.MediaInfo{
		Duration:   17.3,
		Width:      1080,
		Height:     1920,
		VideoCodec: "h264",
		HasAudio:   true,
		AudioCodec: "aac",
	})

	result, err := ValidateClip(context.Background(), "clip.mp4", probe, Options{
		ExpectedDimensions: &[2]int{1080, 1920},
		ExpectedDuration:   ptrF(17.0),
		ExpectAudio:        ptrB(true),
	})
	if err != nil {
		t.Fatalf("ValidateClip failed: %v", err)
	}

	if !result.IsValid() {
		t.Errorf("expected valid result, steps: %+v", result.Steps())
	}
	if len(result.Steps()) != 4 {
		t.Errorf("got %d steps, want 4", len(result.Steps()))
	}
}

func TestValidateClipDimensionMismatch(t *testing.T) {
	probe := probeReturning(&ffprobe.MediaInfo{
		Duration: 17, Width: 1920, Height: 1080, VideoCodec: "h264",
	})

	result, err := ValidateClip(context.Background(), "clip.mp4", probe, Options{
		ExpectedDimensions: &[2]int{1080, 1920},
	})
	if err != nil {
		t.Fatalf("ValidateClip failed: %v", err)
	}

	if result.IsValid() {
		t.Error("expected dimension check to fail")
	}
}

func TestValidateClipDurationTolerance(t *testing.T) {
	tests := []struct {
		name     string
		actual   float64
		expected float64
		want     bool
	}{
		{"exact", 20.0, 20.0, true},
		{"within tolerance", 20.9, 20.0, true},
		{"at tolerance", 21.0, 20.0, true},
		{"beyond tolerance", 21.5, 20.0, false},
		{"short output", 14.0, 20.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := probeReturning(&ffprobe.MediaInfo{
				Duration: tt.actual, Width: 1080, Height: 1920, VideoCodec: "h264",
			})

			result, err := ValidateClip(context.Background(), "clip.mp4", probe, Options{
				ExpectedDuration: ptrF(tt.expected),
			})
			if err != nil {
				t.Fatalf("ValidateClip failed: %v", err)
			}
			if result.IsValid() != tt.want {
				t.Errorf("IsValid() = %v, want %v", result.IsValid(), tt.want)
			}
		})
	}
}

func TestValidateClipMissingAudio(t *testing.T) {
	probe := probeReturning(&ffprobe.MediaInfo{
		Duration: 17, Width: 1080, Height: 1920, VideoCodec: "h264",
	})

	result, err := ValidateClip(context.Background(), "clip.mp4", probe, Options{
		ExpectAudio: ptrB(true),
	})
	if err != nil {
		t.Fatalf("ValidateClip failed: %v", err)
	}

	if result.IsValid() {
		t.Error("expected audio check to fail")
	}
}

func TestValidateClipSkipsNilChecks(t *testing.T) {
	probe := probeReturning(&ffprobe.MediaInfo{
		Duration: 17, Width: 640, Height: 480, VideoCodec: "h264",
	})

	result, err := ValidateClip(context.Background(), "clip.mp4", probe, Options{})
	if err != nil {
		t.Fatalf("ValidateClip failed: %v", err)
	}

	if len(result.Steps()) != 1 {
		t.Errorf("got %d steps, want 1 (video stream only)", len(result.Steps()))
	}
	if !result.IsValid() {
		t.Error("expected valid result with no optional checks")
	}
}
