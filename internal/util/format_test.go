package util

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds only", 45, "00:00:45"},
		{"minutes and seconds", 90.7, "00:01:30"},
		{"hours", 3725, "01:02:05"},
		{"negative", -5, "??:??:??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %v, want %v", tt.seconds, got, tt.expected)
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"integer rational", "30/1", 30},
		{"ntsc", "30000/1001", 30000.0 / 1001.0},
		{"plain number", "25", 25},
		{"zero denominator", "30/0", 0},
		{"garbage", "x/y", 0},
		{"too many parts", "1/2/3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFrameRate(tt.input); got != tt.expected {
				t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		dir      string
		override string
		expected string
	}{
		{"default name", "/videos/storm.mp4", "/out", "", "/out/storm_clip.mp4"},
		{"override", "/videos/storm.mp4", "/out", "final.mp4", "/out/final.mp4"},
		{"strips extension", "/videos/fire.rescue.mkv", "/out", "", "/out/fire.rescue_clip.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOutputPath(tt.input, tt.dir, tt.override); got != tt.expected {
				t.Errorf("ResolveOutputPath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetFileStem(t *testing.T) {
	if got := GetFileStem("/a/b/video.mp4"); got != "video" {
		t.Errorf("GetFileStem() = %v, want video", got)
	}
	if got := GetFileStem("noext"); got != "noext" {
		t.Errorf("GetFileStem() = %v, want noext", got)
	}
}
