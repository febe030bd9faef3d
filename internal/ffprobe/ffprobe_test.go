package ffprobe

import (
	"encoding/json"
	"testing"

	"github.com/clipforge/clipforge/internal/errors"
)

func decodeJSON(t *testing.T, raw string) *ffprobeOutput {
	t.Helper()
	var out ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}
	return &out
}

func TestDecodeInfo(t *testing.T) {
	raw := `{
		"format": {"duration": "92.5"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
			 "r_frame_rate": "30000/1001", "nb_frames": "2772"},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`

	info, err := decodeInfo(decodeJSON(t, raw), "in.mp4")
	if err != nil {
		t.Fatalf("decodeInfo() error = %v", err)
	}

	if info.Duration != 92.5 {
		t.Errorf("Duration = %v, want 92.5", info.Duration)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %v, want h264", info.VideoCodec)
	}
	wantFPS := 30000.0 / 1001.0
	if info.FPS != wantFPS {
		t.Errorf("FPS = %v, want %v", info.FPS, wantFPS)
	}
	if info.TotalFrames != 2772 {
		t.Errorf("TotalFrames = %v, want 2772", info.TotalFrames)
	}
	if !info.HasAudio || info.AudioCodec != "aac" {
		t.Errorf("audio = (%v, %q), want (true, aac)", info.HasAudio, info.AudioCodec)
	}
}

func TestDecodeInfoUsesFirstVideoStream(t *testing.T) {
	raw := `{
		"format": {"duration": "10"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "r_frame_rate": "25/1"},
			{"codec_type": "video", "codec_name": "mjpeg", "width": 320, "height": 240, "r_frame_rate": "1/1"}
		]
	}`

	info, err := decodeInfo(decodeJSON(t, raw), "in.mp4")
	if err != nil {
		t.Fatalf("decodeInfo() error = %v", err)
	}
	if info.Width != 1280 || info.VideoCodec != "h264" {
		t.Errorf("expected first video stream, got %dx%d %s", info.Width, info.Height, info.VideoCodec)
	}
	if info.HasAudio {
		t.Error("expected HasAudio=false")
	}
}

func TestDecodeInfoEstimatesFrameCount(t *testing.T) {
	raw := `{
		"format": {"duration": "20"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "r_frame_rate": "30/1"}
		]
	}`

	info, err := decodeInfo(decodeJSON(t, raw), "in.mp4")
	if err != nil {
		t.Fatalf("decodeInfo() error = %v", err)
	}
	if info.TotalFrames != 600 {
		t.Errorf("TotalFrames = %v, want 600 (estimated from duration and fps)", info.TotalFrames)
	}
}

func TestDecodeInfoNoVideoStream(t *testing.T) {
	raw := `{"format": {"duration": "10"}, "streams": [{"codec_type": "audio", "codec_name": "mp3"}]}`

	_, err := decodeInfo(decodeJSON(t, raw), "song.mp3")
	if err == nil {
		t.Fatal("decodeInfo() should fail without a video stream")
	}
	if !errors.IsKind(err, errors.KindProbe) {
		t.Errorf("expected a probe error, got %v", err)
	}
}

func TestDecodeInfoInvalidDimensions(t *testing.T) {
	raw := `{"format": {"duration": "10"}, "streams": [{"codec_type": "video", "width": 0, "height": 0}]}`

	if _, err := decodeInfo(decodeJSON(t, raw), "in.mp4"); err == nil {
		t.Fatal("decodeInfo() should fail on zero dimensions")
	}
}
