// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"

	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/util"
)

// MediaInfo contains the probed properties of a media file.
type MediaInfo struct {
	Duration    float64 // seconds
	Width       int
	Height      int
	FPS         float64
	TotalFrames uint64
	VideoCodec  string
	HasAudio    bool
	AudioCodec  string
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(ctx context.Context, inputPath string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCommandTimeoutError("ffprobe", ctx.Err())
		}
		return nil, errors.NewProbeError("ffprobe failed", err)
	}

	var result ffprobeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, errors.NewProbeError("failed to parse ffprobe output", err)
	}

	return &result, nil
}

// Probe returns media information for a file. A missing video stream or
// unparsable dimensions yield a probe error; the caller decides whether to
// fall back to duration-only detection.
func Probe(ctx context.Context, inputPath string) (*MediaInfo, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return decodeInfo(probe, inputPath)
}

// decodeInfo maps raw ffprobe output to MediaInfo.
func decodeInfo(probe *ffprobeOutput, inputPath string) (*MediaInfo, error) {
	info := &MediaInfo{}

	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	var sawVideo bool
	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if sawVideo {
				continue
			}
			sawVideo = true
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName
			if stream.RFrameRate != "" {
				info.FPS = util.ParseFrameRate(stream.RFrameRate)
			}
			if stream.NbFrames != "" {
				if frames, err := strconv.ParseUint(stream.NbFrames, 10, 64); err == nil {
					info.TotalFrames = frames
				}
			}
		case "audio":
			info.HasAudio = true
			if info.AudioCodec == "" {
				info.AudioCodec = stream.CodecName
			}
		}
	}

	// Many containers omit nb_frames; estimate from duration and fps.
	if info.TotalFrames == 0 && info.Duration > 0 && info.FPS > 0 {
		info.TotalFrames = uint64(info.Duration * info.FPS)
	}

	if !sawVideo {
		return nil, errors.NewProbeError("no video stream found in "+inputPath, nil)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, errors.NewProbeError("invalid dimensions in "+inputPath, nil)
	}

	return info, nil
}

// CheckTools verifies that ffmpeg and ffprobe are present in PATH.
func CheckTools() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			return errors.NewCommandStartError(tool, err)
		}
	}
	return nil
}
