package ffmpeg

import (
	"fmt"
	"strconv"
)

// Encode profile constants. The output profile is a fixed policy choice:
// widely compatible H.264 video, AAC audio, fast-start layout.
const (
	VideoCodec   = "libx264"
	VideoPreset  = "fast"
	VideoCRF     = 23
	AudioCodec   = "aac"
	ClipBitrate  = "128k"
	MixBitrate   = "192k"
	FastStart    = "+faststart"
	TextFontSize = 46
	TextBorderW  = 5
	TextLinePx   = 55
)

// BuildTrimArgs cuts [start, start+duration) from the source and re-encodes
// to the standard clip profile.
func BuildTrimArgs(input, output string, start, duration float64) []string {
	return []string{
		"-ss", formatSeconds(start),
		"-i", input,
		"-t", formatSeconds(duration),
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", strconv.Itoa(VideoCRF),
		"-c:a", AudioCodec,
		"-b:a", ClipBitrate,
		"-movflags", FastStart,
		output,
	}
}

// ReframeFilter computes the scale+crop filter chain converting a srcW x srcH
// frame to dstW x dstH by crop-to-fill: scale the limiting axis to the target
// and center-crop the excess of the other. No letterbox bars, ever.
func ReframeFilter(srcW, srcH, dstW, dstH int) string {
	chain := NewVideoFilterChain()

	targetRatio := float64(dstW) / float64(dstH)
	currentRatio := float64(srcW) / float64(srcH)

	if currentRatio > targetRatio {
		// Wider than target: match height, crop the sides.
		chain.AddFilter(fmt.Sprintf("scale=-2:%d", dstH))
	} else {
		// Taller than (or equal to) target: match width, crop top/bottom.
		chain.AddFilter(fmt.Sprintf("scale=%d:-2", dstW))
	}
	chain.AddFilter(fmt.Sprintf("crop=%d:%d", dstW, dstH))

	return chain.Build()
}

// BuildReframeArgs re-encodes the input through the crop-to-fill filter.
func BuildReframeArgs(input, output string, srcW, srcH, dstW, dstH int) []string {
	return []string{
		"-i", input,
		"-vf", ReframeFilter(srcW, srcH, dstW, dstH),
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", strconv.Itoa(VideoCRF),
		"-c:a", AudioCodec,
		"-b:a", ClipBitrate,
		"-movflags", FastStart,
		output,
	}
}

// BuildAudioMixArgs ducks the original track under the overlay audio. Output
// duration follows the first (video) input; the mix stops with the shorter
// stream.
func BuildAudioMixArgs(video, audio, output string, originalVolume float64) []string {
	filter := fmt.Sprintf(
		"[0:a]volume=%s[a0];[1:a]volume=1.0[a1];[a0][a1]amix=inputs=2:duration=first[aout]",
		formatSeconds(originalVolume),
	)
	return []string{
		"-i", video,
		"-i", audio,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", AudioCodec,
		"-b:a", MixBitrate,
		"-shortest",
		output,
	}
}

// BuildAudioReplaceArgs swaps the original audio track for the overlay audio.
func BuildAudioReplaceArgs(video, audio, output string) []string {
	return []string{
		"-i", video,
		"-i", audio,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", AudioCodec,
		"-b:a", MixBitrate,
		"-shortest",
		output,
	}
}

// DrawTextFilter renders the caption lines centered on both axes with a
// heavy black stroke for contrast. Lines must already be sanitized of
// characters that break drawtext quoting.
func DrawTextFilter(lines []string, frameHeight int) string {
	chain := NewVideoFilterChain()

	totalHeight := len(lines) * TextLinePx
	yStart := (frameHeight - totalHeight) / 2

	for i, line := range lines {
		y := yStart + i*TextLinePx
		chain.AddFilter(fmt.Sprintf(
			"drawtext=text='%s':fontsize=%d:fontcolor=white:borderw=%d:bordercolor=black:x=(w-text_w)/2:y=%d",
			line, TextFontSize, TextBorderW, y,
		))
	}

	return chain.Build()
}

// BuildDrawTextArgs burns the caption lines into the video. Audio is copied
// untouched.
func BuildDrawTextArgs(input, output string, lines []string, frameHeight int) []string {
	return []string{
		"-i", input,
		"-vf", DrawTextFilter(lines, frameHeight),
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", strconv.Itoa(VideoCRF),
		"-c:a", "copy",
		output,
	}
}

// BuildSampleArgs streams downscaled grayscale frames to stdout at a fixed
// frame stride for intensity analysis.
func BuildSampleArgs(input string, framestep, width, height int) []string {
	return []string{
		"-i", input,
		"-vf", fmt.Sprintf("framestep=%d,scale=%d:%d,format=gray", framestep, width, height),
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"-",
	}
}

// formatSeconds renders a float without trailing zero noise, matching how
// ffmpeg expects plain decimal seconds.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
