package ffmpeg

import (
	"context"
	"time"

	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/util"
)

// Transcoder is the concrete ffmpeg-backed implementation of the transform
// pipeline's transcoder capability: trim, reframe, audio mux, text burn-in.
type Transcoder struct {
	exec    *Executor
	timeout time.Duration
}

// NewTranscoder creates a transcoder with a per-call wall-clock timeout.
func NewTranscoder(timeout time.Duration) *Transcoder {
	return &Transcoder{exec: NewExecutor(), timeout: timeout}
}

// Trim cuts [start, start+duration) from input into output.
func (t *Transcoder) Trim(ctx context.Context, input, output string, start, duration float64) error {
	if err := t.exec.Run(ctx, t.timeout, BuildTrimArgs(input, output, start, duration)); err != nil {
		return err
	}
	return t.requireOutput(output)
}

// Reframe converts input to the target aspect ratio by crop-to-fill.
func (t *Transcoder) Reframe(ctx context.Context, input, output string, srcW, srcH, dstW, dstH int) error {
	if err := t.exec.Run(ctx, t.timeout, BuildReframeArgs(input, output, srcW, srcH, dstW, dstH)); err != nil {
		return err
	}
	return t.requireOutput(output)
}

// MixAudio overlays audio onto input, either ducked under the original track
// or fully replacing it.
func (t *Transcoder) MixAudio(ctx context.Context, input, audio, output string, originalVolume float64, replace bool) error {
	var args []string
	if replace {
		args = BuildAudioReplaceArgs(input, audio, output)
	} else {
		args = BuildAudioMixArgs(input, audio, output, originalVolume)
	}
	if err := t.exec.Run(ctx, t.timeout, args); err != nil {
		return err
	}
	return t.requireOutput(output)
}

// BurnText renders caption lines into the video frame.
func (t *Transcoder) BurnText(ctx context.Context, input, output string, lines []string, frameHeight int) error {
	if err := t.exec.Run(ctx, t.timeout, BuildDrawTextArgs(input, output, lines, frameHeight)); err != nil {
		return err
	}
	return t.requireOutput(output)
}

// requireOutput guards against ffmpeg exiting zero without producing a file.
func (t *Transcoder) requireOutput(path string) error {
	if !util.FileExists(path) {
		return errors.NewIOError("encode produced no output file: "+path, nil)
	}
	return nil
}
