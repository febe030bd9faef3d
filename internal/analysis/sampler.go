// Package analysis samples decoded video frames and scores inter-frame
// intensity to locate high-impact moments.
package analysis

import (
	"context"
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/ffmpeg"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/logging"
)

// FrameSample is one analyzed instant: a downscaled grayscale frame with its
// source timestamp. Samples are transient; only the derived (timestamp,
// score) pair outlives the scoring pass.
type FrameSample struct {
	Index     int
	Timestamp float64
	Pixels    []byte
}

// FrameSource is a lazy, finite, forward-only sequence of frame samples with
// strictly increasing timestamps. Next returns io.EOF when exhausted.
type FrameSource interface {
	Next() (*FrameSample, error)
	Close() error
}

// Params controls sampling geometry and rate.
type Params struct {
	SamplesPerSecond float64
	Width            int
	Height           int
}

// Stride converts a native frame rate into a frame step so that roughly
// samplesPerSecond frames survive. Never below 1.
func Stride(fps, samplesPerSecond float64) int {
	if samplesPerSecond <= 0 {
		samplesPerSecond = 1
	}
	stride := int(math.Round(fps / samplesPerSecond))
	if stride < 1 {
		stride = 1
	}
	return stride
}

// Sampler walks a video at a fixed temporal stride via an ffmpeg grayscale
// rawvideo pipe. It holds one in-flight frame at a time.
type Sampler struct {
	pipe      *ffmpeg.Pipe
	frameSize int
	interval  float64
	index     int
	closed    bool
	logger    zerolog.Logger
}

// NewSampler opens a sampling pipe over the source. Fails with a decode
// error when the frame rate is unknown, in which case the caller must fall
// back to duration-only segment detection.
func NewSampler(ctx context.Context, input string, info *ffprobe.MediaInfo, p Params) (*Sampler, error) {
	if info == nil || info.FPS <= 0 {
		return nil, errors.NewDecodeError("unknown frame rate for "+input, nil)
	}

	stride := Stride(info.FPS, p.SamplesPerSecond)

	exec := ffmpeg.NewExecutor()
	pipe, err := exec.StartPipe(ctx, ffmpeg.BuildSampleArgs(input, stride, p.Width, p.Height))
	if err != nil {
		return nil, errors.NewDecodeError("cannot open "+input, err)
	}

	logger := logging.WithComponent("sampler")
	logger.Debug().
		Str("input", input).
		Int("stride", stride).
		Float64("fps", info.FPS).
		Msg("sampling started")

	return &Sampler{
		pipe:      pipe,
		frameSize: p.Width * p.Height,
		interval:  float64(stride) / info.FPS,
		logger:    logger,
	}, nil
}

// Next reads one grayscale frame. Returns io.EOF after the last frame. Each
// call allocates a fresh pixel buffer so the scorer may retain the previous
// sample.
func (s *Sampler) Next() (*FrameSample, error) {
	if s.closed {
		return nil, io.EOF
	}

	buf := make([]byte, s.frameSize)
	if _, err := io.ReadFull(s.pipe.Stdout, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, errors.NewDecodeError("frame read failed", err)
	}

	sample := &FrameSample{
		Index:     s.index,
		Timestamp: float64(s.index) * s.interval,
		Pixels:    buf,
	}
	s.index++
	return sample, nil
}

// Close reaps the decoding process.
func (s *Sampler) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.pipe.Close()
}
