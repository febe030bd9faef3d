// Package clipforge provides a Go library for automatic highlight extraction
// and short-form re-encoding of video files.
//
// Clipforge is an opinionated FFmpeg wrapper that finds the most intense
// moments of a video by scoring inter-frame motion, cuts a randomized clip
// window around the best segment, and re-encodes it for short-form delivery
// with optional portrait reframing, audio overlay, and burned-in captions.
//
// Basic usage:
//
//	engine, err := clipforge.New(
//	    clipforge.WithDurationBounds(15, 60),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.Process(ctx, "input.mp4", clipforge.ProcessOptions{
//	    OutputDir: "clips/",
//	    Caption:   "unbelievable finish",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Clipped: %s (%.1fs-%.1fs)\n",
//	    result.OutputPath, result.ClipStart, result.ClipEnd)
package clipforge

import (
	"context"
	"fmt"
	"time"

	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/discovery"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/processing"
	"github.com/clipforge/clipforge/internal/reporter"
	"github.com/clipforge/clipforge/internal/util"
)

// Reporter receives progress events during processing.
type Reporter = reporter.Reporter

// Engine is the main entry point for clip extraction.
type Engine struct {
	config *config.Config
	seed   *uint64
}

// Result contains the result of a single file clip.
type Result struct {
	OutputPath     string
	ClipStart      float64
	ClipEnd        float64
	Reason         string
	SourceDuration float64
	StagesApplied  []string
	Warnings       []string
}

// BatchResult contains the result of a batch run.
type BatchResult struct {
	Results         []Result
	SuccessfulCount int
	TotalFiles      int
}

// Candidate describes one detected high-intensity segment.
type Candidate struct {
	Start  float64
	End    float64
	Score  float64
	Reason string
}

// AnalysisResult contains detection output without any transform.
type AnalysisResult struct {
	SourceDuration float64
	Candidates     []Candidate
}

// ProcessOptions carries per-call inputs for Process and ProcessBatch.
type ProcessOptions struct {
	// OutputDir overrides the engine's configured output directory.
	OutputDir string

	// OutputName overrides the output filename for single-file runs.
	OutputName string

	Caption      string
	AudioPath    string
	ReplaceAudio bool
}

// Option configures the engine.
type Option func(*Engine)

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{config: config.NewConfig(".")}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// WithConfig replaces the engine configuration wholesale. Later options
// still apply on top of it.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithDurationBounds sets the minimum and maximum clip length in seconds.
func WithDurationBounds(minDuration, maxDuration float64) Option {
	return func(e *Engine) {
		e.config.MinDuration = minDuration
		e.config.MaxDuration = maxDuration
	}
}

// WithVertical enables or disables portrait reframing.
func WithVertical(enabled bool) Option {
	return func(e *Engine) {
		e.config.ForceVertical = enabled
	}
}

// WithTargetSize sets the portrait output frame size.
func WithTargetSize(width, height int) Option {
	return func(e *Engine) {
		e.config.TargetWidth = width
		e.config.TargetHeight = height
	}
}

// WithMotionThreshold sets the mean-difference level above which a frame's
// score is amplified.
func WithMotionThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.config.MotionThreshold = threshold
	}
}

// WithAmplification sets the score multiplier for frames above the motion
// threshold.
func WithAmplification(factor float64) Option {
	return func(e *Engine) {
		e.config.Amplification = factor
	}
}

// WithSampleRate sets how many frames per second feed the scorer.
func WithSampleRate(samplesPerSecond float64) Option {
	return func(e *Engine) {
		e.config.SamplesPerSecond = samplesPerSecond
	}
}

// WithStageTimeout bounds each external transform call.
func WithStageTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.config.StageTimeout = d
	}
}

// WithSeed pins the selector's randomness for reproducible clip windows.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// Process extracts and re-encodes one clip from a single video file.
func (e *Engine) Process(ctx context.Context, input string, opts ProcessOptions) (*Result, error) {
	return e.ProcessWithReporter(ctx, input, opts, nil)
}

// ProcessWithReporter is Process with a custom progress reporter.
func (e *Engine) ProcessWithReporter(ctx context.Context, input string, opts ProcessOptions, rep Reporter) (*Result, error) {
	cfg, err := e.runConfig(opts)
	if err != nil {
		return nil, err
	}

	results, err := processing.ProcessVideos(ctx, cfg, []string{input}, opts.OutputName,
		clipOptions(opts, e.seed), rep)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no clip was produced from %s", input)
	}

	r := toResult(results[0])
	return &r, nil
}

// ProcessBatch extracts one clip from each of the given video files.
func (e *Engine) ProcessBatch(ctx context.Context, inputs []string, opts ProcessOptions, rep Reporter) (*BatchResult, error) {
	cfg, err := e.runConfig(opts)
	if err != nil {
		return nil, err
	}

	results, err := processing.ProcessVideos(ctx, cfg, inputs, "",
		clipOptions(opts, e.seed), rep)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{TotalFiles: len(inputs)}
	for _, r := range results {
		batch.Results = append(batch.Results, toResult(r))
		batch.SuccessfulCount++
	}
	return batch, nil
}

// Analyze probes and scores a video, returning its candidate segments
// without producing a clip.
func (e *Engine) Analyze(ctx context.Context, input string) (*AnalysisResult, error) {
	return e.AnalyzeWithReporter(ctx, input, nil)
}

// AnalyzeWithReporter is Analyze with a custom progress reporter.
func (e *Engine) AnalyzeWithReporter(ctx context.Context, input string, rep Reporter) (*AnalysisResult, error) {
	candidates, duration, err := processing.AnalyzeVideo(ctx, e.config, input, rep)
	if err != nil {
		return nil, err
	}

	res := &AnalysisResult{SourceDuration: duration}
	for _, c := range candidates {
		res.Candidates = append(res.Candidates, Candidate{
			Start:  c.Start,
			End:    c.End,
			Score:  c.Score,
			Reason: string(c.Reason),
		})
	}
	return res, nil
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}

// CheckTools verifies that the required external binaries are on PATH.
func CheckTools() error {
	return ffprobe.CheckTools()
}

// runConfig copies the engine config with per-call overrides applied and
// makes sure the output directory exists.
func (e *Engine) runConfig(opts ProcessOptions) (*config.Config, error) {
	cfg := *e.config
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	if err := util.EnsureDirectory(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &cfg, nil
}

func clipOptions(opts ProcessOptions, seed *uint64) processing.ClipOptions {
	return processing.ClipOptions{
		Caption:      opts.Caption,
		AudioPath:    opts.AudioPath,
		ReplaceAudio: opts.ReplaceAudio,
		Seed:         seed,
	}
}

func toResult(r processing.ClipResult) Result {
	return Result{
		OutputPath:     r.OutputPath,
		ClipStart:      r.Segment.Start,
		ClipEnd:        r.Segment.End,
		Reason:         string(r.Segment.Reason),
		SourceDuration: r.SourceDuration,
		StagesApplied:  r.StagesApplied,
		Warnings:       r.Warnings,
	}
}
