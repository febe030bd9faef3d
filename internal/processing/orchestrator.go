// Package processing orchestrates analysis, selection, and transforms for
// each input file.
package processing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/clipforge/clipforge/internal/analysis"
	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/ffmpeg"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/reporter"
	"github.com/clipforge/clipforge/internal/segment"
	"github.com/clipforge/clipforge/internal/transform"
	"github.com/clipforge/clipforge/internal/util"
	"github.com/clipforge/clipforge/internal/validation"
)

// ClipOptions carries per-run clip inputs that are not configuration.
type ClipOptions struct {
	Caption      string
	AudioPath    string
	ReplaceAudio bool

	// Seed pins the selector's randomness when set.
	Seed *uint64
}

// ClipResult contains the result of a single file clip.
type ClipResult struct {
	Filename       string
	OutputPath     string
	Segment        segment.Segment
	SourceDuration float64
	InputSize      uint64
	OutputSize     uint64
	Elapsed        time.Duration
	StagesApplied  []string
	Warnings       []string
}

// ProcessVideos orchestrates clipping for a list of video files.
func ProcessVideos(
	ctx context.Context,
	cfg *config.Config,
	filesToProcess []string,
	targetFilenameOverride string,
	opts ClipOptions,
	rep reporter.Reporter,
) ([]ClipResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	var results []ClipResult

	sysInfo := util.GetSystemInfo()
	rep.Hardware(reporter.HardwareSummary{
		Hostname: sysInfo.Hostname,
	})

	if len(filesToProcess) > 1 {
		var fileNames []string
		for _, f := range filesToProcess {
			fileNames = append(fileNames, util.GetFilename(f))
		}
		rep.BatchStarted(reporter.BatchStartInfo{
			TotalFiles: len(filesToProcess),
			FileList:   fileNames,
			OutputDir:  cfg.OutputDir,
		})
	}

	rng := newRNG(opts.Seed)
	selector := segment.NewSelector(cfg.MinDuration, cfg.MaxDuration, rng)

	tc := ffmpeg.NewTranscoder(cfg.StageTimeout)
	pipeline := transform.NewPipeline(tc, boundedProbe(cfg.ProbeTimeout), cfg)
	pipeline.OnStage = func(stage string) {
		rep.StageProgress(reporter.StageUpdate{Stage: stage})
	}

	for fileIdx, inputPath := range filesToProcess {
		// Check for cancellation before starting each file
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Processing cancelled: %v", ctx.Err()))
			break
		}

		fileStartTime := time.Now()

		if len(filesToProcess) > 1 {
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: fileIdx + 1,
				TotalFiles:  len(filesToProcess),
			})
		}

		inputFilename := util.GetFilename(inputPath)

		override := ""
		if len(filesToProcess) == 1 && targetFilenameOverride != "" {
			override = targetFilenameOverride
		}
		outputPath := util.ResolveOutputPath(inputPath, cfg.OutputDir, override)

		if util.FileExists(outputPath) {
			rep.Warning(fmt.Sprintf("Output file already exists: %s. Skipping.", outputPath))
			continue
		}

		var warnings []string

		// A failed probe degrades to the fallback window rather than
		// aborting the file.
		info, err := boundedProbe(cfg.ProbeTimeout)(ctx, inputPath)
		duration := cfg.MaxDuration
		if err != nil {
			if errors.IsCancelled(err) {
				rep.Warning(fmt.Sprintf("Processing cancelled: %v", ctx.Err()))
				break
			}
			warnings = append(warnings, fmt.Sprintf("probe failed: %v", err))
			info = nil
		} else {
			duration = info.Duration
		}

		rep.SourceInfo(sourceSummary(inputPath, outputPath, info))

		candidates := analyzeAndDetect(ctx, inputPath, info, duration, cfg, rep, &warnings)

		chosen := selector.Select(candidates, duration)
		rep.SegmentSelected(reporter.SelectionSummary{
			Start:    chosen.Start,
			End:      chosen.End,
			Duration: chosen.Duration(),
			Score:    chosen.Score,
			Reason:   string(chosen.Reason),
		})

		res, err := pipeline.Run(ctx, transform.Request{
			Input:        inputPath,
			Output:       outputPath,
			Segment:      chosen,
			Caption:      opts.Caption,
			AudioPath:    opts.AudioPath,
			ReplaceAudio: opts.ReplaceAudio,
			SourceInfo:   info,
		})
		if err != nil {
			if errors.IsCancelled(err) {
				rep.Warning(fmt.Sprintf("Processing cancelled: %v", err))
				break
			}
			rep.Error(reporter.ReporterError{
				Title:      "Transform Error",
				Message:    fmt.Sprintf("Could not clip %s: %v", inputFilename, err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Check the ffmpeg log output for details",
			})
			continue
		}

		warnings = append(warnings, res.Warnings...)
		warnings = append(warnings, validateClip(ctx, cfg, chosen, info, res)...)
		for _, w := range warnings {
			rep.Warning(w)
		}

		fileElapsedTime := time.Since(fileStartTime)
		inputSize, _ := util.GetFileSize(inputPath)
		outputSize, _ := util.GetFileSize(res.OutputPath)

		results = append(results, ClipResult{
			Filename:       inputFilename,
			OutputPath:     res.OutputPath,
			Segment:        chosen,
			SourceDuration: duration,
			InputSize:      inputSize,
			OutputSize:     outputSize,
			Elapsed:        fileElapsedTime,
			StagesApplied:  res.StagesApplied,
			Warnings:       warnings,
		})

		rep.ClipComplete(reporter.ClipOutcome{
			InputFile:     inputFilename,
			OutputFile:    util.GetFilename(res.OutputPath),
			SourceSize:    inputSize,
			OutputSize:    outputSize,
			ClipStart:     chosen.Start,
			ClipEnd:       chosen.End,
			Reason:        string(chosen.Reason),
			StagesApplied: res.StagesApplied,
			TotalTime:     fileElapsedTime,
			OutputPath:    res.OutputPath,
		})
	}

	switch len(results) {
	case 0:
		rep.Warning("No files were successfully clipped")
	case 1:
		rep.OperationComplete(fmt.Sprintf("Successfully clipped %s", results[0].Filename))
	default:
		var totalDuration time.Duration
		var totalOutputSize uint64
		var fileResults []reporter.FileResult

		for _, r := range results {
			totalDuration += r.Elapsed
			totalOutputSize += r.OutputSize
			fileResults = append(fileResults, reporter.FileResult{
				Filename:   r.Filename,
				ClipLength: r.Segment.Duration(),
			})
		}

		rep.BatchComplete(reporter.BatchSummary{
			SuccessfulCount: len(results),
			TotalFiles:      len(filesToProcess),
			TotalOutputSize: totalOutputSize,
			TotalDuration:   totalDuration,
			FileResults:     fileResults,
		})
	}

	return results, nil
}

// AnalyzeVideo scores a single file and returns its candidate segments and
// source duration without producing a clip.
func AnalyzeVideo(
	ctx context.Context,
	cfg *config.Config,
	inputPath string,
	rep reporter.Reporter,
) ([]segment.Segment, float64, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	var warnings []string

	info, err := boundedProbe(cfg.ProbeTimeout)(ctx, inputPath)
	duration := cfg.MaxDuration
	if err != nil {
		if errors.IsCancelled(err) {
			return nil, 0, err
		}
		warnings = append(warnings, fmt.Sprintf("probe failed: %v", err))
		info = nil
	} else {
		duration = info.Duration
	}

	rep.SourceInfo(sourceSummary(inputPath, "", info))

	candidates := analyzeAndDetect(ctx, inputPath, info, duration, cfg, rep, &warnings)
	for _, w := range warnings {
		rep.Warning(w)
	}

	return candidates, duration, nil
}

// analyzeAndDetect scores the source and detects candidate segments. Any
// analysis failure degrades to the fallback candidate list.
func analyzeAndDetect(
	ctx context.Context,
	inputPath string,
	info *ffprobe.MediaInfo,
	duration float64,
	cfg *config.Config,
	rep reporter.Reporter,
	warnings *[]string,
) []segment.Segment {
	var points []analysis.ScorePoint

	if info != nil {
		var err error
		points, err = scoreSource(ctx, inputPath, info, cfg, rep)
		if err != nil {
			if errors.IsDecode(err) {
				*warnings = append(*warnings, fmt.Sprintf("source decode failed, selecting without scores: %v", err))
			} else {
				*warnings = append(*warnings, fmt.Sprintf("intensity analysis failed: %v", err))
			}
		}
	}

	candidates := segment.Detect(points, duration, cfg.MaxDuration)

	summary := reporter.DetectionSummary{}
	for _, c := range candidates {
		if c.Reason == segment.ReasonDefaultFallback {
			summary.Fallback = true
		}
		summary.Candidates = append(summary.Candidates, reporter.CandidateSummary{
			Start:  c.Start,
			End:    c.End,
			Score:  c.Score,
			Reason: string(c.Reason),
		})
	}
	rep.DetectionComplete(summary)

	return candidates
}

// scoreSource streams downscaled grayscale frames through the scorer.
// Returns whatever points were scored before a mid-stream failure.
func scoreSource(
	ctx context.Context,
	inputPath string,
	info *ffprobe.MediaInfo,
	cfg *config.Config,
	rep reporter.Reporter,
) ([]analysis.ScorePoint, error) {
	src, err := analysis.NewSampler(ctx, inputPath, info, analysis.Params{
		SamplesPerSecond: cfg.SamplesPerSecond,
		Width:            cfg.AnalysisWidth,
		Height:           cfg.AnalysisHeight,
	})
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stride := analysis.Stride(info.FPS, cfg.SamplesPerSecond)
	totalSamples := int64(info.TotalFrames) / int64(stride)
	rep.Verbose(fmt.Sprintf("Sampling every %d frames (%.2f fps source, ~%d samples)",
		stride, info.FPS, totalSamples))
	rep.AnalysisStarted(totalSamples)

	scorer := analysis.NewScorer(cfg.MotionThreshold, cfg.Amplification)

	return analysis.ScoreStream(src, scorer, func(scored int) {
		if totalSamples > 0 {
			rep.AnalysisProgress(reporter.AnalysisSnapshot{
				SamplesScored: int64(scored),
				TotalSamples:  totalSamples,
				Percent:       float32(scored) / float32(totalSamples) * 100,
			})
		}
	})
}

func sourceSummary(inputPath, outputPath string, info *ffprobe.MediaInfo) reporter.SourceSummary {
	summary := reporter.SourceSummary{
		InputFile:  util.GetFilename(inputPath),
		Duration:   "unknown",
		Resolution: "unknown",
		Audio:      "unknown",
	}
	if outputPath != "" {
		summary.OutputFile = util.GetFilename(outputPath)
	}
	if info == nil {
		return summary
	}

	summary.Duration = util.FormatDuration(info.Duration)
	summary.Resolution = fmt.Sprintf("%dx%d", info.Width, info.Height)
	summary.FPS = info.FPS
	if info.HasAudio {
		summary.Audio = info.AudioCodec
	} else {
		summary.Audio = "none"
	}
	return summary
}

// validateClip probes the finished clip and turns failed checks into
// warnings. Validation problems never fail the run.
func validateClip(
	ctx context.Context,
	cfg *config.Config,
	chosen segment.Segment,
	info *ffprobe.MediaInfo,
	res *transform.Result,
) []string {
	opts := validation.Options{}

	clipLen := chosen.Duration()
	opts.ExpectedDuration = &clipLen

	for _, stage := range res.StagesApplied {
		if stage == "reframe" {
			opts.ExpectedDimensions = &[2]int{cfg.TargetWidth, cfg.TargetHeight}
		}
	}

	expectAudio := info != nil && info.HasAudio
	for _, stage := range res.StagesApplied {
		if stage == "audio" {
			expectAudio = true
		}
	}
	opts.ExpectAudio = &expectAudio

	result, err := validation.ValidateClip(ctx, res.OutputPath,
		validation.Prober(boundedProbe(cfg.ProbeTimeout)), opts)
	if err != nil {
		return []string{fmt.Sprintf("clip validation failed: %v", err)}
	}

	var warnings []string
	for _, step := range result.Steps() {
		if !step.Passed {
			warnings = append(warnings, fmt.Sprintf("validation: %s", step.Details))
		}
	}
	return warnings
}

// boundedProbe wraps ffprobe.Probe with the configured timeout.
func boundedProbe(timeout time.Duration) transform.Prober {
	return func(ctx context.Context, path string) (*ffprobe.MediaInfo, error) {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return ffprobe.Probe(pctx, path)
	}
}

func newRNG(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
