package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/segment"
	"github.com/clipforge/clipforge/internal/util"
)

// Transcoder runs the individual ffmpeg transforms. The concrete
// implementation lives in the ffmpeg package; tests substitute fakes.
type Transcoder interface {
	Trim(ctx context.Context, input, output string, start, duration float64) error
	Reframe(ctx context.Context, input, output string, srcW, srcH, dstW, dstH int) error
	MixAudio(ctx context.Context, input, audio, output string, originalVolume float64, replace bool) error
	BurnText(ctx context.Context, input, output string, lines []string, frameHeight int) error
}

// Prober reads stream metadata for a media file. Matches ffprobe.Probe.
type Prober func(ctx context.Context, path string) (*ffprobe.MediaInfo, error)

// Request describes one clip to produce.
type Request struct {
	Input        string
	Output       string
	Segment      segment.Segment
	Caption      string
	AudioPath    string
	ReplaceAudio bool

	// SourceInfo carries the probe of the input when the caller already
	// has it. Nil means the source could not be probed.
	SourceInfo *ffprobe.MediaInfo
}

// Result reports what the pipeline produced. Warnings collect the stages
// that failed without aborting the clip.
type Result struct {
	OutputPath    string
	StagesApplied []string
	Warnings      []string
}

// StageFunc is the hook the pipeline calls as each stage starts, so the
// caller can surface progress.
type StageFunc func(stage string)

// Pipeline chains the trim, reframe, audio, and text stages. Only the trim
// is fatal; every later stage falls back to the previous stage's file.
type Pipeline struct {
	tc     Transcoder
	probe  Prober
	cfg    *config.Config
	logger zerolog.Logger

	// OnStage, when set, is invoked with the stage name before each stage
	// runs.
	OnStage StageFunc
}

// NewPipeline wires a pipeline around the given transcoder and prober.
func NewPipeline(tc Transcoder, probe Prober, cfg *config.Config) *Pipeline {
	return &Pipeline{
		tc:     tc,
		probe:  probe,
		cfg:    cfg,
		logger: logging.WithComponent("pipeline"),
	}
}

// Run produces the clip described by req. The returned error is non-nil only
// when the trim stage or the final move fails.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{}

	workDir := filepath.Dir(req.Output)
	if err := util.EnsureDirectory(workDir); err != nil {
		return nil, err
	}
	if !util.HasDiskHeadroom(workDir, config.DiskHeadroomBytes) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("low disk space in %s, clip may fail to write", workDir))
	}

	stem := util.GetFileStem(req.Input)
	token := uuid.NewString()[:8]
	var intermediates []string

	stagePath := func(stage string) string {
		path := util.StagePath(workDir, stem, stage, token)
		intermediates = append(intermediates, path)
		return path
	}
	defer func() {
		for _, path := range intermediates {
			if path != req.Output {
				os.Remove(path)
			}
		}
	}()

	// Trim is the one stage that must succeed.
	p.emitStage(res, "trim")
	current := stagePath("trim")
	seg := req.Segment
	if err := p.tc.Trim(ctx, req.Input, current, seg.Start, seg.Duration()); err != nil {
		if errors.IsCancelled(err) {
			return nil, err
		}
		return nil, errors.NewTrimError(
			fmt.Sprintf("trim %s failed", util.GetFilename(req.Input)), err)
	}
	res.StagesApplied = append(res.StagesApplied, "trim")

	current = p.runReframe(ctx, res, current, stagePath)
	current = p.runAudio(ctx, res, req, current, stagePath)
	current = p.runText(ctx, res, req, current, stagePath)

	if err := os.Rename(current, req.Output); err != nil {
		return nil, errors.NewIOError(
			fmt.Sprintf("moving clip to %s", req.Output), err)
	}

	res.OutputPath = req.Output
	return res, nil
}

// runReframe converts the clip to the target portrait frame. Skipped when
// vertical output is off or the clip already matches the target ratio.
func (p *Pipeline) runReframe(ctx context.Context, res *Result, current string, stagePath func(string) string) string {
	if !p.cfg.ForceVertical {
		return current
	}

	info, err := p.probe(ctx, current)
	if err != nil {
		p.stageFailed(res, "reframe", err)
		return current
	}
	if info.Width == p.cfg.TargetWidth && info.Height == p.cfg.TargetHeight {
		return current
	}

	p.emitStage(res, "reframe")
	out := stagePath("reframe")
	err = p.tc.Reframe(ctx, current, out, info.Width, info.Height,
		p.cfg.TargetWidth, p.cfg.TargetHeight)
	if err != nil {
		p.stageFailed(res, "reframe", err)
		return current
	}

	res.StagesApplied = append(res.StagesApplied, "reframe")
	return out
}

// runAudio overlays or replaces the clip audio with an external track.
func (p *Pipeline) runAudio(ctx context.Context, res *Result, req Request, current string, stagePath func(string) string) string {
	if req.AudioPath == "" {
		return current
	}

	mode := "mix"
	if req.ReplaceAudio {
		mode = "replace"
	}
	replace := req.ReplaceAudio

	// Mixing needs an existing audio stream on the clip; without one the
	// external track simply takes over.
	if !replace && req.SourceInfo != nil && !req.SourceInfo.HasAudio {
		p.logger.Debug().Str("input", current).
			Msg("source has no audio stream, replacing instead of mixing")
		replace = true
	}

	p.emitStage(res, "audio")
	out := stagePath("audio")
	err := p.tc.MixAudio(ctx, current, req.AudioPath, out, config.OriginalAudioVolume, replace)
	if err != nil {
		p.stageFailed(res, "audio "+mode, err)
		return current
	}

	res.StagesApplied = append(res.StagesApplied, "audio")
	return out
}

// runText burns the wrapped caption into the frame.
func (p *Pipeline) runText(ctx context.Context, res *Result, req Request, current string, stagePath func(string) string) string {
	lines := WrapCaption(req.Caption)
	if len(lines) == 0 {
		return current
	}

	height := p.frameHeight(ctx, current)

	p.emitStage(res, "text")
	out := stagePath("text")
	if err := p.tc.BurnText(ctx, current, out, lines, height); err != nil {
		p.stageFailed(res, "text", err)
		return current
	}

	res.StagesApplied = append(res.StagesApplied, "text")
	return out
}

// frameHeight probes the current clip so the text block centers on the
// frame actually being drawn on, which may or may not have been reframed.
func (p *Pipeline) frameHeight(ctx context.Context, current string) int {
	info, err := p.probe(ctx, current)
	if err != nil {
		p.logger.Debug().Err(err).Msg("probe for text layout failed, using target height")
		return p.cfg.TargetHeight
	}
	return info.Height
}

func (p *Pipeline) emitStage(res *Result, stage string) {
	p.logger.Debug().Str("stage", stage).Msg("running stage")
	if p.OnStage != nil {
		p.OnStage(stage)
	}
}

func (p *Pipeline) stageFailed(res *Result, stage string, err error) {
	staged := errors.NewStageError(stage, "continuing with previous output", err)
	p.logger.Warn().Err(err).Str("stage", stage).Msg("stage failed")
	res.Warnings = append(res.Warnings, staged.Error())
}
