// Package main provides the CLI entry point for Clipforge.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/discovery"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/processing"
	"github.com/clipforge/clipforge/internal/reporter"
	"github.com/clipforge/clipforge/internal/util"
)

const (
	appName    = "clipforge"
	appVersion = "0.3.0"
)

type globalFlags struct {
	verbose    bool
	jsonOutput bool
	noLog      bool
	logDir     string
	configPath string
}

type processFlags struct {
	inputPath    string
	outputPath   string
	caption      string
	audioPath    string
	replaceAudio bool
	minDuration  float64
	maxDuration  float64
	noVertical   bool
	width        int
	height       int
	threshold    float64
	sampleRate   float64
	seed         uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:           appName,
		Short:         "Extract highlight clips from video files",
		Long:          "Clipforge finds the most intense moments of a video and cuts a short, re-encoded clip around them.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(gf.verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&gf.jsonOutput, "json", false, "emit NDJSON events instead of terminal output")
	root.PersistentFlags().BoolVar(&gf.noLog, "no-log", false, "disable log file creation")
	root.PersistentFlags().StringVarP(&gf.logDir, "log-dir", "l", "", "log directory (defaults to OUTPUT/logs)")
	root.PersistentFlags().StringVar(&gf.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newProcessCmd(&gf))
	root.AddCommand(newAnalyzeCmd(&gf))

	return root
}

func newProcessCmd(gf *globalFlags) *cobra.Command {
	var pf processFlags

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Extract and re-encode a highlight clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, gf, pf)
		},
	}

	cmd.Flags().StringVarP(&pf.inputPath, "input", "i", "", "input video file or directory")
	cmd.Flags().StringVarP(&pf.outputPath, "output", "o", "", "output directory (or filename for a single input)")
	cmd.Flags().StringVar(&pf.caption, "caption", "", "caption text to burn into the clip")
	cmd.Flags().StringVar(&pf.audioPath, "audio", "", "audio track to overlay on the clip")
	cmd.Flags().BoolVar(&pf.replaceAudio, "replace-audio", false, "replace the clip audio instead of mixing")
	cmd.Flags().Float64Var(&pf.minDuration, "min-duration", config.DefaultMinDuration, "minimum clip length in seconds")
	cmd.Flags().Float64Var(&pf.maxDuration, "max-duration", config.DefaultMaxDuration, "maximum clip length in seconds")
	cmd.Flags().BoolVar(&pf.noVertical, "no-vertical", false, "keep the source aspect instead of portrait reframing")
	cmd.Flags().IntVar(&pf.width, "width", config.DefaultTargetWidth, "portrait output width")
	cmd.Flags().IntVar(&pf.height, "height", config.DefaultTargetHeight, "portrait output height")
	cmd.Flags().Float64Var(&pf.threshold, "threshold", config.DefaultMotionThreshold, "motion amplification threshold (0-255)")
	cmd.Flags().Float64Var(&pf.sampleRate, "sample-rate", config.DefaultSamplesPerSecond, "analysis samples per second")
	cmd.Flags().Uint64Var(&pf.seed, "seed", 0, "pin selection randomness for reproducible clips")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newAnalyzeCmd(gf *globalFlags) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a video and print its candidate segments without clipping",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, gf, inputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input video file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runProcess(cmd *cobra.Command, gf *globalFlags, pf processFlags) error {
	if err := checkTools(); err != nil {
		return err
	}

	inputPath, inputInfo, err := resolveInput(pf.inputPath)
	if err != nil {
		return err
	}

	outputDir, targetFilename, err := resolveOutputPath(pf.outputPath, inputInfo.IsDir())
	if err != nil {
		return err
	}
	if err := util.EnsureDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cfg, err := config.Load(gf.configPath, outputDir)
	if err != nil {
		return err
	}
	applyProcessFlags(cmd, cfg, pf)

	logDir := gf.logDir
	if logDir == "" {
		logDir = filepath.Join(outputDir, "logs")
	}
	cfg.LogDir = logDir
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fileLog, err := logging.Setup(logDir, gf.verbose || cfg.Debug, gf.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if fileLog != nil {
		defer func() { _ = fileLog.Close() }()
	}

	var filesToProcess []string
	if inputInfo.IsDir() {
		result, err := discovery.FindVideoFilesWithLogging(inputPath)
		if err != nil {
			return err
		}
		filesToProcess = result.Files
	} else {
		filesToProcess = []string{inputPath}
	}

	opts := processing.ClipOptions{
		Caption:      pf.caption,
		AudioPath:    pf.audioPath,
		ReplaceAudio: pf.replaceAudio,
	}
	if cmd.Flags().Changed("seed") {
		seed := pf.seed
		opts.Seed = &seed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = processing.ProcessVideos(ctx, cfg, filesToProcess, targetFilename, opts, newReporter(gf))
	return err
}

func runAnalyze(cmd *cobra.Command, gf *globalFlags, input string) error {
	if err := checkTools(); err != nil {
		return err
	}

	inputPath, inputInfo, err := resolveInput(input)
	if err != nil {
		return err
	}
	if inputInfo.IsDir() {
		return fmt.Errorf("analyze expects a single video file, got directory %s", inputPath)
	}

	cfg, err := config.Load(gf.configPath, ".")
	if err != nil {
		return err
	}
	if cfg.Debug && !gf.verbose {
		logging.Init(true)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _, err = processing.AnalyzeVideo(ctx, cfg, inputPath, newReporter(gf))
	return err
}

// applyProcessFlags overrides the loaded config with flags the user set
// explicitly, so config-file and env values survive untouched defaults.
func applyProcessFlags(cmd *cobra.Command, cfg *config.Config, pf processFlags) {
	flags := cmd.Flags()

	if flags.Changed("min-duration") {
		cfg.MinDuration = pf.minDuration
	}
	if flags.Changed("max-duration") {
		cfg.MaxDuration = pf.maxDuration
	}
	if pf.noVertical {
		cfg.ForceVertical = false
	}
	if flags.Changed("width") {
		cfg.TargetWidth = pf.width
	}
	if flags.Changed("height") {
		cfg.TargetHeight = pf.height
	}
	if flags.Changed("threshold") {
		cfg.MotionThreshold = pf.threshold
	}
	if flags.Changed("sample-rate") {
		cfg.SamplesPerSecond = pf.sampleRate
	}
}

func newReporter(gf *globalFlags) reporter.Reporter {
	if gf.jsonOutput {
		return reporter.NewJSONReporter()
	}
	return reporter.NewTerminalReporter()
}

func resolveInput(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("invalid input path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, fmt.Errorf("input path does not exist: %s", abs)
	}
	return abs, info, nil
}

// resolveOutputPath determines the output directory and optional target
// filename. If input is a file and output has a video extension, treat
// output as a target filename.
func resolveOutputPath(outputPath string, isInputDir bool) (outputDir, targetFilename string, err error) {
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return "", "", fmt.Errorf("invalid output path: %w", err)
	}

	if isInputDir {
		return outputPath, "", nil
	}

	if util.HasVideoExtension(outputPath) {
		return filepath.Dir(outputPath), filepath.Base(outputPath), nil
	}

	return outputPath, "", nil
}

func checkTools() error {
	if err := ffprobe.CheckTools(); err != nil {
		return fmt.Errorf("%w (install ffmpeg and make sure it is on PATH)", err)
	}
	return nil
}
