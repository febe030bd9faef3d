// Package config provides configuration types and defaults for clipforge.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default constants
const (
	// DefaultMinDuration is the minimum final clip length in seconds.
	DefaultMinDuration float64 = 15

	// DefaultMaxDuration is the maximum final clip length in seconds.
	DefaultMaxDuration float64 = 60

	// DefaultTargetWidth is the reframe target width (vertical 9:16).
	DefaultTargetWidth = 1080

	// DefaultTargetHeight is the reframe target height (vertical 9:16).
	DefaultTargetHeight = 1920

	// DefaultMotionThreshold is the mean-abs-diff level (0-255 scale) above
	// which a sample is treated as a likely scene change.
	DefaultMotionThreshold float64 = 30

	// DefaultAmplification is the score multiplier applied above the motion
	// threshold to bias selection toward scene changes over steady motion.
	DefaultAmplification float64 = 1.5

	// DefaultSamplesPerSecond is the analysis sampling rate.
	DefaultSamplesPerSecond float64 = 2

	// DefaultAnalysisWidth is the downscaled analysis frame width.
	DefaultAnalysisWidth = 160

	// DefaultAnalysisHeight is the downscaled analysis frame height.
	DefaultAnalysisHeight = 90

	// DefaultStageTimeout bounds each transform stage's external call.
	DefaultStageTimeout = 5 * time.Minute

	// DefaultProbeTimeout bounds metadata probing.
	DefaultProbeTimeout = 30 * time.Second

	// MinRunSeconds is the minimum high-score run length that qualifies as a
	// candidate segment.
	MinRunSeconds float64 = 2.0

	// RunPaddingSeconds is the padding added on each side of a qualifying run.
	RunPaddingSeconds float64 = 1.0

	// ThresholdSigma is the fraction of the standard deviation added to the
	// mean score to form the detection threshold.
	ThresholdSigma float64 = 0.5

	// DiskHeadroomBytes is the free-space floor checked before transforms.
	DiskHeadroomBytes uint64 = 512 * 1024 * 1024

	// OriginalAudioVolume is the level the clip's own audio is ducked to
	// when mixing in an external track.
	OriginalAudioVolume float64 = 0.2
)

// Config holds all configuration for highlight extraction and re-encoding.
type Config struct {
	// Clip duration bounds in seconds.
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`

	// Reframe settings.
	ForceVertical bool `yaml:"force_vertical"`
	TargetWidth   int  `yaml:"target_width"`
	TargetHeight  int  `yaml:"target_height"`

	// Analysis settings.
	MotionThreshold  float64 `yaml:"motion_threshold"`
	Amplification    float64 `yaml:"amplification"`
	SamplesPerSecond float64 `yaml:"samples_per_second"`
	AnalysisWidth    int     `yaml:"analysis_width"`
	AnalysisHeight   int     `yaml:"analysis_height"`

	// Paths.
	OutputDir string `yaml:"output_dir"`
	LogDir    string `yaml:"log_dir"`

	// External call deadlines.
	StageTimeout time.Duration `yaml:"stage_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// NewConfig creates a Config with defaults applied.
func NewConfig(outputDir string) *Config {
	return &Config{
		MinDuration:      DefaultMinDuration,
		MaxDuration:      DefaultMaxDuration,
		ForceVertical:    true,
		TargetWidth:      DefaultTargetWidth,
		TargetHeight:     DefaultTargetHeight,
		MotionThreshold:  DefaultMotionThreshold,
		Amplification:    DefaultAmplification,
		SamplesPerSecond: DefaultSamplesPerSecond,
		AnalysisWidth:    DefaultAnalysisWidth,
		AnalysisHeight:   DefaultAnalysisHeight,
		OutputDir:        outputDir,
		StageTimeout:     DefaultStageTimeout,
		ProbeTimeout:     DefaultProbeTimeout,
	}
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. An empty path skips the file and applies env only.
func Load(path, outputDir string) (*Config, error) {
	cfg := NewConfig(outputDir)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("MIN_CLIP_DURATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinDuration = f
		}
	}
	if v := os.Getenv("MAX_CLIP_DURATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MaxDuration = f
		}
	}
	if v := os.Getenv("PROCESSED_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MinDuration <= 0 {
		return fmt.Errorf("%w: min_duration must be positive, got %v", ErrInvalidDuration, c.MinDuration)
	}
	if c.MaxDuration < c.MinDuration {
		return fmt.Errorf("%w: max_duration %v below min_duration %v", ErrInvalidDuration, c.MaxDuration, c.MinDuration)
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, c.TargetWidth, c.TargetHeight)
	}
	if c.TargetWidth%2 != 0 || c.TargetHeight%2 != 0 {
		return fmt.Errorf("%w: dimensions must be even for the encoder, got %dx%d", ErrInvalidTargetSize, c.TargetWidth, c.TargetHeight)
	}
	if c.MotionThreshold < 0 || c.MotionThreshold > 255 {
		return fmt.Errorf("%w: motion_threshold must be within 0-255, got %v", ErrInvalidThreshold, c.MotionThreshold)
	}
	if c.Amplification < 1 {
		return fmt.Errorf("%w: amplification must be >= 1, got %v", ErrInvalidThreshold, c.Amplification)
	}
	if c.SamplesPerSecond <= 0 {
		return fmt.Errorf("%w: samples_per_second must be positive, got %v", ErrInvalidSampling, c.SamplesPerSecond)
	}
	if c.AnalysisWidth <= 0 || c.AnalysisHeight <= 0 {
		return fmt.Errorf("%w: analysis size %dx%d", ErrInvalidSampling, c.AnalysisWidth, c.AnalysisHeight)
	}
	if c.StageTimeout <= 0 {
		return fmt.Errorf("%w: stage_timeout must be positive", ErrInvalidTimeout)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: probe_timeout must be positive", ErrInvalidTimeout)
	}
	return nil
}
