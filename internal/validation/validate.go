// Package validation checks produced clips against expected properties.
package validation

import (
	"context"
	"fmt"
	"math"

	"github.com/clipforge/clipforge/internal/ffprobe"
)

// durationToleranceSecs is the maximum allowed difference between the
// requested clip window and the produced file's duration.
const durationToleranceSecs = 1.0

// Prober reads stream metadata for a media file. Matches ffprobe.Probe.
type Prober func(ctx context.Context, path string) (*ffprobe.MediaInfo, error)

// Options contains optional parameters for validation. Nil fields skip the
// corresponding check.
type Options struct {
	ExpectedDimensions *[2]int
	ExpectedDuration   *float64
	ExpectAudio        *bool
}

// Step represents a single validation check.
type Step struct {
	Name    string
	Passed  bool
	Details string
}

// Result collects the outcome of all validation steps.
type Result struct {
	steps []Step
}

// IsValid reports whether every step passed.
func (r *Result) IsValid() bool {
	for _, s := range r.steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// Steps returns the individual checks in the order they ran.
func (r *Result) Steps() []Step {
	return r.steps
}

func (r *Result) add(name string, passed bool, details string) {
	r.steps = append(r.steps, Step{Name: name, Passed: passed, Details: details})
}

// ValidateClip probes the produced clip and checks it against opts.
func ValidateClip(ctx context.Context, path string, probe Prober, opts Options) (*Result, error) {
	info, err := probe(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	result.add("Video stream", true,
		fmt.Sprintf("%s %dx%d", info.VideoCodec, info.Width, info.Height))

	if opts.ExpectedDimensions != nil {
		w, h := opts.ExpectedDimensions[0], opts.ExpectedDimensions[1]
		passed, details := validateDimensions(info.Width, info.Height, w, h)
		result.add("Dimensions", passed, details)
	}

	if opts.ExpectedDuration != nil {
		passed, details := validateDuration(info.Duration, *opts.ExpectedDuration)
		result.add("Duration", passed, details)
	}

	if opts.ExpectAudio != nil {
		passed, details := validateAudio(info, *opts.ExpectAudio)
		result.add("Audio", passed, details)
	}

	return result, nil
}

func validateDimensions(actualW, actualH, expectedW, expectedH int) (bool, string) {
	if actualW == expectedW && actualH == expectedH {
		return true, fmt.Sprintf("Dimensions match: %dx%d", actualW, actualH)
	}
	return false, fmt.Sprintf("Dimension mismatch: got %dx%d, expected %dx%d",
		actualW, actualH, expectedW, expectedH)
}

func validateDuration(actual, expected float64) (bool, string) {
	diff := math.Abs(actual - expected)
	if diff <= durationToleranceSecs {
		return true, fmt.Sprintf("Duration matches clip window (%.1fs)", actual)
	}
	return false, fmt.Sprintf("Duration mismatch: got %.1fs, expected %.1fs (diff: %.1fs)",
		actual, expected, diff)
}

func validateAudio(info *ffprobe.MediaInfo, expectAudio bool) (bool, string) {
	switch {
	case expectAudio && info.HasAudio:
		return true, fmt.Sprintf("Audio stream present (%s)", info.AudioCodec)
	case expectAudio && !info.HasAudio:
		return false, "Audio stream missing"
	case !expectAudio && info.HasAudio:
		return true, fmt.Sprintf("Unexpected audio stream kept (%s)", info.AudioCodec)
	default:
		return true, "No audio stream expected"
	}
}
