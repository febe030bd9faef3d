package segment

import (
	"math"

	"github.com/clipforge/clipforge/internal/analysis"
	"github.com/clipforge/clipforge/internal/config"
)

// Detect thresholds the score series against its own statistics and merges
// contiguous high-score samples into padded candidate segments. When nothing
// qualifies it returns exactly one front-of-video fallback segment, so the
// result is never empty.
func Detect(points []analysis.ScorePoint, duration, maxDuration float64) []Segment {
	segments := detectRuns(points, duration)
	if len(segments) == 0 {
		return []Segment{Fallback(duration, maxDuration)}
	}
	return segments
}

// Fallback builds the duration-only segment used when detection found
// nothing or the source could not be analyzed at all.
func Fallback(duration, maxDuration float64) Segment {
	return Segment{
		Start:  0,
		End:    math.Min(maxDuration, duration),
		Score:  1.0,
		Reason: ReasonDefaultFallback,
	}
}

// detectRuns emits one segment per qualifying high-score run. A run opens on
// the first sample above threshold and closes on the first sample at or
// below it; a run still open at the end of the series never emits.
func detectRuns(points []analysis.ScorePoint, duration float64) []Segment {
	if len(points) == 0 {
		return nil
	}

	threshold := runThreshold(points)

	var segments []Segment
	runStart := -1.0
	var runScores []float64

	for _, p := range points {
		if p.Score > threshold {
			if runStart < 0 {
				runStart = p.Timestamp
			}
			runScores = append(runScores, p.Score)
			continue
		}

		if runStart >= 0 {
			if p.Timestamp-runStart >= config.MinRunSeconds {
				segments = append(segments, Segment{
					Start:  math.Max(0, runStart-config.RunPaddingSeconds),
					End:    math.Min(duration, p.Timestamp+config.RunPaddingSeconds),
					Score:  mean(runScores),
					Reason: ReasonHighMotion,
				})
			}
			runStart = -1
			runScores = runScores[:0]
		}
	}

	return segments
}

// runThreshold is the adaptive cut line: population mean plus a fraction of
// the population standard deviation.
func runThreshold(points []analysis.ScorePoint) float64 {
	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.Score
	}

	mu := mean(scores)

	var variance float64
	for _, s := range scores {
		d := s - mu
		variance += d * d
	}
	variance /= float64(len(scores))

	return mu + config.ThresholdSigma*math.Sqrt(variance)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
