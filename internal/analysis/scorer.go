package analysis

import (
	"io"
)

// ScorePoint is the retained output of scoring one sample.
type ScorePoint struct {
	Timestamp float64
	Score     float64
}

// Scorer computes per-sample impact scores from inter-frame difference
// magnitude. It is a one-pass streaming computation buffering only the
// previous sampled frame.
type Scorer struct {
	threshold     float64
	amplification float64
	prev          []byte
}

// NewScorer creates a scorer. Raw differences above threshold (0-255 scale)
// are amplified to bias selection toward abrupt scene changes over steady
// motion.
func NewScorer(threshold, amplification float64) *Scorer {
	return &Scorer{threshold: threshold, amplification: amplification}
}

// Score computes the impact score for one sample against its predecessor.
// The first sample in a sequence scores 0.
func (s *Scorer) Score(sample *FrameSample) ScorePoint {
	point := ScorePoint{Timestamp: sample.Timestamp}

	if s.prev != nil && len(s.prev) == len(sample.Pixels) {
		diff := meanAbsDiff(s.prev, sample.Pixels)
		score := diff
		if diff > s.threshold {
			score *= s.amplification
		}
		point.Score = score
	}

	s.prev = sample.Pixels
	return point
}

// ScoreStream drains a frame source through a scorer, returning the full
// ordered score series. onPoint, when non-nil, is called with the running
// point count. On a mid-stream read failure the points scored so far are
// returned alongside the error so callers can degrade to fallback detection.
func ScoreStream(src FrameSource, scorer *Scorer, onPoint func(scored int)) ([]ScorePoint, error) {
	var points []ScorePoint

	for {
		sample, err := src.Next()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return points, err
		}
		points = append(points, scorer.Score(sample))
		if onPoint != nil {
			onPoint(len(points))
		}
	}
}

// meanAbsDiff computes the mean absolute difference between two equal-length
// grayscale buffers.
func meanAbsDiff(a, b []byte) float64 {
	if len(a) == 0 {
		return 0
	}

	var total uint64
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		total += uint64(d)
	}
	return float64(total) / float64(len(a))
}
