package analysis

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource feeds canned frames, optionally failing mid-stream.
type fakeSource struct {
	frames []*FrameSample
	failAt int
	pos    int
	closed bool
}

func (f *fakeSource) Next() (*FrameSample, error) {
	if f.failAt > 0 && f.pos == f.failAt {
		return nil, errors.New("pipe broke")
	}
	if f.pos >= len(f.frames) {
		return nil, io.EOF
	}
	s := f.frames[f.pos]
	f.pos++
	return s, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func flatFrame(value byte, size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

func TestScorerFirstSampleIsZero(t *testing.T) {
	scorer := NewScorer(30, 1.5)
	point := scorer.Score(&FrameSample{Timestamp: 0, Pixels: flatFrame(200, 64)})
	assert.Zero(t, point.Score)
	assert.Zero(t, point.Timestamp)
}

func TestScorerMeanAbsDiff(t *testing.T) {
	scorer := NewScorer(30, 1.5)
	scorer.Score(&FrameSample{Pixels: flatFrame(100, 64)})

	// Uniform +20 difference: below threshold, no amplification.
	point := scorer.Score(&FrameSample{Timestamp: 0.5, Pixels: flatFrame(120, 64)})
	assert.InDelta(t, 20.0, point.Score, 1e-9)
}

func TestScorerAmplifiesSceneChanges(t *testing.T) {
	scorer := NewScorer(30, 1.5)
	scorer.Score(&FrameSample{Pixels: flatFrame(0, 64)})

	// Uniform +80 difference: above threshold, amplified 1.5x.
	point := scorer.Score(&FrameSample{Timestamp: 0.5, Pixels: flatFrame(80, 64)})
	assert.InDelta(t, 120.0, point.Score, 1e-9)
}

func TestScorerThresholdIsExclusive(t *testing.T) {
	scorer := NewScorer(30, 1.5)
	scorer.Score(&FrameSample{Pixels: flatFrame(0, 64)})

	// Exactly at the threshold: not amplified.
	point := scorer.Score(&FrameSample{Pixels: flatFrame(30, 64)})
	assert.InDelta(t, 30.0, point.Score, 1e-9)
}

func TestScorerComparesAgainstPreviousSample(t *testing.T) {
	scorer := NewScorer(255, 1) // disable amplification
	scorer.Score(&FrameSample{Pixels: flatFrame(10, 16)})
	scorer.Score(&FrameSample{Pixels: flatFrame(50, 16)})

	// Third frame diffs against the second (50), not the first.
	point := scorer.Score(&FrameSample{Pixels: flatFrame(60, 16)})
	assert.InDelta(t, 10.0, point.Score, 1e-9)
}

func TestScoreStream(t *testing.T) {
	src := &fakeSource{frames: []*FrameSample{
		{Index: 0, Timestamp: 0, Pixels: flatFrame(0, 16)},
		{Index: 1, Timestamp: 0.5, Pixels: flatFrame(10, 16)},
		{Index: 2, Timestamp: 1.0, Pixels: flatFrame(120, 16)},
	}}

	var counts []int
	points, err := ScoreStream(src, NewScorer(30, 1.5), func(n int) {
		counts = append(counts, n)
	})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, []int{1, 2, 3}, counts)

	assert.Zero(t, points[0].Score)
	assert.InDelta(t, 10.0, points[1].Score, 1e-9)
	assert.InDelta(t, 165.0, points[2].Score, 1e-9) // 110 * 1.5

	assert.Equal(t, 0.5, points[1].Timestamp)
	assert.Equal(t, 1.0, points[2].Timestamp)
}

func TestScoreStreamPartialOnFailure(t *testing.T) {
	src := &fakeSource{
		frames: []*FrameSample{
			{Pixels: flatFrame(0, 16)},
			{Pixels: flatFrame(5, 16)},
			{Pixels: flatFrame(9, 16)},
		},
		failAt: 2,
	}

	points, err := ScoreStream(src, NewScorer(30, 1.5), nil)
	require.Error(t, err)
	assert.Len(t, points, 2, "points scored before the failure are preserved")
}

func TestStride(t *testing.T) {
	tests := []struct {
		name     string
		fps      float64
		rate     float64
		expected int
	}{
		{"30fps at 2/s", 30, 2, 15},
		{"ntsc at 2/s", 29.97, 2, 15},
		{"25fps at 2/s", 25, 2, 13},
		{"1fps floors at 1", 1, 2, 1},
		{"zero rate falls back to 1/s", 30, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stride(tt.fps, tt.rate))
		})
	}
}

func TestMeanAbsDiffEmpty(t *testing.T) {
	assert.Zero(t, meanAbsDiff(nil, nil))
}
