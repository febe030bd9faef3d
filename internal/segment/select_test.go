package segment

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestSelectStaysWithinBounds(t *testing.T) {
	candidates := []Segment{
		{Start: 39, End: 47, Score: 120, Reason: ReasonHighMotion},
	}

	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(candidates, 90)

		assert.GreaterOrEqual(t, got.Start, 0.0)
		assert.LessOrEqual(t, got.End, 90.0)
		assert.GreaterOrEqual(t, got.Duration(), 15.0)
		assert.LessOrEqual(t, got.Duration(), 60.0)
	}
}

func TestSelectJittersStartAroundCandidate(t *testing.T) {
	candidates := []Segment{
		{Start: 39, End: 47, Score: 120, Reason: ReasonHighMotion},
	}

	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(candidates, 90)

		assert.GreaterOrEqual(t, got.Start, 36.0)
		assert.LessOrEqual(t, got.Start, 42.0)
	}
}

func TestSelectMarksReasonRandomized(t *testing.T) {
	candidates := []Segment{
		{Start: 39, End: 47, Score: 120, Reason: ReasonHighMotion},
	}

	sel := NewSelector(15, 60, seeded(1))
	got := sel.Select(candidates, 90)

	assert.Equal(t, Reason("high_motion_randomized"), got.Reason)
	assert.Equal(t, 120.0, got.Score)
}

func TestSelectDeterministicUnderSeed(t *testing.T) {
	candidates := []Segment{
		{Start: 10, End: 20, Score: 50, Reason: ReasonHighMotion},
		{Start: 39, End: 47, Score: 120, Reason: ReasonHighMotion},
		{Start: 70, End: 80, Score: 90, Reason: ReasonHighMotion},
	}

	a := NewSelector(15, 60, seeded(42)).Select(candidates, 90)
	b := NewSelector(15, 60, seeded(42)).Select(candidates, 90)

	assert.Equal(t, a, b)
}

func TestSelectPicksAmongTopThree(t *testing.T) {
	candidates := []Segment{
		{Start: 5, End: 15, Score: 10, Reason: ReasonHighMotion},
		{Start: 20, End: 30, Score: 200, Reason: ReasonHighMotion},
		{Start: 40, End: 50, Score: 150, Reason: ReasonHighMotion},
		{Start: 60, End: 70, Score: 120, Reason: ReasonHighMotion},
	}

	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(candidates, 120)

		// The lowest scorer sits outside the top three and can never be
		// picked; its start jitter range is 2..8.
		assert.Greater(t, got.Start, 16.0)
	}
}

func TestSelectEmptyCandidatesTakesWholeVideo(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(nil, 90)

		require.Equal(t, ReasonShortVideo, got.Reason)
		assert.GreaterOrEqual(t, got.Start, 0.0)
		assert.LessOrEqual(t, got.Start, 2.0)
		assert.GreaterOrEqual(t, got.End, 88.0)
		assert.LessOrEqual(t, got.End, 90.0)
		assert.GreaterOrEqual(t, got.Duration(), 15.0)
	}
}

func TestSelectShortSourceTrimsStartAndKeepsRemainder(t *testing.T) {
	// A 10s source can never reach the 15s minimum: the start trim
	// survives, the end trim is undone by the minimum-length extension.
	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(nil, 10)

		require.Equal(t, ReasonShortVideo, got.Reason)
		assert.GreaterOrEqual(t, got.Start, 0.0)
		assert.LessOrEqual(t, got.Start, 2.0)
		assert.Equal(t, 10.0, got.End)
		assert.Greater(t, got.End, got.Start)
	}
}

func TestSelectShortTrimsSurviveWhenAboveMinimum(t *testing.T) {
	// Empty candidates on a 20s source: both trims fit above the 15s
	// minimum for small trims, and the extension kicks in otherwise.
	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(nil, 20)

		require.Equal(t, ReasonShortVideo, got.Reason)
		assert.GreaterOrEqual(t, got.Duration(), 15.0)
		assert.LessOrEqual(t, got.End, 20.0)
	}
}

func TestSelectPullsStartBackNearEndOfSource(t *testing.T) {
	// A candidate near the end of the source forces the window to clamp,
	// and the start must retreat to preserve the minimum length.
	candidates := []Segment{
		{Start: 85, End: 89, Score: 120, Reason: ReasonHighMotion},
	}

	for seed := uint64(0); seed < 200; seed++ {
		sel := NewSelector(15, 60, seeded(seed))
		got := sel.Select(candidates, 90)

		assert.LessOrEqual(t, got.End, 90.0)
		assert.GreaterOrEqual(t, got.Duration(), 15.0)
	}
}
