package segment

import (
	"math"
	"math/rand/v2"
	"sort"
)

const (
	// topCandidates caps how many of the best-scoring segments the
	// selector picks between.
	topCandidates = 3

	// startJitterSeconds shifts the chosen start randomly in either
	// direction so repeated runs over the same source vary.
	startJitterSeconds = 3.0

	// durationScaleMin/Max scale the candidate's own length before
	// clamping to the configured bounds.
	durationScaleMin = 0.8
	durationScaleMax = 1.2

	// durationPerturbSeconds adds a final additive wobble to the target
	// length.
	durationPerturbSeconds = 5.0

	// shortTrimSeconds is the most that gets shaved off either end of a
	// source too short to satisfy the minimum clip length.
	shortTrimSeconds = 2.0
)

// Selector turns detected candidates into the single clip window to cut.
// The randomness source is injected so callers can seed it.
type Selector struct {
	MinDuration float64
	MaxDuration float64

	rng *rand.Rand
}

// NewSelector builds a selector around the given bounds and random source.
func NewSelector(minDuration, maxDuration float64, rng *rand.Rand) *Selector {
	return &Selector{
		MinDuration: minDuration,
		MaxDuration: maxDuration,
		rng:         rng,
	}
}

// Select picks one of the highest-scoring candidates and randomizes its
// window within the configured duration bounds. Sources shorter than the
// minimum clip length, or empty candidate lists, take the whole-video
// trim-both-ends path instead.
func (s *Selector) Select(candidates []Segment, duration float64) Segment {
	if len(candidates) == 0 || duration <= s.MinDuration {
		return s.selectShort(duration)
	}

	chosen := s.pick(candidates)

	start := math.Max(0, chosen.Start+s.uniform(-startJitterSeconds, startJitterSeconds))

	target := chosen.Duration() * s.uniform(durationScaleMin, durationScaleMax)
	target = clamp(target, s.MinDuration, s.MaxDuration)
	target += s.uniform(-durationPerturbSeconds, durationPerturbSeconds)
	target = clamp(target, s.MinDuration, s.MaxDuration)

	end := math.Min(duration, start+target)
	if end-start < s.MinDuration {
		start = math.Max(0, end-s.MinDuration)
	}

	return Segment{
		Start:  start,
		End:    end,
		Score:  chosen.Score,
		Reason: chosen.Reason.Randomized(),
	}
}

// selectShort treats the whole video as the segment, shaving a little off
// both ends. When the trims push the window below the minimum clip length
// the end is extended back, but never past the source's end: a source
// shorter than the minimum keeps whatever range remains.
func (s *Selector) selectShort(duration float64) Segment {
	start := s.uniform(0, shortTrimSeconds)
	end := duration - s.uniform(0, shortTrimSeconds)
	if end <= start {
		start = 0
		end = duration
	}
	if end-start < s.MinDuration {
		end = math.Min(duration, start+s.MinDuration)
	}

	return Segment{
		Start:  start,
		End:    end,
		Score:  1.0,
		Reason: ReasonShortVideo,
	}
}

// pick chooses uniformly among the top scoring candidates.
func (s *Selector) pick(candidates []Segment) Segment {
	sorted := make([]Segment, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	n := len(sorted)
	if n > topCandidates {
		n = topCandidates
	}
	return sorted[s.rng.IntN(n)]
}

func (s *Selector) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
