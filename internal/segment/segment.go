// Package segment identifies and selects highlight time ranges from a scored
// sample series.
package segment

// Reason tags why a segment was produced. Tags travel with the segment
// through selection and into the final pipeline result so failures stay
// diagnosable without re-running detection.
type Reason string

const (
	// ReasonHighMotion marks a segment found by intensity detection.
	ReasonHighMotion Reason = "high_motion"
	// ReasonDefaultFallback marks the front-of-video segment used when no
	// qualifying run exists.
	ReasonDefaultFallback Reason = "default_fallback"
	// ReasonShortVideo marks a whole-video segment with randomized edge trims.
	ReasonShortVideo Reason = "short_video_fallback"
)

// Randomized derives the tag for a jitter-adjusted copy of a segment.
func (r Reason) Randomized() Reason {
	return r + "_randomized"
}

// Segment is a candidate or final time range. Values are immutable;
// adjustments produce new Segment values.
type Segment struct {
	Start  float64 // seconds
	End    float64 // seconds, Start < End
	Score  float64 // aggregate impact score of the constituent samples
	Reason Reason
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
