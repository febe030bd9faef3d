// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// HardwareSummary contains host information.
type HardwareSummary struct {
	Hostname string
}

// SourceSummary describes the current file before analysis.
type SourceSummary struct {
	InputFile  string
	OutputFile string
	Duration   string
	Resolution string
	FPS        float64
	Audio      string
}

// AnalysisSnapshot contains intensity-analysis progress information.
type AnalysisSnapshot struct {
	SamplesScored int64
	TotalSamples  int64
	Percent       float32
}

// CandidateSummary describes one detected candidate segment.
type CandidateSummary struct {
	Start  float64
	End    float64
	Score  float64
	Reason string
}

// DetectionSummary contains segment detection results.
type DetectionSummary struct {
	Candidates []CandidateSummary
	Fallback   bool
}

// SelectionSummary describes the clip window chosen for cutting.
type SelectionSummary struct {
	Start    float64
	End      float64
	Duration float64
	Score    float64
	Reason   string
}

// StageUpdate represents a transform stage starting or progressing.
type StageUpdate struct {
	Stage   string
	Message string
}

// ClipOutcome contains final clip results.
type ClipOutcome struct {
	InputFile     string
	OutputFile    string
	SourceSize    uint64
	OutputSize    uint64
	ClipStart     float64
	ClipEnd       float64
	Reason        string
	StagesApplied []string
	TotalTime     time.Duration
	OutputPath    string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext contains current file index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}

// FileResult contains per-file clip results.
type FileResult struct {
	Filename   string
	ClipLength float64
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount int
	TotalFiles      int
	TotalOutputSize uint64
	TotalDuration   time.Duration
	FileResults     []FileResult
}
