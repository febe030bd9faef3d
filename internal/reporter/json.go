package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events for machine consumers.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		lastProgressBucket: -1,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]interface{}{
		"type":      "hardware",
		"hostname":  summary.Hostname,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) SourceInfo(summary SourceSummary) {
	r.write(map[string]interface{}{
		"type":        "source_info",
		"input_file":  summary.InputFile,
		"output_file": summary.OutputFile,
		"duration":    summary.Duration,
		"resolution":  summary.Resolution,
		"fps":         summary.FPS,
		"audio":       summary.Audio,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) AnalysisStarted(totalSamples int64) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()

	r.write(map[string]interface{}{
		"type":          "analysis_started",
		"total_samples": totalSamples,
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) AnalysisProgress(snapshot AnalysisSnapshot) {
	const progressBucketSize = 1
	const minInterval = 5 * time.Second

	bucket := int(snapshot.Percent) / progressBucketSize
	now := time.Now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	shouldEmit := bucket > r.lastProgressBucket || intervalElapsed || snapshot.Percent >= 99.0

	if !shouldEmit {
		r.mu.Unlock()
		return
	}

	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write(map[string]interface{}{
		"type":           "analysis_progress",
		"samples_scored": snapshot.SamplesScored,
		"total_samples":  snapshot.TotalSamples,
		"percent":        snapshot.Percent,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) DetectionComplete(summary DetectionSummary) {
	candidates := make([]map[string]interface{}, len(summary.Candidates))
	for i, c := range summary.Candidates {
		candidates[i] = map[string]interface{}{
			"start":  c.Start,
			"end":    c.End,
			"score":  c.Score,
			"reason": c.Reason,
		}
	}

	r.write(map[string]interface{}{
		"type":       "detection_complete",
		"candidates": candidates,
		"fallback":   summary.Fallback,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) SegmentSelected(summary SelectionSummary) {
	r.write(map[string]interface{}{
		"type":      "segment_selected",
		"start":     summary.Start,
		"end":       summary.End,
		"duration":  summary.Duration,
		"score":     summary.Score,
		"reason":    summary.Reason,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) StageProgress(update StageUpdate) {
	r.write(map[string]interface{}{
		"type":      "stage_progress",
		"stage":     update.Stage,
		"message":   update.Message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ClipComplete(summary ClipOutcome) {
	r.write(map[string]interface{}{
		"type":             "clip_complete",
		"input_file":       summary.InputFile,
		"output_file":      summary.OutputFile,
		"source_size":      summary.SourceSize,
		"output_size":      summary.OutputSize,
		"clip_start":       summary.ClipStart,
		"clip_end":         summary.ClipEnd,
		"reason":           summary.Reason,
		"stages_applied":   summary.StagesApplied,
		"duration_seconds": int64(summary.TotalTime.Seconds()),
		"output_path":      summary.OutputPath,
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]interface{}{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"output_dir":  info.OutputDir,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	results := make([]map[string]interface{}, len(summary.FileResults))
	for i, fr := range summary.FileResults {
		results[i] = map[string]interface{}{
			"filename":    fr.Filename,
			"clip_length": fr.ClipLength,
		}
	}

	r.write(map[string]interface{}{
		"type":                   "batch_complete",
		"successful_count":       summary.SuccessfulCount,
		"total_files":            summary.TotalFiles,
		"total_output_size":      summary.TotalOutputSize,
		"total_duration_seconds": int64(summary.TotalDuration.Seconds()),
		"file_results":           results,
		"timestamp":              r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
