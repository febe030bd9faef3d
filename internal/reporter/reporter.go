package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	SourceInfo(summary SourceSummary)
	AnalysisStarted(totalSamples int64)
	AnalysisProgress(snapshot AnalysisSnapshot)
	DetectionComplete(summary DetectionSummary)
	SegmentSelected(summary SelectionSummary)
	StageProgress(update StageUpdate)
	ClipComplete(summary ClipOutcome)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)           {}
func (NullReporter) SourceInfo(SourceSummary)           {}
func (NullReporter) AnalysisStarted(int64)              {}
func (NullReporter) AnalysisProgress(AnalysisSnapshot)  {}
func (NullReporter) DetectionComplete(DetectionSummary) {}
func (NullReporter) SegmentSelected(SelectionSummary)   {}
func (NullReporter) StageProgress(StageUpdate)          {}
func (NullReporter) ClipComplete(ClipOutcome)           {}
func (NullReporter) Warning(string)                     {}
func (NullReporter) Error(ReporterError)                {}
func (NullReporter) OperationComplete(string)           {}
func (NullReporter) BatchStarted(BatchStartInfo)        {}
func (NullReporter) FileProgress(FileProgressContext)   {}
func (NullReporter) BatchComplete(BatchSummary)         {}
func (NullReporter) Verbose(string)                     {}
