package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) SourceInfo(summary SourceSummary) {
	for _, r := range c.reporters {
		r.SourceInfo(summary)
	}
}

func (c *CompositeReporter) AnalysisStarted(totalSamples int64) {
	for _, r := range c.reporters {
		r.AnalysisStarted(totalSamples)
	}
}

func (c *CompositeReporter) AnalysisProgress(snapshot AnalysisSnapshot) {
	for _, r := range c.reporters {
		r.AnalysisProgress(snapshot)
	}
}

func (c *CompositeReporter) DetectionComplete(summary DetectionSummary) {
	for _, r := range c.reporters {
		r.DetectionComplete(summary)
	}
}

func (c *CompositeReporter) SegmentSelected(summary SelectionSummary) {
	for _, r := range c.reporters {
		r.SegmentSelected(summary)
	}
}

func (c *CompositeReporter) StageProgress(update StageUpdate) {
	for _, r := range c.reporters {
		r.StageProgress(update)
	}
}

func (c *CompositeReporter) ClipComplete(summary ClipOutcome) {
	for _, r := range c.reporters {
		r.ClipComplete(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) BatchStarted(info BatchStartInfo) {
	for _, r := range c.reporters {
		r.BatchStarted(info)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) BatchComplete(summary BatchSummary) {
	for _, r := range c.reporters {
		r.BatchComplete(summary)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
