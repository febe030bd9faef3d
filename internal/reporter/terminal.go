package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/clipforge/clipforge/internal/util"
)

// timePrecision rounds elapsed times for display.
const timePrecision = 100 * time.Millisecond

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float32
	lastStage  string
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
}

func (r *TerminalReporter) SourceInfo(summary SourceSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	r.printLabel(11, "File:", summary.InputFile)
	r.printLabel(11, "Output:", summary.OutputFile)
	r.printLabel(11, "Duration:", summary.Duration)
	r.printLabel(11, "Resolution:", summary.Resolution)
	if summary.FPS > 0 {
		r.printLabel(11, "Frame rate:", fmt.Sprintf("%.2f fps", summary.FPS))
	}
	r.printLabel(11, "Audio:", summary.Audio)
}

func (r *TerminalReporter) AnalysisStarted(totalSamples int64) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Analyzing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) AnalysisProgress(snapshot AnalysisSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := snapshot.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}

	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	r.progress.Describe(fmt.Sprintf("%d samples", snapshot.SamplesScored))
}

func (r *TerminalReporter) DetectionComplete(summary DetectionSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("DETECTION")

	if summary.Fallback {
		fmt.Printf("  %s\n", r.yellow.Sprint("No high-motion segments found, using fallback window"))
	}

	for _, c := range summary.Candidates {
		fmt.Printf("  - %s %s (score %.1f)\n",
			util.FormatTimeRange(c.Start, c.End),
			color.New(color.Faint).Sprint(c.Reason),
			c.Score)
	}
}

func (r *TerminalReporter) SegmentSelected(summary SelectionSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("SELECTION")
	r.printLabel(9, "Window:", util.FormatTimeRange(summary.Start, summary.End))
	r.printLabel(9, "Length:", fmt.Sprintf("%.1fs", summary.Duration))
	r.printLabel(9, "Reason:", summary.Reason)
}

func (r *TerminalReporter) StageProgress(update StageUpdate) {
	r.mu.Lock()
	if r.lastStage != update.Stage {
		r.mu.Unlock()
		fmt.Println()
		_, _ = r.cyan.Println(strings.ToUpper(update.Stage))
		r.mu.Lock()
		r.lastStage = update.Stage
	}
	r.mu.Unlock()
	if update.Message != "" {
		fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), update.Message)
	}
}

func (r *TerminalReporter) ClipComplete(summary ClipOutcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	fmt.Printf("  %s %s\n", r.bold.Sprint("Output:"), r.bold.Sprint(summary.OutputFile))
	fmt.Printf("  %s %s -> %s\n",
		r.bold.Sprint("Size:"),
		util.FormatBytes(summary.SourceSize),
		util.FormatBytes(summary.OutputSize))
	r.printLabel(8, "Clip:", util.FormatTimeRange(summary.ClipStart, summary.ClipEnd))
	r.printLabel(8, "Reason:", summary.Reason)
	if len(summary.StagesApplied) > 0 {
		r.printLabel(8, "Stages:", strings.Join(summary.StagesApplied, ", "))
	}
	fmt.Printf("  %s %s\n", r.bold.Sprint("Time:"), summary.TotalTime.Round(timePrecision).String())
	fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.OutputPath))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d files -> %s\n", info.TotalFiles, r.bold.Sprint(info.OutputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nFile %s of %d\n",
		r.bold.Sprint(context.CurrentFile),
		context.TotalFiles)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.SuccessfulCount, summary.TotalFiles))
	fmt.Printf("  Output: %s total\n", util.FormatBytes(summary.TotalOutputSize))
	fmt.Printf("  Time: %s\n", summary.TotalDuration.Round(timePrecision).String())

	for _, result := range summary.FileResults {
		fmt.Printf("  - %s (%.1fs clip)\n", result.Filename, result.ClipLength)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
