package processing

import (
	"context"
	"strings"
	"testing"

	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/ffprobe"
	"github.com/clipforge/clipforge/internal/reporter"
	"github.com/clipforge/clipforge/internal/segment"
)

func TestAnalyzeAndDetectDegradesOnUndecodableSource(t *testing.T) {
	cfg := config.NewConfig(t.TempDir())
	// Unknown frame rate means the sampler cannot start a decode.
	info := &ffprobe.MediaInfo{Duration: 90}

	var warnings []string
	candidates := analyzeAndDetect(context.Background(), "broken.mp4", info, 90,
		cfg, reporter.NullReporter{}, &warnings)

	if len(candidates) != 1 {
		t.Fatalf("expected a single fallback candidate, got %d", len(candidates))
	}
	if candidates[0].Reason != segment.ReasonDefaultFallback {
		t.Errorf("expected fallback reason, got %s", candidates[0].Reason)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "decode") {
		t.Errorf("expected a decode warning, got %v", warnings)
	}
}
