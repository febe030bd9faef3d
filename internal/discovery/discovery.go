// Package discovery provides file discovery for clip processing.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clipforge/clipforge/internal/errors"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/util"
)

// Result contains the results of file discovery with metadata.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindVideoFiles finds video files in the given directory.
// Returns files sorted alphabetically by filename.
func FindVideoFiles(inputDir string) ([]string, error) {
	result, err := scanDirectory(inputDir)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// FindVideoFilesWithLogging finds video files and logs discovery progress.
// Logs the first 5 files found plus a count summary.
func FindVideoFilesWithLogging(inputDir string) (*Result, error) {
	result, err := scanDirectory(inputDir)
	if err != nil {
		return nil, err
	}

	logDiscoveredFiles(result.Files, logging.WithComponent("discovery"))
	return result, nil
}

func scanDirectory(inputDir string) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errors.NewPathError("directory does not exist: " + inputDir)
	}
	if !info.IsDir() {
		return nil, errors.NewPathError(inputDir + " is not a directory")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewIOError("cannot read directory "+inputDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsVideoFile(fullPath) {
			result.Files = append(result.Files, fullPath)
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, errors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	return result, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(files []string, logger zerolog.Logger) {
	logger.Info().Int("count", len(files)).Msg("found video files")

	maxToLog := min(5, len(files))
	for i := range maxToLog {
		logger.Debug().Str("file", filepath.Base(files[i])).Msg("discovered")
	}
	if len(files) > 5 {
		logger.Debug().Int("more", len(files)-5).Msg("additional files not listed")
	}
}
