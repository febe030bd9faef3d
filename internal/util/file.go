package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions is the list of supported video file extensions.
var VideoExtensions = map[string]bool{
	".mkv":  true,
	".wmv":  true,
	".ts":   true,
	".avi":  true,
	".mp4":  true,
	".m4v":  true,
	".mpg":  true,
	".mpeg": true,
	".mov":  true,
	".webm": true,
	".flv":  true,
	".m2ts": true,
	".ogv":  true,
	".vob":  true,
}

// IsVideoFile checks if the given path is a valid video file.
func IsVideoFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	return VideoExtensions[ext]
}

// HasVideoExtension checks whether the path carries a supported video
// extension, without touching the filesystem.
func HasVideoExtension(path string) bool {
	return VideoExtensions[strings.ToLower(filepath.Ext(path))]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// FileExists checks whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// ResolveOutputPath builds the final artifact path for an input file. When
// override is non-empty it is used as the output filename, otherwise the
// input stem gains a "_clip" suffix and an .mp4 extension.
func ResolveOutputPath(inputPath, outputDir, override string) string {
	if override != "" {
		return filepath.Join(outputDir, override)
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s_clip.mp4", GetFileStem(inputPath)))
}

// StagePath builds a working-file path for one pipeline stage. The run token
// keeps concurrent pipelines over the same source from colliding.
func StagePath(workDir, stem, stage, token string) string {
	return filepath.Join(workDir, fmt.Sprintf("%s_%s_%s.mp4", stem, stage, token))
}
