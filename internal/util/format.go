// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
)

// FormatBytes formats bytes with appropriate binary units (B, KiB, MiB, GiB).
func FormatBytes(bytes uint64) string {
	bf := float64(bytes)
	switch {
	case bf >= GiB:
		return fmt.Sprintf("%.2f GiB", bf/GiB)
	case bf >= MiB:
		return fmt.Sprintf("%.2f MiB", bf/MiB)
	case bf >= KiB:
		return fmt.Sprintf("%.2f KiB", bf/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration formats seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??"
	}

	totalSecs := int64(seconds)
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatTimeRange formats a start/end pair as "12.3s-45.6s".
func FormatTimeRange(start, end float64) string {
	return fmt.Sprintf("%.1fs-%.1fs", start, end)
}

// ParseFrameRate parses an ffprobe rational frame rate ("30000/1001") into
// frames per second. Returns 0 when the expression cannot be parsed.
func ParseFrameRate(rate string) float64 {
	parts := strings.Split(rate, "/")
	switch len(parts) {
	case 1:
		fps, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0
		}
		return fps
	case 2:
		num, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0
		}
		den, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || den == 0 {
			return 0
		}
		return num / den
	default:
		return 0
	}
}
