package transform

import (
	"regexp"
	"strings"
)

const (
	// maxLineChars caps how many characters fit on one overlay line.
	maxLineChars = 18

	// maxWordChars truncates single words that would not fit a line.
	maxWordChars = 16

	// maxLines caps how many lines get burned into the frame.
	maxLines = 7
)

var (
	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

	// Characters that break ffmpeg drawtext quoting or just look bad on
	// screen.
	unsafeChars = strings.NewReplacer(
		"'", "",
		`"`, "",
		";", "",
		":", "",
		`\`, "",
		"`", "",
	)
)

// CleanCaption strips URLs and drawtext-hostile characters from raw caption
// text and collapses runs of whitespace.
func CleanCaption(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = unsafeChars.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// WrapCaption cleans the caption, uppercases it, and wraps it into overlay
// lines. Words too long for a line are truncated rather than split. Returns
// nil when nothing printable remains.
func WrapCaption(text string) []string {
	cleaned := CleanCaption(text)
	if cleaned == "" {
		return nil
	}

	words := strings.Fields(strings.ToUpper(cleaned))

	var lines []string
	var current string
	for _, word := range words {
		if runes := []rune(word); len(runes) > maxWordChars {
			word = string(runes[:maxWordChars])
		}

		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= maxLineChars:
			current += " " + word
		default:
			lines = append(lines, current)
			if len(lines) >= maxLines {
				return lines
			}
			current = word
		}
	}
	if current != "" && len(lines) < maxLines {
		lines = append(lines, current)
	}

	return lines
}
