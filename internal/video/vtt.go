// ABOUTME: WEBVTT caption cleanup into plain transcript text
// ABOUTME: Drops headers, cue identifiers, and timestamp lines
package video

import (
	"regexp"
	"strings"
)

var (
	timestampLine = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}$`)
	cueIDLine     = regexp.MustCompile(`^\d+$`)
)

// CleanVTT strips WEBVTT structure from caption file content: the header
// line, blank lines, numeric cue identifiers, and timestamp ranges. The
// remaining caption lines are joined with single spaces.
func CleanVTT(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "WEBVTT") || strings.TrimSpace(line) == "" {
			continue
		}
		if timestampLine.MatchString(line) || cueIDLine.MatchString(line) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
