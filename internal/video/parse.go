// ABOUTME: Canonical video identifier parsing from watch URLs
// ABOUTME: Recognizes youtube.com/watch?v= and youtu.be/ forms
package video

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidURL reports a URL that matches no recognized video pattern
var ErrInvalidURL = errors.New("invalid video URL")

var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]+)`)

// ParseVideoID extracts the canonical video identifier from a URL.
// The first pattern match wins.
func ParseVideoID(url string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	return match[1], nil
}
