// ABOUTME: Tests for WEBVTT caption cleanup
// ABOUTME: Verifies structural lines are dropped and captions joined
package video

import "testing"

func TestCleanVTT(t *testing.T) {
	content := "WEBVTT\n" +
		"\n" +
		"1\n" +
		"00:00:00.000 --> 00:00:02.500\n" +
		"welcome back to the channel\n" +
		"\n" +
		"2\n" +
		"00:00:02.500 --> 00:00:05.000\n" +
		"today we train legs\n"

	got := CleanVTT(content)
	want := "welcome back to the channel today we train legs"
	if got != want {
		t.Errorf("CleanVTT() = %q, want %q", got, want)
	}
}

func TestCleanVTTEmpty(t *testing.T) {
	if got := CleanVTT(""); got != "" {
		t.Errorf("CleanVTT(\"\") = %q, want empty", got)
	}

	onlyStructure := "WEBVTT\n\n1\n00:00:00.000 --> 00:00:01.000\n"
	if got := CleanVTT(onlyStructure); got != "" {
		t.Errorf("CleanVTT(structure only) = %q, want empty", got)
	}
}

func TestCleanVTTKeepsNonNumericCueText(t *testing.T) {
	// A caption line that merely contains digits is not a cue identifier.
	content := "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\ndo 5 sets of 5 reps\n"
	if got := CleanVTT(content); got != "do 5 sets of 5 reps" {
		t.Errorf("CleanVTT() = %q", got)
	}
}

func TestCleanVTTWindowsLineEndings(t *testing.T) {
	content := "WEBVTT\r\n\r\n00:00:00.000 --> 00:00:01.000\r\nhello there\r\n"
	if got := CleanVTT(content); got != "hello there" {
		t.Errorf("CleanVTT() = %q, want %q", got, "hello there")
	}
}
