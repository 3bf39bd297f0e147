package tui

import (
	"strings"
	"testing"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		sess:        mustSession(t, "abcd", "ab"),
		hasLast:     true,
		lastWPM:     72.4,
		lastAcc:     0.978,
		allSessions: 3,
		allWPM:      68.1,
		allAcc:      0.969,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Progress 50%", "Last 72.4 WPM", "97.8%", "All-time 68.1 WPM", "96.9%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutHistory(t *testing.T) {
	m := &Model{sess: mustSession(t, "abcd", "")}
	out := m.renderFooter()
	if !strings.Contains(out, "Progress 0%") {
		t.Fatalf("expected progress segment, got %s", out)
	}
	if strings.Contains(out, "Last") || strings.Contains(out, "All-time") {
		t.Fatalf("did not expect history segments, got %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
