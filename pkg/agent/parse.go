package agent

import (
	"regexp"
	"strings"
)

// titleMarker introduces the title line in the AI response.
const titleMarker = "TITLE:"

// bodyPattern matches a fenced block tagged markdown, or a bare fence.
var bodyPattern = regexp.MustCompile("(?s)```(?:markdown)?\n(.*?)```")

// ParseTitle extracts the PR title from a raw AI response: the
// remainder of the first line starting with "TITLE:", leading
// whitespace ignored. Returns "" when no marker line exists.
func ParseTitle(response string) string {
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, titleMarker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, titleMarker))
		}
	}
	return ""
}

// ParseBody extracts the PR body from a raw AI response: the contents
// of the first fenced markdown block, trimmed. Returns "" when no
// fenced block exists; callers treat that as failed generation, never
// as a literal empty description.
func ParseBody(response string) string {
	match := bodyPattern.FindStringSubmatch(response)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
