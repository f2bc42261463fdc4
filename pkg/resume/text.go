package resume

import (
	"regexp"
	"strings"
)

var reSegmentSep = regexp.MustCompile(`\s*[,|•·]\s*`)

// Lines splits text into lines with surrounding spaces trimmed. Blank lines are kept.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// NameCandidates returns line itself and, for lines like "John Doe, john@x.io",
// the first separated segment.
func NameCandidates(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	out := []string{line}
	parts := reSegmentSep.Split(line, 2)
	if len(parts) == 2 && parts[0] != "" {
		out = append(out, parts[0])
	}
	return out
}
