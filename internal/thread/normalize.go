package thread

import "strings"

// Clean strips leftover markdown from a tweet segment and canonicalizes
// its whitespace. The steps run in a fixed order: later ones assume the
// text earlier ones produce. Line breaks are the segment's bullet-point
// boundaries and must survive; only horizontal whitespace collapses.
func Clean(s string) string {
	// Backticks, then bold/italic markers.
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")

	// One space on each side of every bullet.
	s = strings.ReplaceAll(s, "•", " • ")
	s = strings.ReplaceAll(s, "  •  ", " • ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
