package thread

import (
	"strings"

	"tx-mentions-bot/internal/types"
)

// marker is the prefix that opens a new tweet segment, e.g. "Tweet 1: ...".
const marker = "Tweet "

// Parse carves a raw model response into exactly three tweet segments.
// It never fails: segments the text doesn't yield come back as empty
// strings, and anything past the third marker is dropped. Lines before
// the first marker are discarded, and blank lines never make it into a
// segment.
func Parse(raw string) types.Thread {
	var segments []string
	var current []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, marker) && strings.Contains(line, ":"):
			if len(current) > 0 {
				segments = append(segments, strings.Join(current, "\n"))
			}
			_, rest, _ := strings.Cut(line, ":")
			current = []string{strings.TrimSpace(rest)}
		case line != "" && len(current) > 0:
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}

	for i, seg := range segments {
		segments[i] = Clean(seg)
	}
	for len(segments) < 3 {
		segments = append(segments, "")
	}

	return types.Thread{Tweet1: segments[0], Tweet2: segments[1], Tweet3: segments[2]}
}
