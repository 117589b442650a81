package pipeline

import (
	"strings"

	"listas-pipeline/internal/model"
)

// SegmentPages flattens recognized pages into trimmed, non-empty line
// segments, preserving page order then line order within a page.
func SegmentPages(pages []model.RecognizedPage) []string {
	var segments []string
	for _, page := range pages {
		for _, raw := range strings.Split(page.Text, "\n") {
			line := strings.TrimSpace(raw)
			if line != "" {
				segments = append(segments, line)
			}
		}
	}
	return segments
}
