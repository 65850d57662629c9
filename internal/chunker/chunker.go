// Package chunker splits raw document text into discrete sections for
// independent relevance scoring.
package chunker

import (
	"regexp"
	"strings"
)

// Sentinel marks section boundaries in text that was previously assembled
// from discrete sections (e.g. a re-joined analysis). Splitting on it is
// exact, with no length filtering, so Split is idempotent over its own
// joined output.
const Sentinel = "\n\n---\n\n"

// MinFragmentLen drops OCR line-wrap noise when splitting on blank lines.
const MinFragmentLen = 80

var reBlankRun = regexp.MustCompile(`\n{2,}`)

// Split divides rawText into chunks. If the text contains the sentinel
// separator it is split on that exactly; otherwise it is split on runs of
// two or more newlines, discarding fragments shorter than MinFragmentLen.
// Empty or whitespace-only input yields an empty slice, never a single
// empty chunk.
func Split(rawText string) []string {
	if strings.TrimSpace(rawText) == "" {
		return []string{}
	}

	if strings.Contains(rawText, Sentinel) {
		parts := strings.Split(rawText, Sentinel)
		chunks := make([]string, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				continue
			}
			chunks = append(chunks, p)
		}
		return chunks
	}

	parts := reBlankRun.Split(rawText, -1)
	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < MinFragmentLen {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks
}

// Join reassembles chunks into the sentinel format Split recognizes.
func Join(chunks []string) string {
	return strings.Join(chunks, Sentinel)
}
