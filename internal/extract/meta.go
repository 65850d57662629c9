// Package extract pulls structured business data out of raw RFP text:
// document-level identifiers (client, venue, project title) and the
// line-level records that populate the structured workbook.
//
// Everything here is best-effort enrichment of unreliable OCR text.
// Extraction functions never fail; they fall back to empty values.
package extract

import (
	"regexp"
	"strings"

	"github.com/bidworks/rfp-analyzer/internal/entity"
)

// Ordered, first-match-wins. A spurious match is accepted as-is; the
// matched context travels with the value so reviewers can judge it.
var (
	clientPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*prepared\s+for[:\s-]+([^\n]{3,80})`),
		regexp.MustCompile(`(?im)\bclient\s*[:=]\s*([^\n]{3,80})`),
		regexp.MustCompile(`(?im)\bowner\s*[:=]\s*([^\n]{3,80})`),
		regexp.MustCompile(`(?im)\bissued\s+by[:\s]+([^\n]{3,80})`),
	}

	venuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)\b(?:at|for)\s+(?:the\s+)?([A-Z][A-Za-z0-9&.' -]{2,60}(?:Stadium|Arena|Center|Centre|Coliseum|Ballpark|Fieldhouse|Field|Park|Pavilion|Gymnasium))`),
		regexp.MustCompile(`(?im)\bvenue\s*[:=]\s*([^\n]{3,80})`),
		regexp.MustCompile(`(?im)\bfacility\s*[:=]\s*([^\n]{3,80})`),
	}

	projectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*project(?:\s+(?:title|name))?\s*[:=]\s*([^\n]{3,100})`),
		regexp.MustCompile(`(?im)^\s*request\s+for\s+proposals?\s*[:\-–—]\s*([^\n]{3,100})`),
		regexp.MustCompile(`(?im)\brfp\s+(?:no\.?|number|#)\s*[\w.-]+\s*[:\-–—]\s*([^\n]{3,100})`),
	}
)

// ExtractMeta pulls project/client/venue identifiers from free text.
// Each field takes the first matching pattern's first capture group,
// trimmed; fields with no match stay nil. No plausibility validation.
func ExtractMeta(rawText string) entity.RfpMeta {
	return entity.RfpMeta{
		ClientName:   firstMatch(clientPatterns, rawText),
		VenueName:    firstMatch(venuePatterns, rawText),
		ProjectTitle: firstMatch(projectPatterns, rawText),
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) *entity.MetaField {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value == "" {
			continue
		}
		return &entity.MetaField{
			Value:   value,
			Context: strings.TrimSpace(m[0]),
		}
	}
	return nil
}
