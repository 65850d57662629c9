package workbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

// ToMarkdown renders a human-readable report of the workbook. Lossy by
// design: sections are capped and records stringified. It is a display
// format, never parsed back.
func ToMarkdown(wb *entity.StructuredWorkbook) string {
	var b strings.Builder

	title := wb.Project.Title
	if title == "" {
		title = "RFP Analysis"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if wb.Project.Client != "" {
		fmt.Fprintf(&b, "**Client:** %s\n", wb.Project.Client)
	}
	if wb.Project.Venue != "" {
		fmt.Fprintf(&b, "**Venue:** %s\n", wb.Project.Venue)
	}
	if !wb.Project.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "**Generated:** %s\n", wb.Project.GeneratedAt.UTC().Format(time.RFC3339))
	}
	b.WriteString("\n")

	if len(wb.Requirements) > 0 {
		fmt.Fprintf(&b, "## Requirements (%d)\n\n", len(wb.Requirements))
		for i, r := range wb.Requirements {
			if i == constants.MaxMarkdownItems {
				fmt.Fprintf(&b, "- … and %d more\n", len(wb.Requirements)-i)
				break
			}
			fmt.Fprintf(&b, "- **%s** (%s/%s) %s [%s]\n", r.ID, r.Category, r.Priority, r.Text, r.Citation)
		}
		b.WriteString("\n")
	}

	if len(wb.Pricing) > 0 {
		fmt.Fprintf(&b, "## Pricing (%d)\n\n", len(wb.Pricing))
		for i, p := range wb.Pricing {
			if i == constants.MaxMarkdownItems {
				fmt.Fprintf(&b, "- … and %d more\n", len(wb.Pricing)-i)
				break
			}
			fmt.Fprintf(&b, "- **%s** %s — %s [%s]\n", p.ID, p.Amount, p.Item, p.Citation)
		}
		b.WriteString("\n")
	}

	if len(wb.Schedule) > 0 {
		fmt.Fprintf(&b, "## Schedule (%d)\n\n", len(wb.Schedule))
		for i, s := range wb.Schedule {
			if i == constants.MaxMarkdownItems {
				fmt.Fprintf(&b, "- … and %d more\n", len(wb.Schedule)-i)
				break
			}
			fmt.Fprintf(&b, "- **%s** due %s — %s [%s]\n", s.ID, s.Due, s.Milestone, s.Citation)
		}
		b.WriteString("\n")
	}

	if len(wb.Risks) > 0 {
		fmt.Fprintf(&b, "## Risks (%d)\n\n", len(wb.Risks))
		for i, r := range wb.Risks {
			if i == constants.MaxMarkdownItems {
				fmt.Fprintf(&b, "- … and %d more\n", len(wb.Risks)-i)
				break
			}
			fmt.Fprintf(&b, "- **%s** (%s) %s [%s]\n", r.ID, r.Severity, r.Text, r.Citation)
		}
		b.WriteString("\n")
	}

	if len(wb.Assumptions) > 0 {
		fmt.Fprintf(&b, "## Assumptions (%d)\n\n", len(wb.Assumptions))
		for i, a := range wb.Assumptions {
			if i == constants.MaxMarkdownItems {
				fmt.Fprintf(&b, "- … and %d more\n", len(wb.Assumptions)-i)
				break
			}
			fmt.Fprintf(&b, "- **%s** %s [%s]\n", a.ID, a.Text, a.Citation)
		}
		b.WriteString("\n")
	}

	if len(wb.Sources) > 0 {
		fmt.Fprintf(&b, "## Sources (%d)\n\n", len(wb.Sources))
		for _, s := range wb.Sources {
			fmt.Fprintf(&b, "- %s: %s (%.2f, %s)\n", s.ID, s.Title, s.Score, s.Label)
		}
	}

	return b.String()
}
