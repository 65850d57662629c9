package constants

// Sheet names used by the workbook round-trip format. Order matters for
// export: readers expect Project first and Sources last.
const (
	SheetProject      = "Project"
	SheetRequirements = "Requirements"
	SheetPricing      = "Pricing"
	SheetSchedule     = "Schedule"
	SheetRisks        = "Risks"
	SheetAssumptions  = "Assumptions"
	SheetSources      = "Sources"
)

func SheetOrder() []string {
	return []string{
		SheetProject,
		SheetRequirements,
		SheetPricing,
		SheetSchedule,
		SheetRisks,
		SheetAssumptions,
		SheetSources,
	}
}

// ID prefixes for structured records, e.g. REQ-1, PRC-7.
const (
	IDPrefixRequirement = "REQ"
	IDPrefixPricing     = "PRC"
	IDPrefixSchedule    = "SCH"
	IDPrefixRisk        = "RSK"
	IDPrefixAssumption  = "ASM"
)

const (
	// MaxRecordsPerCollection caps each of the five structured collections.
	MaxRecordsPerCollection = 200

	// MaxMarkdownItems caps items rendered per section in the markdown report.
	MaxMarkdownItems = 80

	// MinLineLength filters OCR noise lines during field extraction.
	MinLineLength = 8

	// PricingItemMaxLen truncates pricing line text.
	PricingItemMaxLen = 120
)

// Priority and severity values carried by requirements and risks.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"

	SeverityHigh   = "High"
	SeverityMedium = "Medium"
)

// ScheduleDueTBD is recorded when no date could be parsed from a schedule line.
const ScheduleDueTBD = "TBD"
