// Package estimator computes a deterministic, formula-traceable cost and
// pricing breakdown for an LED display installation described in free
// text. It is a rules engine: identical text always produces identical
// numbers, and every line item records the literal arithmetic behind it.
package estimator

import (
	"github.com/bidworks/rfp-analyzer/constants"
)

// ProfileRates are the per-profile $/sqft rates from the static table.
type ProfileRates struct {
	VendorPerSqFt     float64
	StructuralPerSqFt float64
	Product           string
}

var profileRates = map[constants.Profile]ProfileRates{
	constants.ProfileOutdoorMarquee: {
		VendorPerSqFt:     175,
		StructuralPerSqFt: 28,
		Product:           "10mm Outdoor SMD LED",
	},
	constants.ProfileCenterHung: {
		VendorPerSqFt:     225,
		StructuralPerSqFt: 45,
		Product:           "6mm Center-Hung Video Display",
	},
	constants.ProfileLobbyAtrium: {
		VendorPerSqFt:     135,
		StructuralPerSqFt: 16,
		Product:           "2.5mm Indoor Fine-Pitch LED",
	},
	constants.ProfileIndoorStandard: {
		VendorPerSqFt:     115,
		StructuralPerSqFt: 12,
		Product:           "4mm Indoor SMD LED",
	},
}

// RatesFor returns the rate-table entry for a profile. Unknown profiles
// fall back to indoor standard.
func RatesFor(p constants.Profile) ProfileRates {
	if r, ok := profileRates[p]; ok {
		return r
	}
	return profileRates[constants.ProfileIndoorStandard]
}

// Fixed rates and factors shared by every profile.
const (
	dutyFactor   = 1.10 // import duty on LED hardware
	sparesFactor = 1.03 // attic stock carried with the hardware buy

	installLaborPerSqFt    = 22.50
	electricalPerSqFt      = 14.00
	weatherproofingPerSqFt = 9.00

	sendingCardEach     = 1850.00
	signalCableKitRate  = 425.00
	signalCableKitSqFt  = 25.0
	upsBackupFlat       = 6500.00
	backupProcessorFlat = 8500.00
	projectMgmtFlat     = 7500.00
	engineeringFlat     = 4800.00

	sparePartsPct = 0.02

	// backupProcessorSqFt is the total-area threshold above which a
	// redundant video processor is carried.
	backupProcessorSqFt = 300.0

	// DefaultAreaSqFt is assumed per display when no area or dimensions
	// parse from the text. Always surfaced in assumptions.
	DefaultAreaSqFt = 150.0

	// DefaultMarginTarget is the gross margin the selling price is
	// derived from: sellingPrice = totalCost / (1 - margin).
	DefaultMarginTarget = 0.15
)
