package estimator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

var (
	reQuantity = regexp.MustCompile(`(?i)\b(\d+)\s*(displays|screens|units|boards)\b`)
	reSqFt     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:sq\.?\s*ft\.?|sqft|square\s+feet)\b`)
	reDims     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:'|ft\.?|feet)?\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:'|ft\.?|feet)?\b`)
	reTaxRate  = regexp.MustCompile(`(?i)tax[^%\n]{0,40}?(\d+(?:\.\d+)?)\s*%`)
	reBondRate = regexp.MustCompile(`(?i)bond[^%\n]{0,40}?(\d+(?:\.\d+)?)\s*%`)
)

// Options carry the optional project identity fields and tunables.
type Options struct {
	ProjectTitle string
	ClientName   string
	VenueName    string

	// MarginTarget defaults to DefaultMarginTarget when zero.
	MarginTarget float64
}

// Run produces the full estimate for the given text. It never fails:
// every unparsable input falls back to a documented default, and each
// fallback is recorded in the result's assumptions.
func Run(rawText string, opts Options) *entity.EstimateResult {
	margin := opts.MarginTarget
	if margin <= 0 || margin >= 1 {
		margin = DefaultMarginTarget
	}

	norm := strings.ToLower(rawText)
	var assumptions []string

	profile, trigger := classifyProfile(norm)
	rates := RatesFor(profile)
	if trigger != "" {
		assumptions = append(assumptions, fmt.Sprintf("Profile classified as %s (matched %q).", profile.Label(), trigger))
	} else {
		assumptions = append(assumptions, fmt.Sprintf("No profile keywords found; defaulting to %s.", profile.Label()))
	}

	quantity := parseQuantity(norm)
	if quantity == 0 {
		quantity = 1
		assumptions = append(assumptions, "No display quantity found; assuming 1 display.")
	}

	area, areaSource := parseArea(norm)
	if area == 0 {
		area = DefaultAreaSqFt
		assumptions = append(assumptions, fmt.Sprintf("No area or dimensions found; assuming %.0f sqft per display.", DefaultAreaSqFt))
	} else {
		assumptions = append(assumptions, fmt.Sprintf("Using largest parsed area %s sqft per display (from %s).", trimFloat(area), areaSource))
	}

	totalSqFt := float64(quantity) * area

	items := buildLineItems(profile, rates, quantity, totalSqFt)

	totalCost := 0.0
	for _, it := range items {
		totalCost += it.Amount
	}
	totalCost = round2(totalCost)

	sellingPrice := round2(totalCost / (1 - margin))
	assumptions = append(assumptions, fmt.Sprintf("Selling price targets a %.0f%% gross margin: %s ÷ %.2f.", margin*100, money(totalCost), 1-margin))

	taxRate, taxCtx := parseRate(reTaxRate, rawText)
	if taxCtx == "" {
		assumptions = append(assumptions, "No tax rate found in text; assuming 0%.")
	} else {
		assumptions = append(assumptions, fmt.Sprintf("Tax rate %s%% parsed from %q.", trimFloat(taxRate*100), taxCtx))
	}
	bondRate, bondCtx := parseRate(reBondRate, rawText)
	if bondCtx == "" {
		assumptions = append(assumptions, "No bond rate found in text; assuming 0%.")
	} else {
		assumptions = append(assumptions, fmt.Sprintf("Bond rate %s%% parsed from %q.", trimFloat(bondRate*100), bondCtx))
	}

	taxAmount := round2(sellingPrice * taxRate)
	bondAmount := round2(sellingPrice * bondRate)
	bidFormSubtotal := round2(sellingPrice + taxAmount + bondAmount)
	grossMargin := round2(sellingPrice - totalCost)
	grossMarginPct := 0.0
	if sellingPrice > 0 {
		grossMarginPct = round2(grossMargin / sellingPrice * 100)
	}

	return &entity.EstimateResult{
		Project: entity.ProjectInfo{
			Title:       opts.ProjectTitle,
			Client:      opts.ClientName,
			Venue:       opts.VenueName,
			GeneratedAt: time.Now().UTC(),
		},
		Assumptions: assumptions,
		Display: entity.DisplaySummary{
			Profile:               profile,
			ProfileLabel:          profile.Label(),
			Product:               rates.Product,
			Quantity:              quantity,
			AreaPerDisplaySqFt:    area,
			TotalSqFt:             totalSqFt,
			VendorRatePerSqFt:     rates.VendorPerSqFt,
			StructuralRatePerSqFt: rates.StructuralPerSqFt,
		},
		LineItems: items,
		Totals: entity.EstimateTotals{
			TotalCost:          totalCost,
			SellingPrice:       sellingPrice,
			TaxRate:            taxRate,
			TaxAmount:          taxAmount,
			BondRate:           bondRate,
			BondAmount:         bondAmount,
			BidFormSubtotal:    bidFormSubtotal,
			GrossMarginDollars: grossMargin,
			GrossMarginPercent: grossMarginPct,
		},
	}
}

// classifyProfile checks profile keywords in fixed priority order and
// returns the matched trigger text (empty for the default).
func classifyProfile(norm string) (constants.Profile, string) {
	if strings.Contains(norm, "outdoor marquee") {
		return constants.ProfileOutdoorMarquee, "outdoor marquee"
	}
	for _, kw := range []string{"center hung", "center-hung", "scoreboard"} {
		if strings.Contains(norm, kw) {
			return constants.ProfileCenterHung, kw
		}
	}
	for _, kw := range []string{"lobby", "atrium"} {
		if strings.Contains(norm, kw) {
			return constants.ProfileLobbyAtrium, kw
		}
	}
	return constants.ProfileIndoorStandard, ""
}

func parseQuantity(norm string) int {
	m := reQuantity.FindStringSubmatch(norm)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// parseArea gathers every explicit sqft mention and every WxH dimension
// pair, and returns the largest candidate as the representative
// single-display area. Max, not sum: multiple mentions usually describe
// the same display.
func parseArea(norm string) (float64, string) {
	best := 0.0
	source := ""
	for _, m := range reSqFt.FindAllStringSubmatch(norm, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > best {
			best = v
			source = strings.TrimSpace(m[0])
		}
	}
	for _, m := range reDims.FindAllStringSubmatch(norm, -1) {
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		if errW != nil || errH != nil {
			continue
		}
		if v := w * h; v > best {
			best = v
			source = strings.TrimSpace(m[0])
		}
	}
	return best, source
}

func parseRate(re *regexp.Regexp, text string) (float64, string) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, ""
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 100 {
		return 0, ""
	}
	return v / 100, strings.TrimSpace(m[0])
}

// buildLineItems assembles the cost build. Conditional items that do not
// trigger are omitted (they contribute zero).
func buildLineItems(profile constants.Profile, rates ProfileRates, quantity int, totalSqFt float64) []entity.EstimateLineItem {
	var items []entity.EstimateLineItem
	add := func(id, group, label, formula string, amount float64) {
		items = append(items, entity.EstimateLineItem{
			ID: id, Group: group, Label: label, Formula: formula, Amount: round2(amount),
		})
	}

	hardware := round2(rates.VendorPerSqFt * dutyFactor * sparesFactor * totalSqFt)
	add("LED-HW", "Display", "LED display hardware",
		fmt.Sprintf("%s/sqft × %.2f duty × %.2f spares × %s sqft = %s",
			money(rates.VendorPerSqFt), dutyFactor, sparesFactor, trimFloat(totalSqFt), money(hardware)),
		hardware)

	labor := round2(installLaborPerSqFt * totalSqFt)
	add("INST-LAB", "Installation", "Installation labor",
		fmt.Sprintf("%s/sqft × %s sqft = %s", money(installLaborPerSqFt), trimFloat(totalSqFt), money(labor)),
		labor)

	electrical := round2(electricalPerSqFt * totalSqFt)
	add("ELEC", "Installation", "Electrical distribution",
		fmt.Sprintf("%s/sqft × %s sqft = %s", money(electricalPerSqFt), trimFloat(totalSqFt), money(electrical)),
		electrical)

	structural := round2(rates.StructuralPerSqFt * totalSqFt)
	add("STRUCT", "Installation", "Structural support",
		fmt.Sprintf("%s/sqft × %s sqft = %s", money(rates.StructuralPerSqFt), trimFloat(totalSqFt), money(structural)),
		structural)

	sendingCards := round2(sendingCardEach * float64(quantity))
	add("SEND-CARD", "Bundle", "Sending card",
		fmt.Sprintf("%s × %d displays = %s", money(sendingCardEach), quantity, money(sendingCards)),
		sendingCards)

	spareParts := round2(sparePartsPct * hardware)
	add("SPARES", "Bundle", "Spare parts package",
		fmt.Sprintf("%.0f%% × %s hardware = %s", sparePartsPct*100, money(hardware), money(spareParts)),
		spareParts)

	cableKits := round2(signalCableKitRate * totalSqFt / signalCableKitSqFt)
	add("SIG-CABLE", "Bundle", "Signal cable kit",
		fmt.Sprintf("%s × (%s sqft ÷ %.0f) = %s", money(signalCableKitRate), trimFloat(totalSqFt), signalCableKitSqFt, money(cableKits)),
		cableKits)

	if profile == constants.ProfileCenterHung {
		add("UPS", "Bundle", "UPS backup power",
			fmt.Sprintf("%s flat (center-hung/scoreboard profile)", money(upsBackupFlat)),
			upsBackupFlat)
	}

	if totalSqFt > backupProcessorSqFt {
		add("BKP-PROC", "Bundle", "Backup video processor",
			fmt.Sprintf("%s flat (total %s sqft > %.0f)", money(backupProcessorFlat), trimFloat(totalSqFt), backupProcessorSqFt),
			backupProcessorFlat)
	}

	if profile == constants.ProfileOutdoorMarquee {
		weather := round2(weatherproofingPerSqFt * totalSqFt)
		add("WEATHER", "Bundle", "Weatherproofing surcharge",
			fmt.Sprintf("%s/sqft × %s sqft = %s (outdoor profile)", money(weatherproofingPerSqFt), trimFloat(totalSqFt), money(weather)),
			weather)
	}

	add("PM", "Services", "Project management",
		fmt.Sprintf("%s flat", money(projectMgmtFlat)), projectMgmtFlat)
	add("ENG", "Services", "Engineering drawings",
		fmt.Sprintf("%s flat", money(engineeringFlat)), engineeringFlat)

	return items
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// money renders a dollar amount with comma grouping, e.g. $79,310.00.
func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(round2(v), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := "$" + b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}

// trimFloat renders a float without trailing zeros (400, 187.5).
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
