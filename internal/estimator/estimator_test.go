package estimator

import (
	"strings"
	"testing"

	"github.com/bidworks/rfp-analyzer/constants"
)

func TestRun_OutdoorMarqueeScenario(t *testing.T) {
	res := Run("2 displays, 10ft x 20ft, outdoor marquee", Options{})

	d := res.Display
	if d.Profile != constants.ProfileOutdoorMarquee {
		t.Fatalf("profile = %s, want outdoor_marquee", d.Profile)
	}
	if d.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", d.Quantity)
	}
	if d.AreaPerDisplaySqFt != 200 {
		t.Errorf("area = %v, want 200", d.AreaPerDisplaySqFt)
	}
	if d.TotalSqFt != 400 {
		t.Errorf("total sqft = %v, want 400", d.TotalSqFt)
	}

	// The total must equal the literal sum of the line-item amounts.
	sum := 0.0
	for _, it := range res.LineItems {
		sum += it.Amount
	}
	if got := round2(sum); res.Totals.TotalCost != got {
		t.Errorf("total cost %v != line item sum %v", res.Totals.TotalCost, got)
	}

	// Recompute each line with the documented arithmetic.
	rates := RatesFor(constants.ProfileOutdoorMarquee)
	hardware := round2(rates.VendorPerSqFt * dutyFactor * sparesFactor * 400)
	want := map[string]float64{
		"LED-HW":    hardware,
		"INST-LAB":  round2(installLaborPerSqFt * 400),
		"ELEC":      round2(electricalPerSqFt * 400),
		"STRUCT":    round2(rates.StructuralPerSqFt * 400),
		"SEND-CARD": round2(sendingCardEach * 2),
		"SPARES":    round2(sparePartsPct * hardware),
		"SIG-CABLE": round2(signalCableKitRate * 400 / signalCableKitSqFt),
		"BKP-PROC":  backupProcessorFlat, // 400 > 300
		"WEATHER":   round2(weatherproofingPerSqFt * 400),
		"PM":        projectMgmtFlat,
		"ENG":       engineeringFlat,
	}
	if len(res.LineItems) != len(want) {
		t.Fatalf("line items = %d, want %d", len(res.LineItems), len(want))
	}
	for _, it := range res.LineItems {
		if w, ok := want[it.ID]; !ok {
			t.Errorf("unexpected line item %s", it.ID)
		} else if it.Amount != w {
			t.Errorf("%s amount = %v, want %v", it.ID, it.Amount, w)
		}
		if it.ID == "UPS" {
			t.Error("UPS must not trigger for outdoor marquee")
		}
	}

	if got := round2(res.Totals.TotalCost / 0.85); res.Totals.SellingPrice != got {
		t.Errorf("selling price = %v, want totalCost/0.85 = %v", res.Totals.SellingPrice, got)
	}
	if gm := round2(res.Totals.SellingPrice - res.Totals.TotalCost); res.Totals.GrossMarginDollars != gm {
		t.Errorf("gross margin = %v, want %v", res.Totals.GrossMarginDollars, gm)
	}
}

func TestRun_FormulaStringsCarryComputedAmounts(t *testing.T) {
	res := Run("2 displays, 10ft x 20ft, outdoor marquee", Options{})
	for _, it := range res.LineItems {
		if it.Formula == "" {
			t.Errorf("%s has no formula", it.ID)
			continue
		}
		if !strings.Contains(it.Formula, money(it.Amount)) {
			t.Errorf("%s formula %q does not contain its amount %s", it.ID, it.Formula, money(it.Amount))
		}
	}
}

func TestRun_EmptyInputDefaults(t *testing.T) {
	res := Run("", Options{})

	d := res.Display
	if d.Profile != constants.ProfileIndoorStandard {
		t.Errorf("profile = %s, want indoor_standard", d.Profile)
	}
	if d.Quantity != 1 || d.AreaPerDisplaySqFt != DefaultAreaSqFt || d.TotalSqFt != DefaultAreaSqFt {
		t.Errorf("display = %+v, want 1 × %v sqft", d, DefaultAreaSqFt)
	}

	foundAreaAssumption := false
	foundQtyAssumption := false
	for _, a := range res.Assumptions {
		if strings.Contains(a, "assuming 150 sqft") {
			foundAreaAssumption = true
		}
		if strings.Contains(a, "assuming 1 display") {
			foundQtyAssumption = true
		}
	}
	if !foundAreaAssumption || !foundQtyAssumption {
		t.Errorf("defaults not documented in assumptions: %v", res.Assumptions)
	}

	// 150 sqft is under the backup-processor threshold, indoor profile
	// excludes UPS and weatherproofing.
	for _, it := range res.LineItems {
		switch it.ID {
		case "UPS", "BKP-PROC", "WEATHER":
			t.Errorf("conditional item %s must not trigger on defaults", it.ID)
		}
	}
}

func TestRun_CenterHungBundle(t *testing.T) {
	res := Run("Center hung scoreboard, 4 displays of 80 sq ft each.", Options{})

	if res.Display.Profile != constants.ProfileCenterHung {
		t.Fatalf("profile = %s", res.Display.Profile)
	}
	if res.Display.Quantity != 4 || res.Display.AreaPerDisplaySqFt != 80 {
		t.Errorf("display = %+v", res.Display)
	}

	var hasUPS, hasBackup bool
	for _, it := range res.LineItems {
		if it.ID == "UPS" {
			hasUPS = true
		}
		if it.ID == "BKP-PROC" {
			hasBackup = true
		}
	}
	if !hasUPS {
		t.Error("center hung profile must carry UPS backup")
	}
	if !hasBackup {
		t.Error("320 total sqft must carry the backup processor")
	}
}

func TestRun_AreaTakesMaximumCandidate(t *testing.T) {
	res := Run("Main board 20ft x 30ft, auxiliary ribbon 3ft x 40ft, approx 450 sq ft", Options{})
	if res.Display.AreaPerDisplaySqFt != 600 {
		t.Errorf("area = %v, want max candidate 600 (20x30)", res.Display.AreaPerDisplaySqFt)
	}
}

func TestRun_TaxAndBondRates(t *testing.T) {
	res := Run("Sales tax of 8.25% applies. A performance bond of 1.5% is required.", Options{})
	if res.Totals.TaxRate != 0.0825 {
		t.Errorf("tax rate = %v, want 0.0825", res.Totals.TaxRate)
	}
	if res.Totals.BondRate != 0.015 {
		t.Errorf("bond rate = %v, want 0.015", res.Totals.BondRate)
	}
	wantSubtotal := round2(res.Totals.SellingPrice + res.Totals.TaxAmount + res.Totals.BondAmount)
	if res.Totals.BidFormSubtotal != wantSubtotal {
		t.Errorf("bid form subtotal = %v, want %v", res.Totals.BidFormSubtotal, wantSubtotal)
	}
}

func TestRun_NoRatesDefaultToZero(t *testing.T) {
	res := Run("2 displays, outdoor marquee", Options{})
	if res.Totals.TaxRate != 0 || res.Totals.BondRate != 0 {
		t.Errorf("rates = %v/%v, want 0/0", res.Totals.TaxRate, res.Totals.BondRate)
	}
	if res.Totals.BidFormSubtotal != res.Totals.SellingPrice {
		t.Errorf("subtotal %v should equal selling price %v when no tax/bond", res.Totals.BidFormSubtotal, res.Totals.SellingPrice)
	}
}

func TestRun_Deterministic(t *testing.T) {
	a := Run("2 displays, 10ft x 20ft, outdoor marquee", Options{})
	b := Run("2 displays, 10ft x 20ft, outdoor marquee", Options{})
	if a.Totals != b.Totals {
		t.Errorf("totals differ between runs: %+v vs %+v", a.Totals, b.Totals)
	}
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{22.5, "$22.50"},
		{1850, "$1,850.00"},
		{79310, "$79,310.00"},
		{1234567.89, "$1,234,567.89"},
		{-500, "-$500.00"},
	}
	for _, c := range cases {
		if got := money(c.in); got != c.want {
			t.Errorf("money(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
