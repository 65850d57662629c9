package entity

import (
	"github.com/bidworks/rfp-analyzer/constants"
)

// DisplaySummary describes the classified display profile and the derived
// quantity/area inputs the cost build ran with.
type DisplaySummary struct {
	Profile               constants.Profile `json:"profile"`
	ProfileLabel          string            `json:"profile_label"`
	Product               string            `json:"product"`
	Quantity              int               `json:"quantity"`
	AreaPerDisplaySqFt    float64           `json:"area_per_display_sqft"`
	TotalSqFt             float64           `json:"total_sqft"`
	VendorRatePerSqFt     float64           `json:"vendor_rate_per_sqft"`
	StructuralRatePerSqFt float64           `json:"structural_rate_per_sqft"`
}

// EstimateLineItem is one priced line. Formula is load-bearing audit
// documentation: it must reproduce the exact arithmetic that produced
// Amount.
type EstimateLineItem struct {
	ID      string  `json:"id"`
	Group   string  `json:"group"`
	Label   string  `json:"label"`
	Formula string  `json:"formula"`
	Amount  float64 `json:"amount"`
}

// EstimateTotals is the rolled-up pricing block.
type EstimateTotals struct {
	TotalCost          float64 `json:"total_cost"`
	SellingPrice       float64 `json:"selling_price"`
	TaxRate            float64 `json:"tax_rate"`
	TaxAmount          float64 `json:"tax_amount"`
	BondRate           float64 `json:"bond_rate"`
	BondAmount         float64 `json:"bond_amount"`
	BidFormSubtotal    float64 `json:"bid_form_subtotal"`
	GrossMarginDollars float64 `json:"gross_margin_dollars"`
	GrossMarginPercent float64 `json:"gross_margin_percent"`
}

// EstimateResult is the full deterministic cost/price breakdown. It is
// stateless: recomputed on demand and never persisted by the core.
type EstimateResult struct {
	Project     ProjectInfo        `json:"project"`
	Assumptions []string           `json:"assumptions"`
	Display     DisplaySummary     `json:"display"`
	LineItems   []EstimateLineItem `json:"line_items"`
	Totals      EstimateTotals     `json:"totals"`
}
