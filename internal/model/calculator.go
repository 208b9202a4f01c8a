package model

import "math"

// PaperEstimate holds the results of a paper purchasing calculation.
type PaperEstimate struct {
	TotalPrintArea   float64 `json:"total_print_area"`   // Total area of all prints including spacing (sq mm)
	PageArea         float64 `json:"page_area"`          // Printable area of one page (sq mm)
	PagesNeededExact float64 `json:"pages_needed_exact"` // Exact fractional number of pages
	PagesNeededMin   int     `json:"pages_needed_min"`   // Lower bound on pages (ceiling of exact)
	PagesWithWaste   int     `json:"pages_with_waste"`   // Recommended pages including waste factor
	WastePercent     float64 `json:"waste_percent"`      // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost    float64 `json:"estimated_cost"`     // Total cost if pricing available
	PricePerSheet    float64 `json:"price_per_sheet"`    // Price used for estimation
	Spacing          float64 `json:"spacing"`            // Spacing used in calculation
}

// CalculatePaperEstimate computes how many sheets of paper a set of prints
// needs before packing. Each print is charged its spacing on the trailing
// edges, and an extra waste percentage covers packing losses.
func CalculatePaperEstimate(items []Item, pageWidth, pageHeight, spacing, wastePercent, pricePerSheet float64) PaperEstimate {
	var totalPrintArea float64
	for _, it := range items {
		totalPrintArea += (it.Width + spacing) * (it.Height + spacing)
	}

	pageArea := pageWidth * pageHeight
	if pageArea <= 0 {
		return PaperEstimate{
			TotalPrintArea: totalPrintArea,
			WastePercent:   wastePercent,
			Spacing:        spacing,
		}
	}

	exactPages := totalPrintArea / pageArea
	minPages := int(math.Ceil(exactPages))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	pagesWithWaste := int(math.Ceil(exactPages * wasteFactor))
	if pagesWithWaste < minPages {
		pagesWithWaste = minPages
	}

	return PaperEstimate{
		TotalPrintArea:   totalPrintArea,
		PageArea:         pageArea,
		PagesNeededExact: exactPages,
		PagesNeededMin:   minPages,
		PagesWithWaste:   pagesWithWaste,
		WastePercent:     wastePercent,
		EstimatedCost:    float64(pagesWithWaste) * pricePerSheet,
		PricePerSheet:    pricePerSheet,
		Spacing:          spacing,
	}
}
