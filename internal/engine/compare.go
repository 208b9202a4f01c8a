package engine

import (
	"fmt"

	"github.com/piwi3910/FitPrint/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout and computed statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Layout        model.Layout
	Err           error
	PagesUsed     int
	PlacedCount   int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios packs the items once per scenario and returns the results
// in scenario order. This enables side-by-side comparison of strategies and
// settings on the same print job.
func CompareScenarios(scenarios []ComparisonScenario, items []model.Item, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		layout, err := Pack(scenario.Settings, items, opts...)

		waste := 0.0
		if len(layout.Pages) > 0 {
			waste = 100.0 - layout.TotalEfficiency()
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Layout:        layout,
			Err:           err,
			PagesUsed:     len(layout.Pages),
			PlacedCount:   layout.PlacedCount(),
			WastePercent:  waste,
			UnplacedCount: len(layout.Unplaced) + len(layout.Rejected),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings: every other strategy, rotation toggled, and page
// consolidation switched on.
func BuildDefaultScenarios(base model.LayoutSettings) []ComparisonScenario {
	base = base.WithDefaults()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, st := range model.Strategies() {
		if st == base.Strategy {
			continue
		}
		alt := base
		alt.Strategy = st
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Strategy %s", st),
			Settings: alt,
		})
	}

	rot := base
	rot.RotationAllowed = !base.RotationAllowed
	name := "Rotation On"
	if base.RotationAllowed {
		name = "Rotation Off"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: rot})

	if !base.Consolidate {
		cons := base
		cons.Consolidate = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Consolidate Pages",
			Settings: cons,
		})
	}

	return scenarios
}

// Best returns the index of the result that placed every item on the fewest
// pages, preferring higher efficiency and then scenario order. It returns -1
// when no scenario placed everything.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil || r.UnplacedCount > 0 {
			continue
		}
		if best < 0 || r.PagesUsed < results[best].PagesUsed ||
			(r.PagesUsed == results[best].PagesUsed && r.WastePercent < results[best].WastePercent-epsilon) {
			best = i
		}
	}
	return best
}

// PackBest packs the items with every strategy and returns the best layout,
// mirroring CompareScenarios followed by Best. Ties keep the configured
// strategy.
func PackBest(settings model.LayoutSettings, items []model.Item, opts ...Option) (model.Layout, error) {
	settings = settings.WithDefaults()
	scenarios := []ComparisonScenario{{Name: string(settings.Strategy), Settings: settings}}
	for _, st := range model.Strategies() {
		if st == settings.Strategy {
			continue
		}
		alt := settings
		alt.Strategy = st
		scenarios = append(scenarios, ComparisonScenario{Name: string(st), Settings: alt})
	}

	results := CompareScenarios(scenarios, items, opts...)
	if i := Best(results); i >= 0 {
		return results[i].Layout, nil
	}
	return results[0].Layout, results[0].Err
}
