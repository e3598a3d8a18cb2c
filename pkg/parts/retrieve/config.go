package retrieve

import "pc-estimate-be/pkg/parts"

// Ratio is the share of the total budget a category is expected to
// consume, as a [min, max] fraction pair.
type Ratio struct {
	Min float64
	Max float64
}

// Config carries the retrieval tuning knobs. The numbers are empirical:
// they exist to keep candidate sets non-empty under typical budgets,
// nothing about the specific values is load-bearing, which is why they
// live here instead of being buried in the query code.
type Config struct {
	// DefaultBudget applies when the caller stated no budget.
	DefaultBudget int

	// Budgets at or below LowBudgetThreshold widen both window bounds
	// (WidenLow/WidenHigh) to avoid empty results; above it only the
	// ceiling is stretched by TightenHigh to avoid runaway prices.
	LowBudgetThreshold int
	WidenLow           float64
	WidenHigh          float64
	TightenHigh        float64

	// Memory-standard / interface cut-overs.
	DDR5Threshold int
	NVMeThreshold int

	// Budgets at or above LiquidCoolerThreshold retrieve liquid coolers
	// when the user stated no cooling preference.
	LiquidCoolerThreshold int

	ShortlistSize int
	// OverFetchFactor times ShortlistSize is requested from the index
	// to leave room for post-filtering.
	OverFetchFactor int
	// MinUsable is the floor under which the relational fallback kicks in.
	MinUsable int

	Ratios           map[string]Ratio
	NegativeKeywords map[string][]string
}

// DefaultConfig returns the tuned defaults. RAM and SSD windows are
// hand-widened because bundle pricing is noisier than single-part
// pricing.
func DefaultConfig() Config {
	return Config{
		DefaultBudget:         1_500_000,
		LowBudgetThreshold:    1_000_000,
		WidenLow:              0.8,
		WidenHigh:             1.2,
		TightenHigh:           1.1,
		DDR5Threshold:         1_500_000,
		NVMeThreshold:         1_000_000,
		LiquidCoolerThreshold: 2_500_000,
		ShortlistSize:         8,
		OverFetchFactor:       3,
		MinUsable:             3,
		Ratios: map[string]Ratio{
			parts.CategoryCPU:          {Min: 0.12, Max: 0.30},
			parts.CategoryGPU:          {Min: 0.25, Max: 0.50},
			parts.CategoryMBoardIntel:  {Min: 0.05, Max: 0.15},
			parts.CategoryMBoardAMD:    {Min: 0.05, Max: 0.15},
			parts.CategoryRAM:          {Min: 0.10, Max: 0.30},
			parts.CategorySSD:          {Min: 0.02, Max: 0.15},
			parts.CategoryCoolerAir:    {Min: 0.01, Max: 0.08},
			parts.CategoryCoolerLiquid: {Min: 0.01, Max: 0.08},
			parts.CategoryPower:        {Min: 0.03, Max: 0.10},
			parts.CategoryCase:         {Min: 0.02, Max: 0.08},
		},
		NegativeKeywords: map[string][]string{
			// Accessories that share the card listings but are not cards.
			parts.CategoryGPU:   {"FAN", "COOLER", "CASE", "BRACKET", "지지대"},
			parts.CategoryPower: {"CABLE", "케이블"},
			parts.CategoryCase:  {"FAN", "쿨러"},
		},
	}
}

// PriceWindow derives the [min, max] candidate price range for one
// catalog category from the effective budget. The lower bound is never
// negative and the upper bound is monotonically non-decreasing in the
// budget.
func (c Config) PriceWindow(category string, budget int) (int, int) {
	ratio, ok := c.Ratios[category]
	if !ok {
		return 0, budget
	}

	min := float64(budget) * ratio.Min
	max := float64(budget) * ratio.Max

	if budget <= c.LowBudgetThreshold {
		min *= c.WidenLow
		max *= c.WidenHigh
	} else {
		max *= c.TightenHigh
		// The ceiling must not step down at the regime seam.
		if lowCeil := float64(c.LowBudgetThreshold) * ratio.Max * c.WidenHigh; max < lowCeil {
			max = lowCeil
		}
	}

	if min < 0 {
		min = 0
	}
	return int(min), int(max)
}

// KeywordFilter returns the positive keyword for categories with a
// memory-standard or interface distinction, or "" when none applies.
func (c Config) KeywordFilter(category string, budget int) string {
	switch category {
	case parts.CategoryRAM, parts.CategoryMBoardIntel, parts.CategoryMBoardAMD:
		if budget >= c.DDR5Threshold {
			return "DDR5"
		}
		return "DDR4"
	case parts.CategorySSD:
		if budget >= c.NVMeThreshold {
			return "NVMe"
		}
	}
	return ""
}
