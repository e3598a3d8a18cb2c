package retrieve

import (
	"context"
	"errors"
	"testing"

	"pc-estimate-be/pkg/parts"
)

type fakeIndex struct {
	results map[string][]parts.Candidate // keyed by category
	calls   []indexCall
	err     error
}

type indexCall struct {
	category string
	minPrice int
	maxPrice int
}

func (f *fakeIndex) Search(_ context.Context, _ string, category string, minPrice, maxPrice, _ int) ([]parts.Candidate, error) {
	f.calls = append(f.calls, indexCall{category: category, minPrice: minPrice, maxPrice: maxPrice})
	if f.err != nil {
		return nil, f.err
	}
	var out []parts.Candidate
	for _, c := range f.results[category] {
		if c.Price >= minPrice && c.Price <= maxPrice {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	rows map[string][]parts.Candidate
	err  error
}

func (f *fakeCatalog) CheapestByCategory(_ context.Context, category string, limit int) ([]parts.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	rows := f.rows[category]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func budgetQuery(budget int) *parts.Query {
	return &parts.Query{Budget: &budget}
}

func TestPriceWindowProperties(t *testing.T) {
	cfg := DefaultConfig()

	// Lower bound is never negative and the ceiling never decreases as
	// the budget grows, across the low/high regime seam included.
	for _, category := range []string{parts.CategoryCPU, parts.CategoryGPU, parts.CategoryRAM, parts.CategorySSD} {
		prevMax := -1
		for budget := 100_000; budget <= 5_000_000; budget += 50_000 {
			min, max := cfg.PriceWindow(category, budget)
			if min < 0 {
				t.Fatalf("%s budget %d: min = %d < 0", category, budget, min)
			}
			if max < prevMax {
				t.Fatalf("%s budget %d: ceiling decreased %d -> %d", category, budget, prevMax, max)
			}
			prevMax = max
		}
	}
}

func TestPriceWindowOfficeScenario(t *testing.T) {
	cfg := DefaultConfig()

	// budget=1,000,000 office build: the GPU ceiling must stay inside
	// the 550k..1.1M envelope.
	_, max := cfg.PriceWindow(parts.CategoryGPU, 1_000_000)
	if max < 550_000 || max > 1_100_000 {
		t.Errorf("GPU ceiling = %d, want within [550000, 1100000]", max)
	}
}

func TestKeywordFilterThresholds(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.KeywordFilter(parts.CategoryRAM, 1_000_000); got != "DDR4" {
		t.Errorf("RAM low budget = %q, want DDR4", got)
	}
	if got := cfg.KeywordFilter(parts.CategoryRAM, 2_000_000); got != "DDR5" {
		t.Errorf("RAM high budget = %q, want DDR5", got)
	}
	if got := cfg.KeywordFilter(parts.CategorySSD, 500_000); got != "" {
		t.Errorf("SSD low budget = %q, want no filter", got)
	}
	if got := cfg.KeywordFilter(parts.CategorySSD, 1_500_000); got != "NVMe" {
		t.Errorf("SSD high budget = %q, want NVMe", got)
	}
	if got := cfg.KeywordFilter(parts.CategoryCPU, 1_500_000); got != "" {
		t.Errorf("CPU = %q, want no filter", got)
	}
}

func TestNegativeKeywordExclusion(t *testing.T) {
	index := &fakeIndex{results: map[string][]parts.Candidate{
		parts.CategoryGPU: {
			{Name: "RTX 4070 SUPER", Category: parts.CategoryGPU, Price: 900_000},
			{Name: "GPU SUPPORT BRACKET", Category: parts.CategoryGPU, Price: 890_000},
			{Name: "VGA COOLER FAN", Category: parts.CategoryGPU, Price: 880_000},
			{Name: "RTX 4060 Ti", Category: parts.CategoryGPU, Price: 870_000},
			{Name: "RX 7800 XT", Category: parts.CategoryGPU, Price: 860_000},
		},
	}}
	r := NewRetriever(index, &fakeCatalog{}, DefaultConfig(), nil)

	got := r.retrieveCategory(context.Background(), budgetQuery(2_000_000), parts.CategoryGPU, 2_000_000)
	for _, c := range got {
		if c.Name == "GPU SUPPORT BRACKET" || c.Name == "VGA COOLER FAN" {
			t.Errorf("accessory %q survived the blacklist", c.Name)
		}
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3 real cards", len(got))
	}
}

func TestRetryRelaxesOnlyLowerBound(t *testing.T) {
	// All DDR4 sticks priced below the window floor: first pass finds
	// nothing, retry with floor 0 must find them without lifting the
	// ceiling.
	index := &fakeIndex{results: map[string][]parts.Candidate{
		parts.CategoryRAM: {
			{Name: "DDR4 16GB", Category: parts.CategoryRAM, Price: 30_000},
			{Name: "DDR4 32GB", Category: parts.CategoryRAM, Price: 60_000},
			{Name: "DDR4 64GB", Category: parts.CategoryRAM, Price: 65_000},
		},
	}}
	r := NewRetriever(index, &fakeCatalog{}, DefaultConfig(), nil)

	got := r.retrieveCategory(context.Background(), budgetQuery(1_000_000), parts.CategoryRAM, 1_000_000)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 after retry", len(got))
	}
	if len(index.calls) < 2 {
		t.Fatalf("calls = %d, want a retry", len(index.calls))
	}
	first, second := index.calls[0], index.calls[1]
	if second.minPrice != 0 {
		t.Errorf("retry floor = %d, want 0", second.minPrice)
	}
	if second.maxPrice != first.maxPrice {
		t.Errorf("retry ceiling changed %d -> %d", first.maxPrice, second.maxPrice)
	}
}

func TestRelationalFallbackWhenThin(t *testing.T) {
	index := &fakeIndex{err: errors.New("index down")}
	catalog := &fakeCatalog{rows: map[string][]parts.Candidate{
		parts.CategoryCase: {
			{Name: "Mid Tower A", Category: parts.CategoryCase, Price: 45_000},
			{Name: "Mid Tower B", Category: parts.CategoryCase, Price: 52_000},
		},
	}}
	r := NewRetriever(index, catalog, DefaultConfig(), nil)

	got := r.retrieveCategory(context.Background(), budgetQuery(1_500_000), parts.CategoryCase, 1_500_000)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 from fallback", len(got))
	}
}

func TestEmptyEverywhereIsNotAnError(t *testing.T) {
	r := NewRetriever(&fakeIndex{}, &fakeCatalog{}, DefaultConfig(), nil)

	got := r.RetrieveAll(context.Background(), budgetQuery(1_500_000))
	if len(got) != len(parts.RequiredKeys) {
		t.Fatalf("keys = %d, want %d", len(got), len(parts.RequiredKeys))
	}
	for key, cands := range got {
		if len(cands) != 0 {
			t.Errorf("%s: len = %d, want empty", key, len(cands))
		}
	}
}

func TestCategoryPlanPreferences(t *testing.T) {
	r := NewRetriever(&fakeIndex{}, &fakeCatalog{}, DefaultConfig(), nil)

	plan := r.CategoryPlan(&parts.Query{Platform: "intel", Cooler: "liquid"})
	if len(plan[parts.KeyMBoard]) != 1 || plan[parts.KeyMBoard][0] != parts.CategoryMBoardIntel {
		t.Errorf("intel plan = %v", plan[parts.KeyMBoard])
	}
	if plan[parts.KeyCooler][0] != parts.CategoryCoolerLiquid {
		t.Errorf("cooler plan = %v", plan[parts.KeyCooler])
	}

	// Unconstrained platform keeps both vendors in play.
	plan = r.CategoryPlan(&parts.Query{})
	if len(plan[parts.KeyMBoard]) != 2 {
		t.Errorf("unconstrained mboard plan = %v, want both vendors", plan[parts.KeyMBoard])
	}
	// Default-budget build stays on air cooling.
	if plan[parts.KeyCooler][0] != parts.CategoryCoolerAir {
		t.Errorf("unconstrained cooler plan = %v", plan[parts.KeyCooler])
	}
}
