package rank

import (
	"testing"

	"pc-estimate-be/pkg/parts"
)

func TestShortlistDedup(t *testing.T) {
	in := []parts.Candidate{
		{Name: "RTX 4060", Category: parts.CategoryGPU, Price: 400_000},
		{Name: "RTX 4060", Category: parts.CategoryGPU, Price: 410_000}, // duplicate name+category
		{Name: "RTX 4060", Category: parts.CategoryCase, Price: 50_000}, // same name, other category survives
	}

	out := Shortlist(in, 8)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for _, c := range out {
		if c.Category == parts.CategoryGPU && c.Price != 400_000 {
			t.Errorf("first occurrence should win, got price %d", c.Price)
		}
	}
}

func TestShortlistDropsNonPositivePrices(t *testing.T) {
	in := []parts.Candidate{
		{Name: "A", Category: parts.CategoryRAM, Price: 0},
		{Name: "B", Category: parts.CategoryRAM, Price: -1},
		{Name: "C", Category: parts.CategoryRAM, Price: 80_000},
	}
	out := Shortlist(in, 8)
	if len(out) != 1 || out[0].Name != "C" {
		t.Fatalf("got %+v, want only C", out)
	}
}

func TestShortlistOrdering(t *testing.T) {
	gpus := []parts.Candidate{
		{Name: "low", Category: parts.CategoryGPU, Price: 300_000},
		{Name: "high", Category: parts.CategoryGPU, Price: 700_000},
		{Name: "mid", Category: parts.CategoryGPU, Price: 500_000},
	}
	out := Shortlist(gpus, 8)
	if out[0].Name != "high" || out[2].Name != "low" {
		t.Errorf("GPU should sort descending, got %v", names(out))
	}

	cases := []parts.Candidate{
		{Name: "pricey", Category: parts.CategoryCase, Price: 150_000},
		{Name: "cheap", Category: parts.CategoryCase, Price: 40_000},
	}
	out = Shortlist(cases, 8)
	if out[0].Name != "cheap" {
		t.Errorf("Case should sort ascending, got %v", names(out))
	}
}

func TestShortlistTruncates(t *testing.T) {
	var in []parts.Candidate
	for i := 0; i < 20; i++ {
		in = append(in, parts.Candidate{
			Name:     string(rune('A' + i)),
			Category: parts.CategorySSD,
			Price:    100_000 + i,
		})
	}
	out := Shortlist(in, 8)
	if len(out) != 8 {
		t.Fatalf("len = %d, want 8", len(out))
	}
}

func names(cs []parts.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
