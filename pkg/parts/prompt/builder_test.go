package prompt

import (
	"strings"
	"testing"

	"pc-estimate-be/pkg/parts"
)

func TestBuildContainsCandidatesAndConstraints(t *testing.T) {
	q := &parts.Query{Raw: "150만원 게이밍", Purpose: "gaming", Platform: "intel"}
	candidates := map[string][]parts.Candidate{
		parts.KeyCPU: {{Name: "i5-14400F", Category: parts.CategoryCPU, Price: 250_000, Link: "https://x/1"}},
		parts.KeyGPU: {{Name: "RTX 4060 Ti", Category: parts.CategoryGPU, Price: 600_000, Link: "https://x/2"}},
	}

	out := NewBuilder(q, 1_500_000, candidates, nil).Build()

	for _, want := range []string{
		"<candidate_products>",
		"i5-14400F",
		"RTX 4060 Ti",
		"<compatibility_rules>",
		"<output_format>",
		"CPU platform: intel only",
		"Usage purpose: gaming",
		"1500000 KRW",
		"EXACTLY ONE JSON object",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(out, "<previous_estimate>") {
		t.Error("first turn must not carry a previous estimate section")
	}
}

func TestBuildCarriesPreviousEstimate(t *testing.T) {
	q := &parts.Query{Raw: "케이스만 더 싼 걸로"}
	prev := &parts.Estimate{
		CPU: &parts.EstimatePart{Name: "i5-14400F", Price: 250_000},
		GPU: &parts.EstimatePart{Name: "RTX 4060 Ti", Price: 600_000},
	}

	out := NewBuilder(q, 1_500_000, nil, prev).Build()

	if !strings.Contains(out, "<previous_estimate>") {
		t.Fatal("refinement turn must include the previous estimate")
	}
	if !strings.Contains(out, "cpu: i5-14400F") {
		t.Error("previous CPU missing from prompt")
	}
}
