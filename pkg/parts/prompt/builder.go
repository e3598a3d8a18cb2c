package prompt

import (
	"fmt"
	"sort"
	"strings"

	"pc-estimate-be/pkg/parts"
)

// Builder serializes the ranked candidate sets plus the interpreted
// constraints into a single structured instruction for the generation
// service.
type Builder struct {
	query      *parts.Query
	budget     int
	candidates map[string][]parts.Candidate
	previous   *parts.Estimate
}

// NewBuilder creates a prompt builder. previous may be nil on the first
// turn of a session.
func NewBuilder(query *parts.Query, budget int, candidates map[string][]parts.Candidate, previous *parts.Estimate) *Builder {
	return &Builder{
		query:      query,
		budget:     budget,
		candidates: candidates,
		previous:   previous,
	}
}

// Build assembles the prompt. Section order mirrors how the generator
// should reason: what it may pick from, what must hold, then the task.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeCandidates(&prompt)
	b.writeConstraints(&prompt)
	b.writeCompatibilityRules(&prompt)
	b.writeBudgetGuidance(&prompt)
	b.writePreviousEstimate(&prompt)
	b.writeTask(&prompt)
	b.writeOutputFormat(&prompt)

	return prompt.String()
}

func (b *Builder) writeCandidates(prompt *strings.Builder) {
	prompt.WriteString("<candidate_products>\n")

	keys := make([]string, 0, len(b.candidates))
	for key := range b.candidates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prompt.WriteString(fmt.Sprintf("[%s]\n", key))
		for _, c := range b.candidates[key] {
			prompt.WriteString(fmt.Sprintf("- name: %s | category: %s | price: %d | link: %s\n",
				c.Name, c.Category, c.Price, c.Link))
		}
	}
	prompt.WriteString("</candidate_products>\n\n")
}

func (b *Builder) writeConstraints(prompt *strings.Builder) {
	prompt.WriteString("<constraints>\n")
	prompt.WriteString("- Choose ONLY from the candidate products above. Never invent a product.\n")
	prompt.WriteString("- Copy name, price and link VERBATIM from the chosen candidate.\n")
	prompt.WriteString("- Every required category (cpu, gpu, mboard, ram, ssd, cooler, power, case) must be filled.\n")
	prompt.WriteString(fmt.Sprintf("- Total budget: %d KRW. Stay close to it; never exceed it by more than roughly 10%%.\n", b.budget))
	if b.query.Purpose != "" {
		prompt.WriteString(fmt.Sprintf("- Usage purpose: %s. Weight the build accordingly.\n", b.query.Purpose))
	}
	if b.query.Platform != "" {
		prompt.WriteString(fmt.Sprintf("- CPU platform: %s only.\n", b.query.Platform))
	}
	if b.query.Cooler != "" {
		prompt.WriteString(fmt.Sprintf("- Cooling: %s cooler only.\n", b.query.Cooler))
	}
	prompt.WriteString("</constraints>\n\n")
}

func (b *Builder) writeCompatibilityRules(prompt *strings.Builder) {
	prompt.WriteString("<compatibility_rules>\n")
	prompt.WriteString("- Intel CPU -> Intel motherboard (LGA socket, Intel chipset). AMD CPU -> AMD motherboard (AM4/AM5 socket).\n")
	prompt.WriteString("- Never pair an Intel CPU with an AMD board or vice versa.\n")
	prompt.WriteString("- RAM standard must match the motherboard: DDR4 board -> DDR4 RAM, DDR5 board -> DDR5 RAM.\n")
	prompt.WriteString("- RAM configuration: prefer two modules over one large module (e.g. 2x16GB over 1x32GB); avoid undersized (<16GB total) or oversized (>64GB) configurations for this budget class.\n")
	prompt.WriteString("- Power supply wattage must cover the CPU+GPU combination with headroom.\n")
	prompt.WriteString("</compatibility_rules>\n\n")
}

func (b *Builder) writeBudgetGuidance(prompt *strings.Builder) {
	prompt.WriteString("<budget_guidance>\n")
	prompt.WriteString("Typical budget shares: GPU 25-50%, CPU 12-30%, RAM 10-30%, SSD 2-15%, motherboard 5-15%, power 3-10%, case 2-8%, cooler 1-8%.\n")
	prompt.WriteString("For office builds shift budget from GPU toward CPU/RAM; for gaming builds the GPU share dominates.\n")
	prompt.WriteString("</budget_guidance>\n\n")
}

func (b *Builder) writePreviousEstimate(prompt *strings.Builder) {
	if b.previous == nil {
		return
	}
	prompt.WriteString("<previous_estimate>\n")
	prompt.WriteString("The user is refining this earlier build. Keep parts they did not ask to change:\n")
	for _, key := range parts.RequiredKeys {
		if p := b.previous.Part(key); p != nil {
			prompt.WriteString(fmt.Sprintf("- %s: %s (%d KRW)\n", key, p.Name, p.Price))
		}
	}
	prompt.WriteString("</previous_estimate>\n\n")
}

func (b *Builder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a PC build advisor. Assemble one internally consistent build from the candidates that satisfies the constraints and compatibility rules.\n")
	prompt.WriteString("</task>\n\n")
	prompt.WriteString("<user_request>\n")
	prompt.WriteString(b.query.Raw)
	prompt.WriteString("\n</user_request>\n\n")
}

func (b *Builder) writeOutputFormat(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with EXACTLY ONE JSON object and nothing else: no prose, no markdown fences, no array wrapper.\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"cpu\":    {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"gpu\":    {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"mboard\": {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"ram\":    {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"ssd\":    {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"cooler\": {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"power\":  {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"case\":   {\"name\": \"...\", \"price\": 0, \"link\": \"...\"},\n")
	prompt.WriteString("  \"total_price\": 0\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>\n")
}
