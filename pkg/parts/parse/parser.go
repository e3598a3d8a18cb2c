// Package parse recovers a structured estimate from free-form
// generation output.
//
// Grammar: the first balanced-brace JSON object wins; failing that, the
// first balanced-bracket JSON array is re-keyed into the object shape
// by inspecting each element's own category string. Anything else is
// returned as raw text - this boundary never propagates a parse error
// to the caller.
package parse

import (
	"encoding/json"
	"strings"

	"pc-estimate-be/pkg/parts"
)

// Result is the outcome of recovery. When Structured is false, Raw
// carries the untouched generator text and Estimate is nil.
type Result struct {
	Estimate   *parts.Estimate
	Raw        string
	Structured bool
}

// Extract applies the recovery grammar to raw generator output.
func Extract(text string) Result {
	if obj, ok := firstBalanced(text, '{', '}'); ok {
		var est parts.Estimate
		if err := json.Unmarshal([]byte(obj), &est); err == nil {
			return Result{Estimate: &est, Structured: true}
		}
	}

	if arr, ok := firstBalanced(text, '[', ']'); ok {
		if est, ok := rekeyArray(arr); ok {
			return Result{Estimate: est, Structured: true}
		}
	}

	return Result{Raw: text}
}

// firstBalanced scans for the first balanced open..close span, skipping
// brackets inside JSON strings and escape sequences.
func firstBalanced(text string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// arrayElement is the shape of one category-tagged element inside an
// array-shaped response.
type arrayElement struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Link     string          `json:"link"`
}

// categoryKeywords maps substrings of an element's category field to
// estimate keys. "board" also catches "motherboard" and "mboard".
var categoryKeywords = []struct {
	substr string
	key    string
}{
	{"cpu", parts.KeyCPU},
	{"gpu", parts.KeyGPU},
	{"vga", parts.KeyGPU},
	{"board", parts.KeyMBoard},
	{"ram", parts.KeyRAM},
	{"memory", parts.KeyRAM},
	{"ssd", parts.KeySSD},
	{"cooler", parts.KeyCooler},
	{"power", parts.KeyPower},
	{"case", parts.KeyCase},
}

// rekeyArray converts a category-tagged array into the keyed estimate
// shape. Elements whose category matches no known key are dropped; the
// result counts as structured only if at least one element landed.
func rekeyArray(arr string) (*parts.Estimate, bool) {
	var elements []arrayElement
	if err := json.Unmarshal([]byte(arr), &elements); err != nil {
		return nil, false
	}

	est := &parts.Estimate{}
	landed := 0
	for _, el := range elements {
		key, ok := keyForCategory(el.Category)
		if !ok {
			continue
		}
		if est.Part(key) != nil {
			continue // first element per key wins
		}
		part := &parts.EstimatePart{Name: el.Name, Link: el.Link}
		if len(el.Price) > 0 {
			raw, _ := json.Marshal(map[string]json.RawMessage{"price": el.Price})
			var tmp parts.EstimatePart
			if err := json.Unmarshal(raw, &tmp); err == nil {
				part.Price = tmp.Price
			}
		}
		est.SetPart(key, part)
		landed++
	}

	if landed == 0 {
		return nil, false
	}
	est.TotalPrice = est.SumPrices()
	return est, true
}

func keyForCategory(category string) (string, bool) {
	lower := strings.ToLower(category)
	for _, entry := range categoryKeywords {
		if strings.Contains(lower, entry.substr) {
			return entry.key, true
		}
	}
	return "", false
}
