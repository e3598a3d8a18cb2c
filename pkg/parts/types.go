package parts

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Catalog categories as stored by the acquisition process.
const (
	CategoryCPU          = "CPU"
	CategoryGPU          = "GPU"
	CategoryMBoardIntel  = "MBoard_Intel"
	CategoryMBoardAMD    = "MBoard_AMD"
	CategoryRAM          = "RAM"
	CategorySSD          = "SSD"
	CategoryCoolerAir    = "Cooler_Air"
	CategoryCoolerLiquid = "Cooler_Liquid"
	CategoryPower        = "Power"
	CategoryCase         = "Case"
)

// Estimate keys. Motherboard and cooler variants collapse into a single
// key each: the retriever decides which catalog category feeds them.
const (
	KeyCPU    = "cpu"
	KeyGPU    = "gpu"
	KeyMBoard = "mboard"
	KeyRAM    = "ram"
	KeySSD    = "ssd"
	KeyCooler = "cooler"
	KeyPower  = "power"
	KeyCase   = "case"
)

// RequiredKeys is the full set of estimate keys, in presentation order.
var RequiredKeys = []string{KeyCPU, KeyGPU, KeyMBoard, KeyRAM, KeySSD, KeyCooler, KeyPower, KeyCase}

// Candidate is a product-shaped record flowing through the retrieval
// pipeline. It may originate from the semantic index metadata or from a
// direct catalog row; both carry the same shape.
type Candidate struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Link     string `json:"link"`
}

// Query is the interpreted form of a raw user request. Absent values
// stay nil and mean "unconstrained" - downstream stages must not invent
// a default brand or cooling preference.
type Query struct {
	Raw      string
	Budget   *int
	Purpose  string // "", "office", "gaming", ...
	Cooler   string // "", "air", "liquid"
	Platform string // "", "intel", "amd"
}

// EffectiveBudget returns the parsed budget or the given fallback.
func (q *Query) EffectiveBudget(fallback int) int {
	if q.Budget != nil && *q.Budget > 0 {
		return *q.Budget
	}
	return fallback
}

// EstimatePart is one chosen component inside an estimate.
type EstimatePart struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Link  string `json:"link,omitempty"`
}

// UnmarshalJSON tolerates generator sloppiness: prices arrive as
// numbers, quoted numbers or strings like "550,000". The enricher
// re-prices from the catalog, so best-effort digits are enough here.
func (p *EstimatePart) UnmarshalJSON(data []byte) error {
	type alias struct {
		Name  string          `json:"name"`
		Price json.RawMessage `json:"price"`
		Link  string          `json:"link"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	p.Name = a.Name
	p.Link = a.Link
	p.Price = looseInt(a.Price)
	return nil
}

func looseInt(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, _ = strconv.Atoi(digits.String())
	return n
}

// Estimate is the typed, category-keyed build. Nil parts mean the key
// was not filled; after enrichment every required key must be non-nil
// with a positive price for the estimate to count as successful.
type Estimate struct {
	CPU        *EstimatePart `json:"cpu,omitempty"`
	GPU        *EstimatePart `json:"gpu,omitempty"`
	MBoard     *EstimatePart `json:"mboard,omitempty"`
	RAM        *EstimatePart `json:"ram,omitempty"`
	SSD        *EstimatePart `json:"ssd,omitempty"`
	Cooler     *EstimatePart `json:"cooler,omitempty"`
	Power      *EstimatePart `json:"power,omitempty"`
	Case       *EstimatePart `json:"case,omitempty"`
	TotalPrice int           `json:"total_price"`
}

// Part returns the part stored under an estimate key.
func (e *Estimate) Part(key string) *EstimatePart {
	switch key {
	case KeyCPU:
		return e.CPU
	case KeyGPU:
		return e.GPU
	case KeyMBoard:
		return e.MBoard
	case KeyRAM:
		return e.RAM
	case KeySSD:
		return e.SSD
	case KeyCooler:
		return e.Cooler
	case KeyPower:
		return e.Power
	case KeyCase:
		return e.Case
	}
	return nil
}

// SetPart stores a part under an estimate key. Unknown keys are ignored
// so that generator-invented keys cannot corrupt the structure.
func (e *Estimate) SetPart(key string, p *EstimatePart) {
	switch key {
	case KeyCPU:
		e.CPU = p
	case KeyGPU:
		e.GPU = p
	case KeyMBoard:
		e.MBoard = p
	case KeyRAM:
		e.RAM = p
	case KeySSD:
		e.SSD = p
	case KeyCooler:
		e.Cooler = p
	case KeyPower:
		e.Power = p
	case KeyCase:
		e.Case = p
	}
}

// MissingKeys lists required keys that are absent or empty.
func (e *Estimate) MissingKeys() []string {
	var missing []string
	for _, key := range RequiredKeys {
		p := e.Part(key)
		if p == nil || strings.TrimSpace(p.Name) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// SumPrices recomputes the total from the per-category prices. The
// generator-supplied total is never trusted.
func (e *Estimate) SumPrices() int {
	total := 0
	for _, key := range RequiredKeys {
		if p := e.Part(key); p != nil {
			total += p.Price
		}
	}
	return total
}
