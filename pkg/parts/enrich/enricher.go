// Package enrich reconciles a generated estimate against the product
// catalog so prices and links reflect stored data rather than whatever
// the generator emitted.
package enrich

import (
	"context"
	"log"

	"pc-estimate-be/pkg/parts"
)

// Lookup resolves a product by its exact name. A miss returns
// (nil, nil); errors are reserved for infrastructure failures.
type Lookup interface {
	ProductByName(ctx context.Context, name string) (*parts.Candidate, error)
}

type Enricher struct {
	lookup Lookup
	logger *log.Logger
}

func NewEnricher(lookup Lookup, logger *log.Logger) *Enricher {
	return &Enricher{lookup: lookup, logger: logger}
}

// Enrich replaces each part's name, price and link with catalog values
// when the part's name resolves. Misses and lookup failures leave the
// generated part untouched. The total is always recomputed from the
// final per-part prices, so calling Enrich twice is a no-op.
func (e *Enricher) Enrich(ctx context.Context, est *parts.Estimate) {
	if est == nil {
		return
	}

	for _, key := range parts.RequiredKeys {
		part := est.Part(key)
		if part == nil || part.Name == "" {
			continue
		}

		found, err := e.lookup.ProductByName(ctx, part.Name)
		if err != nil {
			e.logf("enrich: lookup %q failed: %v", part.Name, err)
			continue
		}
		if found == nil {
			continue
		}

		part.Name = found.Name
		part.Price = found.Price
		part.Link = found.Link
	}

	est.TotalPrice = est.SumPrices()
}

func (e *Enricher) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
