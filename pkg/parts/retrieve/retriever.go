package retrieve

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"pc-estimate-be/pkg/parts"
)

// VectorIndex is the semantic-index boundary: filtered nearest-neighbor
// search over catalog text. Filters are a logical AND of the category
// equality and the price range.
type VectorIndex interface {
	Search(ctx context.Context, queryText, category string, minPrice, maxPrice, topK int) ([]parts.Candidate, error)
}

// Catalog is the relational fallback boundary: cheapest-first rows for
// a category, price > 0 guaranteed by the implementation.
type Catalog interface {
	CheapestByCategory(ctx context.Context, category string, limit int) ([]parts.Candidate, error)
}

// Retriever gathers per-category candidate sets under budget and
// compatibility constraints. Degraded results (including empty lists)
// are never errors; a broken boundary is logged and absorbed into the
// fallback path.
type Retriever struct {
	index   VectorIndex
	catalog Catalog
	cfg     Config
	logger  *log.Logger
}

func NewRetriever(index VectorIndex, catalog Catalog, cfg Config, logger *log.Logger) *Retriever {
	return &Retriever{
		index:   index,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
	}
}

// CategoryPlan maps each estimate key to the catalog categories that
// feed it. Motherboards follow the platform preference, or both vendors
// when unconstrained; the cooler category follows the stated preference,
// or the budget tier when unstated.
func (r *Retriever) CategoryPlan(q *parts.Query) map[string][]string {
	budget := q.EffectiveBudget(r.cfg.DefaultBudget)

	plan := map[string][]string{
		parts.KeyCPU:   {parts.CategoryCPU},
		parts.KeyGPU:   {parts.CategoryGPU},
		parts.KeyRAM:   {parts.CategoryRAM},
		parts.KeySSD:   {parts.CategorySSD},
		parts.KeyPower: {parts.CategoryPower},
		parts.KeyCase:  {parts.CategoryCase},
	}

	switch q.Platform {
	case "intel":
		plan[parts.KeyMBoard] = []string{parts.CategoryMBoardIntel}
	case "amd":
		plan[parts.KeyMBoard] = []string{parts.CategoryMBoardAMD}
	default:
		plan[parts.KeyMBoard] = []string{parts.CategoryMBoardIntel, parts.CategoryMBoardAMD}
	}

	switch q.Cooler {
	case "liquid":
		plan[parts.KeyCooler] = []string{parts.CategoryCoolerLiquid}
	case "air":
		plan[parts.KeyCooler] = []string{parts.CategoryCoolerAir}
	default:
		if budget >= r.cfg.LiquidCoolerThreshold {
			plan[parts.KeyCooler] = []string{parts.CategoryCoolerLiquid}
		} else {
			plan[parts.KeyCooler] = []string{parts.CategoryCoolerAir}
		}
	}

	return plan
}

// RetrieveAll runs the per-category retrievals concurrently and returns
// candidate sets keyed by estimate key. Categories have no data
// dependency on each other; the caller joins here before prompt
// building.
func (r *Retriever) RetrieveAll(ctx context.Context, q *parts.Query) map[string][]parts.Candidate {
	budget := q.EffectiveBudget(r.cfg.DefaultBudget)
	plan := r.CategoryPlan(q)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string][]parts.Candidate, len(plan))
	)

	for key, categories := range plan {
		wg.Add(1)
		go func(key string, categories []string) {
			defer wg.Done()
			var merged []parts.Candidate
			for _, category := range categories {
				merged = append(merged, r.retrieveCategory(ctx, q, category, budget)...)
			}
			mu.Lock()
			results[key] = merged
			mu.Unlock()
		}(key, categories)
	}

	wg.Wait()
	return results
}

// retrieveCategory runs the full sequence for one catalog category:
// window, keyword filter, semantic search with over-fetch, one
// relaxed-lower-bound retry, then the relational fallback when thin.
func (r *Retriever) retrieveCategory(ctx context.Context, q *parts.Query, category string, budget int) []parts.Candidate {
	minPrice, maxPrice := r.cfg.PriceWindow(category, budget)
	keyword := r.cfg.KeywordFilter(category, budget)
	negatives := r.cfg.NegativeKeywords[category]
	topK := r.cfg.ShortlistSize * r.cfg.OverFetchFactor

	queryText := strings.TrimSpace(fmt.Sprintf("%s 관련 제품 %s %s", category, q.Purpose, keyword))

	found, err := r.index.Search(ctx, queryText, category, minPrice, maxPrice, topK)
	if err != nil {
		r.logf("[RETRIEVE] semantic search failed for %s: %v", category, err)
		found = nil
	}
	usable := filterCandidates(found, keyword, negatives)

	// One bounded retry: relax the floor, never the ceiling.
	if len(usable) == 0 && keyword != "" {
		retried, err := r.index.Search(ctx, queryText, category, 0, maxPrice, topK)
		if err != nil {
			r.logf("[RETRIEVE] retry failed for %s: %v", category, err)
		} else {
			usable = filterCandidates(retried, keyword, negatives)
		}
	}

	if len(usable) < r.cfg.MinUsable {
		rows, err := r.catalog.CheapestByCategory(ctx, category, r.cfg.ShortlistSize)
		if err != nil {
			r.logf("[RETRIEVE] catalog fallback failed for %s: %v", category, err)
		} else {
			r.logf("[RETRIEVE] fallback for %s: %d semantic + %d relational", category, len(usable), len(rows))
			usable = append(usable, filterCandidates(rows, keyword, negatives)...)
		}
	}

	return usable
}

// filterCandidates applies the positive keyword (when set) and the
// negative-keyword blacklist to a raw result list.
func filterCandidates(candidates []parts.Candidate, keyword string, negatives []string) []parts.Candidate {
	out := make([]parts.Candidate, 0, len(candidates))
	for _, c := range candidates {
		upperName := strings.ToUpper(c.Name)
		if containsAny(upperName, negatives) {
			continue
		}
		if keyword != "" && !strings.Contains(upperName, strings.ToUpper(keyword)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsAny(upperName string, words []string) bool {
	for _, w := range words {
		if strings.Contains(upperName, strings.ToUpper(w)) {
			return true
		}
	}
	return false
}

func (r *Retriever) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
