package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pc-estimate-be/pkg/parts"
)

type fakeLookup struct {
	products map[string]parts.Candidate
	err      error
}

func (f *fakeLookup) ProductByName(_ context.Context, name string) (*parts.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.products[name]; ok {
		return &c, nil
	}
	return nil, nil
}

func TestEnrichReplacesHitsAndKeepsMisses(t *testing.T) {
	lookup := &fakeLookup{products: map[string]parts.Candidate{
		"i5-14400F": {Name: "Intel Core i5-14400F", Category: "CPU", Price: 248000, Link: "https://shop/i5"},
	}}
	enricher := NewEnricher(lookup, nil)

	est := &parts.Estimate{
		CPU: &parts.EstimatePart{Name: "i5-14400F", Price: 999999},
		GPU: &parts.EstimatePart{Name: "made-up GPU", Price: 400000, Link: "https://nowhere"},
	}
	enricher.Enrich(context.Background(), est)

	assert.Equal(t, "Intel Core i5-14400F", est.CPU.Name)
	assert.Equal(t, 248000, est.CPU.Price)
	assert.Equal(t, "https://shop/i5", est.CPU.Link)

	assert.Equal(t, "made-up GPU", est.GPU.Name, "catalog miss keeps generated part")
	assert.Equal(t, 400000, est.GPU.Price)

	assert.Equal(t, 248000+400000, est.TotalPrice, "total recomputed from final prices")
}

func TestEnrichLookupErrorKeepsPart(t *testing.T) {
	enricher := NewEnricher(&fakeLookup{err: errors.New("db down")}, nil)

	est := &parts.Estimate{CPU: &parts.EstimatePart{Name: "i5-14400F", Price: 250000}}
	enricher.Enrich(context.Background(), est)

	assert.Equal(t, "i5-14400F", est.CPU.Name)
	assert.Equal(t, 250000, est.TotalPrice)
}

func TestEnrichIsIdempotent(t *testing.T) {
	lookup := &fakeLookup{products: map[string]parts.Candidate{
		"Intel Core i5-14400F": {Name: "Intel Core i5-14400F", Price: 248000, Link: "https://shop/i5"},
		"i5-14400F":            {Name: "Intel Core i5-14400F", Price: 248000, Link: "https://shop/i5"},
	}}
	enricher := NewEnricher(lookup, nil)

	est := &parts.Estimate{CPU: &parts.EstimatePart{Name: "i5-14400F", Price: 1}}
	enricher.Enrich(context.Background(), est)
	first := *est.CPU
	firstTotal := est.TotalPrice

	enricher.Enrich(context.Background(), est)
	require.NotNil(t, est.CPU)
	assert.Equal(t, first, *est.CPU)
	assert.Equal(t, firstTotal, est.TotalPrice)
}

func TestEnrichNilAndEmpty(t *testing.T) {
	enricher := NewEnricher(&fakeLookup{}, nil)

	enricher.Enrich(context.Background(), nil) // must not panic

	est := &parts.Estimate{}
	enricher.Enrich(context.Background(), est)
	assert.Equal(t, 0, est.TotalPrice)
}
