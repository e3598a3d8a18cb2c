package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/pkg/conversation"
	"pc-estimate-be/pkg/llm"
	"pc-estimate-be/pkg/parts"
	"pc-estimate-be/pkg/parts/enrich"
	"pc-estimate-be/pkg/parts/retrieve"
)

// nopLogger keeps service wiring quiet in tests.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeIndex serves canned per-category candidates. Names carry the
// DDR5/NVMe markers the keyword filter expects at a 1.5M budget.
type fakeIndex struct {
	empty map[string]bool
}

var indexNames = map[string]string{
	parts.CategoryCPU:          "인텔 코어i5-14400F",
	parts.CategoryGPU:          "지포스 RTX 4060",
	parts.CategoryMBoardIntel:  "ASUS B760M DDR5",
	parts.CategoryMBoardAMD:    "ASRock B650M DDR5",
	parts.CategoryRAM:          "삼성전자 DDR5-5600 16GB",
	parts.CategorySSD:          "SK하이닉스 Gold P31 M.2 NVMe 1TB",
	parts.CategoryCoolerAir:    "DEEPCOOL AK400",
	parts.CategoryCoolerLiquid: "NZXT KRAKEN 240",
	parts.CategoryPower:        "시소닉 FOCUS GOLD 650W",
	parts.CategoryCase:         "NZXT H6 Flow",
}

func (f *fakeIndex) Search(_ context.Context, _, category string, _, _, _ int) ([]parts.Candidate, error) {
	if f.empty[category] {
		return nil, nil
	}
	base, ok := indexNames[category]
	if !ok {
		return nil, nil
	}
	out := make([]parts.Candidate, 0, 3)
	for i := 1; i <= 3; i++ {
		out = append(out, parts.Candidate{
			Name:     fmt.Sprintf("%s V%d", base, i),
			Category: category,
			Price:    100_000 * i,
			Link:     "https://shop.example/" + category,
		})
	}
	return out, nil
}

// fakeCatalog backs both the relational fallback and the enrichment
// lookup, like the production adapter does.
type fakeCatalog struct {
	prices map[string]int
}

func (f *fakeCatalog) CheapestByCategory(context.Context, string, int) ([]parts.Candidate, error) {
	return nil, nil
}

func (f *fakeCatalog) ProductByName(_ context.Context, name string) (*parts.Candidate, error) {
	price, ok := f.prices[name]
	if !ok {
		return nil, nil
	}
	return &parts.Candidate{Name: name, Price: price, Link: "https://shop.example/p"}, nil
}

type fakeLLM struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.lastPrompt = history[len(history)-1].Content
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newEstimateHarness(t *testing.T, index *fakeIndex, model *fakeLLM) (IEstimateService, *conversation.Store, *fakeCatalog) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	convStore := conversation.NewStore(rdb)

	catalog := &fakeCatalog{prices: map[string]int{
		"인텔 코어i5-14400F V1":             245_000,
		"지포스 RTX 4060 V1":               398_000,
		"ASUS B760M DDR5 V1":            135_000,
		"삼성전자 DDR5-5600 16GB V1":        62_000,
		"SK하이닉스 Gold P31 M.2 NVMe 1TB V1": 118_000,
		"DEEPCOOL AK400 V1":             32_000,
		"시소닉 FOCUS GOLD 650W V1":        99_000,
		"NZXT H6 Flow V1":               139_000,
	}}

	cfg := retrieve.DefaultConfig()
	quiet := log.New(io.Discard, "", 0)
	retriever := retrieve.NewRetriever(index, catalog, cfg, quiet)
	enricher := enrich.NewEnricher(catalog, quiet)

	svc := NewEstimateService(convStore, retriever, cfg, model, enricher, nil, nil, nopLogger{})
	return svc, convStore, catalog
}

func structuredReply(omitKeys ...string) string {
	est := map[string]interface{}{}
	for key, category := range map[string]string{
		"cpu":    parts.CategoryCPU,
		"gpu":    parts.CategoryGPU,
		"mboard": parts.CategoryMBoardIntel,
		"ram":    parts.CategoryRAM,
		"ssd":    parts.CategorySSD,
		"cooler": parts.CategoryCoolerAir,
		"power":  parts.CategoryPower,
		"case":   parts.CategoryCase,
	} {
		est[key] = map[string]interface{}{"name": indexNames[category] + " V1", "price": 0}
	}
	est["total_price"] = 0
	for _, key := range omitKeys {
		delete(est, key)
	}

	body, _ := json.Marshal(est)
	return "Here is the build you asked for:\n" + string(body)
}

func TestEstimateQueryFullPipeline(t *testing.T) {
	model := &fakeLLM{reply: structuredReply()}
	svc, convStore, catalog := newEstimateHarness(t, &fakeIndex{}, model)
	ctx := context.Background()

	res, err := svc.Query(ctx, &dto.EstimateQueryRequest{
		SessionId: "s1",
		Message:   "게이밍 컴퓨터 견적 부탁해, 예산 150만원",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Estimate)
	assert.Empty(t, res.ReplyRaw)

	// Prices come back from the catalog, not from the generator.
	require.NotNil(t, res.Estimate.CPU)
	assert.Equal(t, catalog.prices["인텔 코어i5-14400F V1"], res.Estimate.CPU.Price)
	assert.Equal(t, res.Estimate.SumPrices(), res.Estimate.TotalPrice)

	// The prompt only offers catalog candidates.
	assert.Contains(t, model.lastPrompt, "인텔 코어i5-14400F V1")

	// Both turns of the exchange are recorded for refinement.
	turns, err := convStore.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, conversation.RoleUser, turns[0].Role)
	assert.Equal(t, conversation.RoleAssistant, turns[1].Role)

	// The stored assistant turn is the recoverable estimate.
	prev, err := convStore.LatestEstimate(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, res.Estimate.CPU.Name, prev.CPU.Name)
}

func TestEstimateQueryMissingCategory(t *testing.T) {
	model := &fakeLLM{reply: structuredReply()}
	index := &fakeIndex{empty: map[string]bool{parts.CategoryGPU: true}}
	svc, _, _ := newEstimateHarness(t, index, model)

	_, err := svc.Query(context.Background(), &dto.EstimateQueryRequest{
		SessionId: "s2",
		Message:   "게이밍 PC 150만원",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Contains(t, err.Error(), "gpu")
}

func TestEstimateQueryUnstructuredReply(t *testing.T) {
	model := &fakeLLM{reply: "죄송합니다, 예산 정보를 더 알려주세요."}
	svc, convStore, _ := newEstimateHarness(t, &fakeIndex{}, model)
	ctx := context.Background()

	res, err := svc.Query(ctx, &dto.EstimateQueryRequest{
		SessionId: "s3",
		Message:   "컴퓨터 추천해줘",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Estimate)
	assert.Equal(t, model.reply, res.ReplyRaw)

	// Free-text replies are still part of the conversation.
	turns, err := convStore.History(ctx, "s3")
	require.NoError(t, err)
	require.Len(t, turns, 2)

	// But they never count as a refinable estimate.
	prev, err := convStore.LatestEstimate(ctx, "s3")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestEstimateQueryGenerationError(t *testing.T) {
	model := &fakeLLM{err: errors.New("upstream timeout")}
	svc, _, _ := newEstimateHarness(t, &fakeIndex{}, model)

	// 150만원 keeps the DDR5 keyword filter aligned with the fixture
	// names, so the request actually reaches the generation call.
	_, err := svc.Query(context.Background(), &dto.EstimateQueryRequest{
		SessionId: "s4",
		Message:   "사무용 PC 150만원",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate estimate")
}

func TestEstimateQueryIncompleteAfterEnrichment(t *testing.T) {
	model := &fakeLLM{reply: structuredReply("power")}
	svc, convStore, _ := newEstimateHarness(t, &fakeIndex{}, model)
	ctx := context.Background()

	_, err := svc.Query(ctx, &dto.EstimateQueryRequest{
		SessionId: "s5",
		Message:   "게이밍 PC 150만원",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteEstimate)
	assert.Contains(t, err.Error(), "power")

	// A partial build is never recorded as a refinable estimate.
	prev, err := convStore.LatestEstimate(ctx, "s5")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestEstimateQueryUnpricedPartAfterEnrichment(t *testing.T) {
	// The generator names a part the catalog does not carry, so its
	// price stays at zero through enrichment.
	reply := strings.ReplaceAll(structuredReply(), "NZXT H6 Flow V1", "단종된 케이스")
	model := &fakeLLM{reply: reply}
	svc, _, _ := newEstimateHarness(t, &fakeIndex{}, model)

	_, err := svc.Query(context.Background(), &dto.EstimateQueryRequest{
		SessionId: "s6",
		Message:   "게이밍 PC 150만원",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteEstimate)
	assert.Contains(t, err.Error(), "case")
}
