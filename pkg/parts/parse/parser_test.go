package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	text := "Here is your build:\n```json\n" +
		`{"cpu": {"name": "Ryzen 5 7500F", "price": 245000, "link": "https://shop/cpu"},` +
		`"gpu": {"name": "RTX 4060", "price": "412,000", "link": ""},` +
		`"total_price": 657000}` +
		"\n```\nEnjoy!"

	res := Extract(text)
	require.True(t, res.Structured)
	require.NotNil(t, res.Estimate)

	assert.Equal(t, "Ryzen 5 7500F", res.Estimate.CPU.Name)
	assert.Equal(t, 245000, res.Estimate.CPU.Price)
	assert.Equal(t, 412000, res.Estimate.GPU.Price, "quoted comma price should be coerced")
	assert.Equal(t, 657000, res.Estimate.TotalPrice)
}

func TestExtractSkipsBracesInsideStrings(t *testing.T) {
	text := `note: "this { is not json" {"cpu": {"name": "i5-14400F", "price": 250000}}`

	res := Extract(text)
	require.True(t, res.Structured)
	assert.Equal(t, "i5-14400F", res.Estimate.CPU.Name)
}

func TestExtractArrayFallback(t *testing.T) {
	text := `Sure: [` +
		`{"category": "CPU", "name": "i5-14400F", "price": 250000},` +
		`{"category": "Motherboard", "name": "B760M", "price": 130000},` +
		`{"category": "Memory", "name": "DDR5 16GB", "price": "89,000"},` +
		`{"category": "Speaker", "name": "noise", "price": 10000}` +
		`]`

	res := Extract(text)
	require.True(t, res.Structured)

	assert.Equal(t, "i5-14400F", res.Estimate.CPU.Name)
	assert.Equal(t, "B760M", res.Estimate.MBoard.Name)
	assert.Equal(t, 89000, res.Estimate.RAM.Price)
	assert.Nil(t, res.Estimate.GPU)
	assert.Equal(t, 250000+130000+89000, res.Estimate.TotalPrice, "unknown categories are dropped from the total")
}

func TestExtractArrayFirstElementPerKeyWins(t *testing.T) {
	text := `[{"category": "cpu", "name": "first", "price": 1},` +
		`{"category": "cpu", "name": "second", "price": 2}]`

	res := Extract(text)
	require.True(t, res.Structured)
	assert.Equal(t, "first", res.Estimate.CPU.Name)
}

func TestExtractRawFallback(t *testing.T) {
	for _, text := range []string{
		"I cannot build an estimate for that budget.",
		"broken { \"cpu\": ",
		"[1, 2, 3]",
		"",
	} {
		res := Extract(text)
		assert.False(t, res.Structured, "input: %q", text)
		assert.Nil(t, res.Estimate)
		assert.Equal(t, text, res.Raw)
	}
}
