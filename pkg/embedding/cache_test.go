package embedding

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: []float32{float32(len(text))}},
	}, nil
}

func TestCachedProviderMemoizes(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute)

	first, err := cached.Generate("CPU 사무용", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	second, err := cached.Generate("CPU 사무용", "RETRIEVAL_QUERY")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCachedProviderKeySpansTaskType(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, time.Minute)

	_, err := cached.Generate("same text", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	_, err = cached.Generate("same text", "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "different task types must not share entries")
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("provider down")}
	cached := NewCachedProvider(inner, time.Minute)

	_, err := cached.Generate("x", "RETRIEVAL_QUERY")
	require.Error(t, err)

	inner.err = nil
	_, err = cached.Generate("x", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
