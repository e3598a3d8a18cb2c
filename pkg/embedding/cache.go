package embedding

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProvider memoizes embeddings in-process. Retrieval embeds the
// same category query strings over and over, so a short-lived cache
// cuts most provider round-trips.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *gocache.Cache
}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) EmbeddingProvider {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	key := cacheKey(text, taskType)
	if hit, ok := p.cache.Get(key); ok {
		return hit.(*EmbeddingResponse), nil
	}

	res, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, res, gocache.DefaultExpiration)
	return res, nil
}

func cacheKey(text, taskType string) string {
	sum := sha1.Sum([]byte(taskType + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
