package classifier

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

// Classifier produces a result for any text without failing.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.Result
}

// CacheKey folds case and surrounding whitespace. It is deliberately
// cheaper than Normalize: accents and punctuation are part of the key.
func CacheKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Cache memoizes a Classifier for the lifetime of the process. Entries are
// never revalidated or evicted. Fallback results are returned but not
// stored, so a text first seen while a tier is down is classified again
// once it recovers. Concurrent misses on one key may both call the wrapped
// classifier; the first stored result is kept and returned to both callers.
type Cache struct {
	next      Classifier
	entries   sync.Map
	size      atomic.Int64
	telemetry *telemetry.Provider
}

// NewCache wraps next. p may be nil.
func NewCache(next Classifier, p *telemetry.Provider) *Cache {
	return &Cache{next: next, telemetry: p}
}

// Classify implements Classifier.
func (c *Cache) Classify(ctx context.Context, text string) domain.Result {
	key := CacheKey(text)
	if v, ok := c.entries.Load(key); ok {
		c.telemetry.RecordCacheLookup(true)
		return v.(domain.Result)
	}
	c.telemetry.RecordCacheLookup(false)

	res := c.next.Classify(ctx, text)
	if res.Fallback {
		return res
	}
	actual, loaded := c.entries.LoadOrStore(key, res)
	if !loaded {
		c.telemetry.SetCacheSize(c.size.Add(1))
	}
	return actual.(domain.Result)
}

// Len is the number of cached entries.
func (c *Cache) Len() int64 {
	return c.size.Load()
}
