package knowledge

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/seam-lang/seam/model"
)

// DefaultCacheSize bounds the number of cached (model, index) entries.
const DefaultCacheSize = 128

type cacheKey struct {
	model *model.Model
	kind  string
}

// Cache memoizes index computation per Model instance. Keys use pointer
// identity, not structural equality: two equal models built separately
// compute their indexes separately. The cache is safe for concurrent use;
// racing first computations may both run, and the last one wins, which is
// benign because index computation is a pure function of its model.
type Cache struct {
	entries *lru.Cache[cacheKey, any]
}

// NewCache returns a cache bounded to DefaultCacheSize entries.
func NewCache() *Cache {
	return NewCacheWithSize(DefaultCacheSize)
}

// NewCacheWithSize returns a cache bounded to size entries. Sizes below
// one are clamped to one.
func NewCacheWithSize(size int) *Cache {
	if size < 1 {
		size = 1
	}
	entries, err := lru.New[cacheKey, any](size)
	if err != nil {
		// lru.New only fails on a non-positive size, which is clamped
		// above.
		panic(err)
	}
	return &Cache{entries: entries}
}

func cached[T any](c *Cache, m *model.Model, kind string, compute func(*model.Model) T) T {
	key := cacheKey{model: m, kind: kind}
	if v, ok := c.entries.Get(key); ok {
		return v.(T)
	}
	v := compute(m)
	c.entries.Add(key, v)
	return v
}

// TopDown returns the memoized top-down topology index for a model.
func (c *Cache) TopDown(m *model.Model) *TopDownIndex {
	return cached(c, m, "topDown", ComputeTopDownIndex)
}

// Operations returns the memoized operation I/O index for a model.
func (c *Cache) Operations(m *model.Model) *OperationIndex {
	return cached(c, m, "operations", ComputeOperationIndex)
}

// IdentifierBindings returns the memoized identifier-binding index for a
// model.
func (c *Cache) IdentifierBindings(m *model.Model) *IdentifierBindingIndex {
	return cached(c, m, "identifierBindings", ComputeIdentifierBindingIndex)
}

// Paginated returns the memoized pagination index for a model.
func (c *Cache) Paginated(m *model.Model) *PaginatedIndex {
	return cached(c, m, "paginated", ComputePaginatedIndex)
}

// Arn returns the memoized ARN index for a model.
func (c *Cache) Arn(m *model.Model) *ArnIndex {
	return cached(c, m, "arn", ComputeArnIndex)
}

// HttpBindings returns the memoized HTTP binding index for a model.
func (c *Cache) HttpBindings(m *model.Model) *HttpBindingIndex {
	return cached(c, m, "httpBindings", ComputeHttpBindingIndex)
}
