// Package match ranks reference rows by string similarity to a query.
//
// The matcher runs a full linear scan per call; the reference table is
// small and static, so no index structure is kept. Results for identical
// (query, column, method, k) tuples are memoized in a bounded LRU cache
// owned by the matcher instance.
package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/moniker/internal/domain/dataset"
	"github.com/okian/moniker/internal/domain/model"
	"github.com/okian/moniker/pkg/metrics"
)

// Default matcher configuration constants.
const (
	defaultTopK      = 3
	defaultCacheSize = 1024
)

// cacheKey identifies one memoized scan. The top-k count is part of the
// key so call sites with different k values never alias each other.
type cacheKey struct {
	query  string
	column model.Column
	method model.Method
	k      int
}

// Matcher scores a query against every dataset row and exposes the top-k.
// Safe for concurrent use: the dataset is immutable and the cache is
// internally locked.
type Matcher struct {
	ds            *dataset.Dataset
	topK          int
	cacheSize     int
	resolveMethod model.Method
	cache         *lru.Cache[cacheKey, []model.Match]
}

// New creates a Matcher over the given dataset.
func New(ds *dataset.Dataset, opts ...Option) (*Matcher, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	m := &Matcher{
		ds:            ds,
		topK:          defaultTopK,
		cacheSize:     defaultCacheSize,
		resolveMethod: model.Levenshtein,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	cache, err := lru.New[cacheKey, []model.Match](m.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create match cache: %w", err)
	}
	m.cache = cache

	return m, nil
}

// TopMatches returns up to k rows of the selected column ranked by
// similarity to query, best first. Ties keep dataset order (first-seen
// wins). With a non-empty dataset the result always has exactly
// min(k, dataset length) entries.
func (m *Matcher) TopMatches(ctx context.Context, query string, col model.Column, method model.Method, k int) ([]model.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedMethod, method)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, k)
	}

	key := cacheKey{query: query, column: col, method: method, k: k}
	if cached, ok := m.cache.Get(key); ok {
		metrics.RecordMatchCacheHit()
		return cloneMatches(cached), nil
	}
	metrics.RecordMatchCacheMiss()

	values, err := m.ds.Column(col)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	scored := make([]model.Match, len(values))
	for i, v := range values {
		scored[i] = model.Match{
			Text:    v,
			Score:   similarity(method, query, v),
			English: m.ds.Record(i).English,
			Index:   i,
			Column:  col,
		}
	}
	// Stable: rows with equal scores keep their dataset order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k < len(scored) {
		scored = scored[:k]
	}
	metrics.RecordMatchScanLatency(float64(time.Since(start).Milliseconds()))
	if len(scored) > 0 {
		metrics.RecordMatchScore(scored[0].Score)
	}

	m.cache.Add(key, scored)
	return cloneMatches(scored), nil
}

// Resolve returns the best match for query across both columns.
//
// It scans the native column and the English column with the configured
// resolve method and top-k, concatenates the two top-k lists native-first,
// and stable-sorts the merge on score descending, so exact ties prefer
// the native column and, within a column, the earlier dataset row. Only
// the single best of the merged lists is returned; runner-up candidates
// that missed their own column's top-k cut are not reconsidered.
func (m *Matcher) Resolve(ctx context.Context, query string) (model.Match, error) {
	start := time.Now()

	native, err := m.TopMatches(ctx, query, model.ColumnNative, m.resolveMethod, m.topK)
	if err != nil {
		return model.Match{}, fmt.Errorf("scan native column: %w", err)
	}
	english, err := m.TopMatches(ctx, query, model.ColumnEnglish, m.resolveMethod, m.topK)
	if err != nil {
		return model.Match{}, fmt.Errorf("scan english column: %w", err)
	}

	merged := make([]model.Match, 0, len(native)+len(english))
	merged = append(merged, native...)
	merged = append(merged, english...)
	if len(merged) == 0 {
		// Unreachable with a non-empty dataset, guarded regardless.
		return model.Match{}, ErrNoMatch
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	metrics.RecordResolution(float64(time.Since(start).Milliseconds()))
	return merged[0], nil
}

// TopK returns the configured resolve top-k count.
func (m *Matcher) TopK() int {
	return m.topK
}

// CacheLen returns the current number of memoized scans.
func (m *Matcher) CacheLen() int {
	return m.cache.Len()
}

// cloneMatches copies a cached result so callers can never mutate the
// memoized slice.
func cloneMatches(in []model.Match) []model.Match {
	out := make([]model.Match, len(in))
	copy(out, in)
	return out
}
