package match

import "github.com/okian/moniker/internal/domain/model"

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithTopK sets the top-k count used by Resolve's per-column scans.
func WithTopK(k int) Option {
	return func(m *Matcher) {
		if k > 0 {
			m.topK = k
		}
	}
}

// WithCacheSize sets the memoization cache capacity.
func WithCacheSize(size int) Option {
	return func(m *Matcher) {
		if size > 0 {
			m.cacheSize = size
		}
	}
}

// WithResolveMethod sets the similarity method used by Resolve.
func WithResolveMethod(method model.Method) Option {
	return func(m *Matcher) {
		if method.Valid() {
			m.resolveMethod = method
		}
	}
}
