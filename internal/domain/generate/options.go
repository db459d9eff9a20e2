package generate

import (
	"math/rand"

	"github.com/okian/moniker/pkg/logger"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithCompleter sets the chat completion dependency. Without one, all
// candidates come from the offline rules.
func WithCompleter(c Completer) Option {
	return func(g *Generator) {
		g.completer = c
	}
}

// WithCandidateRange sets the minimum and maximum candidate counts.
func WithCandidateRange(minCount, maxCount int) Option {
	return func(g *Generator) {
		if minCount > 0 && maxCount >= minCount {
			g.minCandidates = minCount
			g.maxCandidates = maxCount
		}
	}
}

// WithLLMCandidates sets how many candidates are requested from the LLM.
func WithLLMCandidates(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.llmCandidates = count
		}
	}
}

// WithSeed seeds the rule randomness for reproducible candidates.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // usernames need no cryptographic randomness
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
