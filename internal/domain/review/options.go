package review

import "github.com/okian/moniker/pkg/logger"

// Option applies a configuration option to the Reviewer.
type Option func(*Reviewer)

// WithCompleter sets the chat completion dependency used for ranking.
func WithCompleter(c Completer) Option {
	return func(r *Reviewer) {
		r.completer = c
	}
}

// WithSuggestionCount sets how many suggestions Review returns.
func WithSuggestionCount(count int) Option {
	return func(r *Reviewer) {
		if count > 0 {
			r.count = count
		}
	}
}

// WithLLMWeight sets the LLM share of the blended score (0-1); the
// heuristic score carries the rest.
func WithLLMWeight(weight float64) Option {
	return func(r *Reviewer) {
		if weight >= 0 && weight <= 1 {
			r.llmWeight = weight
		}
	}
}

// WithLogger sets a custom logger for the reviewer.
func WithLogger(l logger.Logger) Option {
	return func(r *Reviewer) {
		if l != nil {
			r.logger = l
		}
	}
}
