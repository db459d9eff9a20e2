// Package review filters and ranks username candidates.
//
// Candidates already present in the username store are dropped; the rest
// are ranked by a blend of an LLM appraisal and a deterministic heuristic
// score. The LLM is best effort: when it fails, ranking degrades to the
// heuristic alone.
package review

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/moniker/pkg/logger"
	"github.com/okian/moniker/pkg/metrics"
)

// Default reviewer configuration constants.
const (
	defaultSuggestionCount = 3
	defaultLLMWeight       = 0.6
	baseScore              = 50.0
	defaultLLMScore        = 50.0
	maxScoreValue          = 100.0
)

// readablePattern matches usernames that start with a letter and stay on
// the letter/digit/underscore alphabet.
var readablePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Store abstracts the username existence checks the reviewer needs.
type Store interface {
	// Taken reports which of the given usernames already exist,
	// keyed by their lowercased form.
	Taken(ctx context.Context, usernames []string) (map[string]bool, error)
}

// Completer abstracts the chat completion dependency.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Reviewer filters taken candidates and ranks the remainder.
type Reviewer struct {
	store     Store
	completer Completer
	count     int
	llmWeight float64
	logger    logger.Logger
}

// New creates a Reviewer backed by the given store.
func New(store Store, opts ...Option) *Reviewer {
	r := &Reviewer{
		store:     store,
		count:     defaultSuggestionCount,
		llmWeight: defaultLLMWeight,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.Get().Named("review")
	}

	return r
}

// Review drops taken candidates and returns the top suggestions for the
// input name, best first. An empty result means every candidate was taken.
func (r *Reviewer) Review(ctx context.Context, inputName string, candidates []string) ([]string, error) {
	available, err := r.filterTaken(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("filter taken usernames: %w", err)
	}
	if len(available) == 0 {
		return []string{}, nil
	}

	llmScores := r.llmScores(ctx, inputName, available)

	type scored struct {
		username string
		score    float64
	}
	ranked := make([]scored, len(available))
	for i, u := range available {
		ai, ok := llmScores[u]
		if !ok {
			ai = defaultLLMScore
		}
		ranked[i] = scored{
			username: u,
			score:    ai*r.llmWeight + heuristicScore(u)*(1-r.llmWeight),
		}
	}
	// Stable: candidates with equal blended scores keep generation order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := r.count
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = ranked[i].username
	}
	return out, nil
}

// filterTaken removes candidates already present in the store.
func (r *Reviewer) filterTaken(ctx context.Context, candidates []string) ([]string, error) {
	taken, err := r.store.Taken(ctx, candidates)
	if err != nil {
		return nil, err
	}

	available := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if taken[strings.ToLower(u)] {
			continue
		}
		available = append(available, u)
	}
	if dropped := len(candidates) - len(available); dropped > 0 {
		metrics.RecordUsernamesFilteredOut(dropped)
	}
	return available, nil
}

// llmScores asks the model to score each candidate 0-100 and parses the
// "username: score" response lines. Failures return an empty map so the
// caller falls back to heuristic-only ranking.
func (r *Reviewer) llmScores(ctx context.Context, inputName string, usernames []string) map[string]float64 {
	if r.completer == nil {
		return nil
	}

	out, err := r.completer.Complete(ctx, scoringPrompt(inputName, usernames))
	if err != nil {
		r.logger.Warn(ctx, "llm ranking failed, using heuristic scores", logger.Error(err))
		metrics.RecordErrorByComponent("review", "llm_unavailable")
		return nil
	}

	scores := make(map[string]float64, len(usernames))
	for _, line := range strings.Split(out, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		s, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		scores[strings.TrimSpace(name)] = clamp(float64(s))
	}
	return scores
}

// heuristicScore rates a username 0-100 on length, digit count, and shape.
func heuristicScore(username string) float64 {
	score := baseScore

	switch l := len(username); {
	case l >= 6 && l <= 15:
		score += 20
	case l >= 4 && l <= 20:
		score += 10
	default:
		score -= 10
	}

	digits := 0
	for _, r := range username {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 2 {
		score += 10
	} else {
		score -= 5
	}

	if readablePattern.MatchString(username) {
		score += 5
	} else {
		score -= 5
	}

	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxScoreValue {
		return maxScoreValue
	}
	return v
}

func scoringPrompt(inputName string, usernames []string) string {
	var b strings.Builder
	b.WriteString("Evaluate and score these usernames from 0-100 based on:\n")
	b.WriteString("- Memorability and ease of remembering\n")
	b.WriteString("- Professional appearance\n")
	b.WriteString("- Ease of typing and pronunciation\n")
	b.WriteString("- Alignment with the input name of the user\n\n")
	b.WriteString("Input name: ")
	b.WriteString(inputName)
	b.WriteString("\nUsernames to evaluate:\n")
	for i, u := range usernames {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(u)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with ONLY the scores, one per line, in the exact format:\nusername: score\n")
	return b.String()
}
