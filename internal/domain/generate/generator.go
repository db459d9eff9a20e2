// Package generate produces username candidates from a resolved English name.
//
// Candidates come from two sources: an LLM asked for creative handles, and
// a fixed set of deterministic string-transform rules. The LLM is best
// effort; rule-based generation alone always yields a full candidate set,
// so Candidates never fails.
package generate

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/alexsergivan/transliterator"

	"github.com/okian/moniker/pkg/logger"
	"github.com/okian/moniker/pkg/metrics"
)

// Default generator configuration constants.
const (
	defaultMinCandidates = 10
	defaultMaxCandidates = 12
	defaultLLMCandidates = 6
	defaultRandomSeed    = 42
	minUsernameLen       = 4
	maxUsernameLen       = 20
	minRuleUsernameLen   = 3
)

// Completer abstracts the chat completion dependency.
type Completer interface {
	// Complete sends a prompt and returns the raw model output.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator builds username candidates for a name.
type Generator struct {
	completer     Completer
	trans         *transliterator.Transliterator
	rng           *rand.Rand
	minCandidates int
	maxCandidates int
	llmCandidates int
	logger        logger.Logger
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		trans:         transliterator.NewTransliterator(nil),
		rng:           rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible candidates
		minCandidates: defaultMinCandidates,
		maxCandidates: defaultMaxCandidates,
		llmCandidates: defaultLLMCandidates,
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logger.Get().Named("generate")
	}

	return g
}

// Normalize maps a resolved name onto the username alphabet: any
// remaining non-Latin runes are transliterated, the result is lowercased,
// and everything outside [a-z0-9 ] is dropped. Inner spaces survive so
// rules can join on underscores or dots.
func (g *Generator) Normalize(name string) string {
	t := g.trans.Transliterate(name, "en")
	t = strings.ToLower(t)

	var b strings.Builder
	for _, r := range t {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Candidates returns 10-12 unique username candidates for the resolved
// English name, LLM suggestions first, rule-based fills after.
func (g *Generator) Candidates(ctx context.Context, english string) []string {
	name := g.Normalize(english)
	if name == "" {
		name = "user"
	}
	base := strings.ReplaceAll(name, " ", "")

	usernames := g.fromLLM(ctx, name)
	usernames = append(usernames, g.fromRules(name)...)

	// De-duplicate preserving first-seen order.
	seen := make(map[string]struct{}, len(usernames))
	unique := make([]string, 0, g.maxCandidates)
	for _, u := range usernames {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}

	for len(unique) < g.minCandidates {
		v := g.variation(base)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}

	if len(unique) > g.maxCandidates {
		unique = unique[:g.maxCandidates]
	}
	metrics.RecordCandidatesGenerated(len(unique))
	return unique
}

// fromLLM asks the chat model for creative candidates. Failures degrade
// to offline creative variations.
func (g *Generator) fromLLM(ctx context.Context, name string) []string {
	if g.completer == nil {
		return g.creative(name)
	}

	out, err := g.completer.Complete(ctx, creativePrompt(name, g.llmCandidates))
	if err != nil {
		g.logger.Warn(ctx, "llm candidate generation failed, using offline fallback", logger.Error(err))
		metrics.RecordErrorByComponent("generate", "llm_unavailable")
		return g.creative(name)
	}

	candidates := make([]string, 0, g.llmCandidates)
	for _, line := range strings.Split(out, "\n") {
		u := sanitizeUsername(line)
		if len(u) >= minUsernameLen && len(u) <= maxUsernameLen {
			candidates = append(candidates, u)
		}
		if len(candidates) == g.llmCandidates {
			break
		}
	}
	if len(candidates) == 0 {
		return g.creative(name)
	}
	return candidates
}

// fromRules applies the first five transform rules to the name.
func (g *Generator) fromRules(name string) []string {
	rules := []func(string) string{
		underscoreRule,
		g.numberRule,
		g.yearRule,
		dotRule,
		g.prefixRule,
	}

	usernames := make([]string, 0, len(rules))
	for _, rule := range rules {
		if u := rule(name); len(u) >= minRuleUsernameLen {
			usernames = append(usernames, u)
		}
	}
	return usernames
}

// sanitizeUsername strips a raw model line down to [a-z0-9_].
func sanitizeUsername(line string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(line)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func creativePrompt(name string, count int) string {
	var b strings.Builder
	b.WriteString("Generate ")
	b.WriteString(strconv.Itoa(count))
	b.WriteString(" creative and unique usernames based on the name \"")
	b.WriteString(name)
	b.WriteString("\".\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- Each username should be 4-20 characters long\n")
	b.WriteString("- Use only letters, numbers, and underscores\n")
	b.WriteString("- Be creative but professional\n")
	b.WriteString("- Make them memorable and easy to type\n")
	b.WriteString("- Consider abbreviations, wordplay, or combinations\n\n")
	b.WriteString("Return only the usernames, one per line, no extra text or numbering.")
	return b.String()
}
