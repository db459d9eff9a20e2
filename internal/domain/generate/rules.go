package generate

import (
	"strconv"
	"strings"
)

// Word pools for rule-based generation.
var (
	prefixes      = []string{"the", "mr", "ms", "dr", "prof"}
	suffixes      = []string{"_official", "_real", "_pro", "_user", "_dev"}
	creativeWords = []string{"cool", "super", "mega", "ultra", "prime"}
	years         = []int{2020, 2021, 2022, 2023, 2024}
)

// underscoreRule joins name parts with underscores.
func underscoreRule(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// dotRule joins name parts with dots.
func dotRule(name string) string {
	return strings.ReplaceAll(name, " ", ".")
}

// numberRule appends a random number up to three digits.
func (g *Generator) numberRule(name string) string {
	return strings.ReplaceAll(name, " ", "") + strconv.Itoa(g.rng.Intn(999)+1)
}

// yearRule appends a recent year.
func (g *Generator) yearRule(name string) string {
	return strings.ReplaceAll(name, " ", "") + strconv.Itoa(years[g.rng.Intn(len(years))])
}

// prefixRule prepends a common title prefix.
func (g *Generator) prefixRule(name string) string {
	return prefixes[g.rng.Intn(len(prefixes))] + "_" + strings.ReplaceAll(name, " ", "")
}

// suffixRule appends a common suffix.
func (g *Generator) suffixRule(name string) string {
	return strings.ReplaceAll(name, " ", "") + suffixes[g.rng.Intn(len(suffixes))]
}

// creative produces offline variations used when the LLM is unavailable:
// the reversed base, a word mix, initial plus digits, and an x-variant.
func (g *Generator) creative(name string) []string {
	base := strings.ReplaceAll(name, " ", "")
	if base == "" {
		return nil
	}

	out := make([]string, 0, 4)
	out = append(out, reverse(base))
	out = append(out, creativeWords[g.rng.Intn(len(creativeWords))]+"_"+base)
	out = append(out, base[:1]+base+strconv.Itoa(g.rng.Intn(90)+10))
	out = append(out, base+"x"+strconv.Itoa(g.rng.Intn(9)+1))
	return out
}

// variation pads the candidate list when rules and LLM output overlap.
func (g *Generator) variation(base string) string {
	switch g.rng.Intn(5) {
	case 0:
		return base + strconv.Itoa(g.rng.Intn(900)+100)
	case 1:
		return base + "_v" + strconv.Itoa(g.rng.Intn(9)+1)
	case 2:
		return "user_" + base
	case 3:
		return g.suffixRule(base)
	default:
		return base + "_new"
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
