package loadtest

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
)

// sampleNames mixes native-script and Latin spellings, with a few typos,
// to exercise the resolution path the way real traffic would.
var sampleNames = []string{
	"علی",
	"Ali",
	"aly",
	"زهرا",
	"Zahra",
	"zahara",
	"محمد",
	"Mohammad",
	"mohamad",
	"فاطمه",
	"Fatemeh",
	"fatima",
	"حسین",
	"Hossein",
	"hosein",
	"مریم",
	"Maryam",
	"mariam",
	"رضا",
	"Reza",
	"sara",
	"سارا",
}

// generateNames produces count names: the fixed mixed-script samples
// shuffled in, padded with random first names.
func generateNames(count int, rng *rand.Rand) []string {
	names := make([]string, 0, count)
	for len(names) < count {
		if n := len(names); n < len(sampleNames) {
			names = append(names, sampleNames[rng.Intn(len(sampleNames))])
			continue
		}
		names = append(names, gofakeit.FirstName())
	}
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	return names
}
