package rooms

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// wordsPerName is the number of words joined into a room name
const wordsPerName = 3

// NameGenerator produces candidate room names
type NameGenerator interface {
	Generate() string
}

// WordNameGenerator builds names like "brave-orange-kettle" from random words
type WordNameGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewWordNameGenerator creates a generator seeded from a random source
func NewWordNameGenerator() *WordNameGenerator {
	return &WordNameGenerator{faker: gofakeit.New(0)}
}

// Generate returns three lowercase words joined by hyphens
func (g *WordNameGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	words := make([]string, 0, wordsPerName)
	for len(words) < wordsPerName {
		if w := sanitizeWord(g.faker.Word()); w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, "-")
}

// sanitizeWord lowercases w and drops everything outside a-z
func sanitizeWord(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(w) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeRoomName lowercases a user supplied room name
func NormalizeRoomName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
