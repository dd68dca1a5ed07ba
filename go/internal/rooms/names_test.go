package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordNameGenerator(t *testing.T) {
	g := NewWordNameGenerator()
	for i := 0; i < 200; i++ {
		name := g.Generate()
		assert.Regexp(t, roomNamePattern, name)
		assert.NotContains(t, name, " ")
	}
}

func TestSanitizeWord(t *testing.T) {
	tests := map[string]string{
		"Kettle":    "kettle",
		"don't":     "dont",
		"ice cream": "icecream",
		"café":      "caf",
		"42":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeWord(in), in)
	}
}

func TestNormalizeRoomName(t *testing.T) {
	assert.Equal(t, "brave-orange-kettle", NormalizeRoomName("  Brave-Orange-KETTLE "))
}
