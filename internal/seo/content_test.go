package seo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDeck(t *testing.T) {
	t.Parallel()

	deck := DefaultDeck()
	assert.NotEmpty(t, deck.Benefits)
	assert.NotEmpty(t, deck.TrustSignals)
	assert.NotEmpty(t, deck.ProcessSteps)
	assert.NotEmpty(t, deck.EmergencySteps)
	assert.NotEmpty(t, deck.Expertise)
	assert.NotEmpty(t, deck.Testimonials)

	for _, tm := range deck.Testimonials {
		assert.NotEmpty(t, tm.Quote)
		assert.NotEmpty(t, tm.Author)
	}
}

func TestLoadDeck_EmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()

	deck, err := LoadDeck("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDeck(), deck)
}

func TestLoadDeck_OverridesSections(t *testing.T) {
	t.Parallel()

	pack := `benefits:
  - "Custom benefit one for this deployment."
  - "Custom benefit two for this deployment."
testimonials:
  - quote: "Best roofers in the county, hands down."
    author: "Alice K."
`
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pack), 0o644))

	deck, err := LoadDeck(path)
	require.NoError(t, err)

	// Present sections replace defaults wholesale.
	require.Len(t, deck.Benefits, 2)
	assert.Equal(t, "Custom benefit one for this deployment.", deck.Benefits[0])
	require.Len(t, deck.Testimonials, 1)
	assert.Equal(t, "Alice K.", deck.Testimonials[0].Author)

	// Absent sections keep defaults.
	assert.Equal(t, DefaultDeck().TrustSignals, deck.TrustSignals)
	assert.Equal(t, DefaultDeck().EmergencySteps, deck.EmergencySteps)
}

func TestLoadDeck_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadDeck(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read content pack")
}

func TestLoadDeck_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("benefits: {not: [valid"), 0o644))

	_, err := LoadDeck(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse content pack")
}
