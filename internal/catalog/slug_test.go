package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Drain Cleaning", "drain-cleaning"},
		{"ampersand", "Heating & Cooling", "heating-and-cooling"},
		{"diacritics", "Española", "espanola"},
		{"tilde", "Cañon City", "canon-city"},
		{"punctuation", "24/7 Emergency Service!", "24-7-emergency-service"},
		{"extra whitespace", "  Water   Heater  ", "water-heater"},
		{"already slugged", "sewer-line-repair", "sewer-line-repair"},
		{"empty", "", ""},
		{"only punctuation", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestLocationID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "denver-co", LocationID("Denver", "CO"))
	assert.Equal(t, "fort-worth-tx", LocationID("Fort Worth", "TX"))
	assert.Equal(t, "espanola-nm", LocationID("Española", "NM"))
}
