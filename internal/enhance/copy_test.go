package enhance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelift/seogen/internal/model"
)

func testRequest() Request {
	return Request{
		Business: model.Business{ID: "biz-1", Name: "Summit Plumbing", Phone: "(303) 555-0142"},
		Service:  model.Service{ID: "drain-cleaning", Name: "Drain Cleaning"},
		Location: model.Location{ID: "denver-co", City: "Denver", State: "CO", MonthlySearches: 5000},
	}
}

func testDeck() ([]string, []Testimonial) {
	expertise := []string{
		"Older homes often hide galvanized supply lines and cast iron drains that corrode from the inside, narrowing flow year after year until backups become routine.",
		"Seasonal temperature swings are hard on plumbing and mechanical systems, and the freeze-thaw cycle is the single biggest cause of springtime service calls.",
		"Local permitting offices expect licensed work with inspections on anything beyond a basic repair, and unpermitted work surfaces fast during a home sale.",
	}
	testimonials := []Testimonial{
		{Quote: "They found the real problem in twenty minutes after another company had guessed wrong twice.", Author: "Maria G."},
		{Quote: "On time, tidy, and the final bill matched the estimate exactly.", Author: "Dan W."},
	}
	return expertise, testimonials
}

func TestCopyWriter_Deterministic(t *testing.T) {
	expertise, testimonials := testDeck()
	w := NewCopyWriter(expertise, testimonials)
	ctx := context.Background()

	first, err := w.Sections(ctx, testRequest())
	require.NoError(t, err)
	second, err := w.Sections(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCopyWriter_LocalizesCopy(t *testing.T) {
	expertise, testimonials := testDeck()
	w := NewCopyWriter(expertise, testimonials)

	sections, err := w.Sections(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, sections.Expertise, 3)
	var mentionsCity bool
	for _, p := range sections.Expertise {
		if strings.Contains(p, "Denver") {
			mentionsCity = true
		}
	}
	assert.True(t, mentionsCity, "expertise copy should mention the page's city")
	assert.True(t, strings.HasSuffix(sections.Testimonial.Author, ", Denver"))
}

func TestCopyWriter_ParagraphsVary(t *testing.T) {
	expertise, testimonials := testDeck()
	w := NewCopyWriter(expertise, testimonials)

	sections, err := w.Sections(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, sections.Expertise, 3)

	// Consecutive fragment indices guarantee three distinct paragraphs.
	assert.NotEqual(t, sections.Expertise[0], sections.Expertise[1])
	assert.NotEqual(t, sections.Expertise[1], sections.Expertise[2])
}

func TestCopyWriter_EmptyDeck(t *testing.T) {
	w := NewCopyWriter(nil, nil)

	sections, err := w.Sections(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, sections.Expertise, 1)
	assert.Contains(t, sections.Expertise[0], "drain cleaning")
	assert.Contains(t, sections.Expertise[0], "Denver")
	assert.NotEmpty(t, sections.Testimonial.Quote)
	assert.Equal(t, "Happy Customer, Denver", sections.Testimonial.Author)
}
