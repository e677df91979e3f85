package seo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelift/seogen/internal/enhance"
	"github.com/tradelift/seogen/internal/model"
)

func singlePairCatalog() model.Catalog {
	return model.Catalog{
		Services:  []model.Service{{ID: "hvac-repair", Name: "HVAC Repair", Emergency: true}},
		Locations: []model.Location{{ID: "austin-tx", City: "Austin", State: "TX", MonthlySearches: 5000}},
	}
}

func alwaysTemplate(model.Service, model.Location) model.GenerationMethod {
	return model.MethodTemplate
}

func alwaysEnhanced(model.Service, model.Location) model.GenerationMethod {
	return model.MethodEnhanced
}

func newTestGenerator(t *testing.T, writer enhance.Writer, cfg GeneratorConfig) *Generator {
	t.Helper()
	r, err := NewRenderer(DefaultDeck())
	require.NoError(t, err)
	return NewGenerator(r, writer, cfg)
}

func deckWriter() *enhance.CopyWriter {
	deck := DefaultDeck()
	return enhance.NewCopyWriter(deck.Expertise, deck.Testimonials)
}

type failingWriter struct{}

func (failingWriter) Sections(context.Context, enhance.Request) (*enhance.Sections, error) {
	return nil, errors.New("writer unavailable")
}

func TestGenerator_SinglePairCatalog(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil, GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), singlePairCatalog(), alwaysTemplate)
	require.NoError(t, err)

	assert.Equal(t, "biz-1", coll.BusinessID)
	assert.Equal(t, 4, coll.TotalPages)
	assert.Len(t, coll.Pages, 4)
	assert.Empty(t, coll.Diagnostics)

	for _, url := range []string{
		"/services/hvac-repair",
		"/locations/austin-tx",
		"/services/hvac-repair/austin-tx",
		"/emergency/hvac-repair/austin-tx",
	} {
		page, ok := coll.Pages[url]
		require.True(t, ok, "missing page %s", url)
		assert.Equal(t, url, page.URL)
		assert.NotEmpty(t, page.Title)
		assert.NotEmpty(t, page.ContentHTML)
		assert.NotNil(t, page.SchemaMarkup)
		assert.NotEmpty(t, page.TargetKeywords)
		assert.False(t, page.CreatedAt.IsZero())
	}

	assert.Equal(t, 4, coll.Stats.TemplatePages)
	assert.Equal(t, 0, coll.Stats.EnhancedPages)
	assert.Equal(t, 0, coll.Stats.FailedPages)
	assert.Zero(t, coll.Stats.EstimatedCostUSD)
}

func TestGenerator_EmptyLocationAxis(t *testing.T) {
	t.Parallel()

	catalog := model.Catalog{
		Services: []model.Service{{ID: "hvac-repair", Name: "HVAC Repair", Emergency: true}},
	}

	g := newTestGenerator(t, nil, GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), catalog, alwaysTemplate)
	require.NoError(t, err)

	require.Equal(t, 1, coll.TotalPages)
	_, ok := coll.Pages["/services/hvac-repair"]
	assert.True(t, ok)
}

func TestGenerator_EmptyCatalog(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil, GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), model.Catalog{}, alwaysTemplate)
	require.NoError(t, err)

	assert.Zero(t, coll.TotalPages)
	assert.Empty(t, coll.Pages)
	assert.Empty(t, coll.Diagnostics)
}

func TestGenerator_EnhancedPages(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, deckWriter(), GeneratorConfig{EnhancedPageCost: 0.0035})
	coll, err := g.Generate(context.Background(), seoBusiness(), singlePairCatalog(), alwaysEnhanced)
	require.NoError(t, err)

	require.Equal(t, 4, coll.TotalPages)

	pair := coll.Pages["/services/hvac-repair/austin-tx"]
	assert.Equal(t, model.MethodEnhanced, pair.GenerationMethod)
	assert.Contains(t, pair.ContentHTML, "What Your Neighbors Say")
	assert.GreaterOrEqual(t, pair.WordCount, 1000)

	// Only the service-location page consults the decider; emergency pages
	// are always templated.
	emergency := coll.Pages["/emergency/hvac-repair/austin-tx"]
	assert.Equal(t, model.MethodTemplate, emergency.GenerationMethod)

	assert.Equal(t, 1, coll.Stats.EnhancedPages)
	assert.Equal(t, 3, coll.Stats.TemplatePages)
	assert.InDelta(t, 0.0035, coll.Stats.EstimatedCostUSD, 1e-9)
}

func TestGenerator_NilWriterDowngradesToTemplate(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil, GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), singlePairCatalog(), alwaysEnhanced)
	require.NoError(t, err)

	pair := coll.Pages["/services/hvac-repair/austin-tx"]
	assert.Equal(t, model.MethodTemplate, pair.GenerationMethod)
	assert.Equal(t, 0, coll.Stats.EnhancedPages)
}

func TestGenerator_PageFailureIsolation(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, failingWriter{}, GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), singlePairCatalog(), alwaysEnhanced)
	require.NoError(t, err)

	// The enhanced pair page fails; the other three survive.
	assert.Equal(t, 3, coll.TotalPages)
	_, ok := coll.Pages["/services/hvac-repair/austin-tx"]
	assert.False(t, ok)

	require.Len(t, coll.Diagnostics, 1)
	diag := coll.Diagnostics[0]
	assert.Equal(t, "/services/hvac-repair/austin-tx", diag.URL)
	assert.Equal(t, model.PageTypeServiceLocation, diag.PageType)
	assert.Contains(t, diag.Error, "writer unavailable")
	assert.Equal(t, 1, coll.Stats.FailedPages)
}

func TestGenerator_PolicyIntegration(t *testing.T) {
	t.Parallel()

	business := seoBusiness()
	policy := NewPolicy(business.ID, 1000, 1.0)

	g := newTestGenerator(t, deckWriter(), GeneratorConfig{})
	coll, err := g.Generate(context.Background(), business, singlePairCatalog(), policy.Decide)
	require.NoError(t, err)

	// Austin's 5000 searches clear the 1000 threshold and rate 1.0 selects
	// every eligible pair.
	pair := coll.Pages["/services/hvac-repair/austin-tx"]
	assert.Equal(t, model.MethodEnhanced, pair.GenerationMethod)
}

func TestGenerator_NilDecider(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, deckWriter(), GeneratorConfig{})
	coll, err := g.Generate(context.Background(), seoBusiness(), singlePairCatalog(), nil)
	require.NoError(t, err)

	for url, page := range coll.Pages {
		assert.Equal(t, model.MethodTemplate, page.GenerationMethod, "page %s", url)
	}
}

func TestGenerator_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGenerator(t, nil, GeneratorConfig{})
	_, err := g.Generate(ctx, seoBusiness(), testCatalog(), alwaysTemplate)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_LargeCatalog(t *testing.T) {
	t.Parallel()

	catalog := model.Catalog{}
	for i := 0; i < 8; i++ {
		catalog.Services = append(catalog.Services, model.Service{
			ID:        svcID(i),
			Name:      "Service " + string(rune('A'+i)),
			Emergency: i%4 == 0,
		})
	}
	for i := 0; i < 6; i++ {
		catalog.Locations = append(catalog.Locations, model.Location{
			ID:              locID(i),
			City:            "City " + string(rune('A'+i)),
			State:           "TX",
			MonthlySearches: 2000,
		})
	}

	g := newTestGenerator(t, nil, GeneratorConfig{Workers: 4})
	coll, err := g.Generate(context.Background(), seoBusiness(), catalog, alwaysTemplate)
	require.NoError(t, err)

	// 8 services + 6 locations + 48 pairs + 2 emergency services * 6.
	assert.Equal(t, 8+6+48+12, coll.TotalPages)
	assert.Empty(t, coll.Diagnostics)
}

func svcID(i int) string {
	return "svc-" + string(rune('a'+i))
}

func locID(i int) string {
	return "loc-" + string(rune('a'+i))
}
