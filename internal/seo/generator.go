package seo

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tradelift/seogen/internal/enhance"
	"github.com/tradelift/seogen/internal/model"
)

// GeneratorConfig tunes a generation run.
type GeneratorConfig struct {
	// Workers bounds concurrent page renders. Default: 8.
	Workers int
	// Timeout bounds the whole run; zero means no deadline.
	Timeout time.Duration
	// EnhancedPageCost is the estimated writer spend per enhanced page,
	// used for the run's cost estimate.
	EnhancedPageCost float64
}

// Generator assembles the full artifact collection for one business. Page
// failures are isolated: a page that cannot render becomes a diagnostic
// and the rest of the collection is unaffected. Only cancellation aborts
// a run.
type Generator struct {
	renderer *Renderer
	writer   enhance.Writer
	cfg      GeneratorConfig
}

func NewGenerator(renderer *Renderer, writer enhance.Writer, cfg GeneratorConfig) *Generator {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Generator{renderer: renderer, writer: writer, cfg: cfg}
}

// Generate renders every page the catalog implies and packs the results
// into a collection. The decider picks template-versus-enhanced for
// service-location pages; service, location, and emergency pages are
// always templated. A nil decider templates everything.
func (g *Generator) Generate(ctx context.Context, business model.Business, catalog model.Catalog, decide Decider) (*model.ArtifactCollection, error) {
	start := time.Now()

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	svcByID := make(map[string]model.Service, len(catalog.Services))
	for _, s := range catalog.Services {
		svcByID[s.ID] = s
	}
	locByID := make(map[string]model.Location, len(catalog.Locations))
	for _, l := range catalog.Locations {
		locByID[l.ID] = l
	}

	keys := EnumerateKeys(catalog)

	var (
		mu        sync.Mutex
		pages     = make(map[string]model.PageArtifact, len(keys))
		diags     []model.Diagnostic
		templated int
		enhanced  int
	)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.Workers)

	for _, key := range keys {
		grp.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			artifact, err := g.buildPage(ctx, business, catalog, key, svcByID, locByID, decide)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				mu.Lock()
				diags = append(diags, model.Diagnostic{
					URL:      key.URL(),
					PageType: key.Type,
					Error:    err.Error(),
				})
				mu.Unlock()
				zap.L().Warn("page generation failed",
					zap.String("business_id", business.ID),
					zap.String("url", key.URL()),
					zap.Error(err))
				return nil
			}

			mu.Lock()
			pages[artifact.URL] = *artifact
			if artifact.GenerationMethod == model.MethodEnhanced {
				enhanced++
			} else {
				templated++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, eris.Wrap(err, "seo: generate")
	}

	collection := &model.ArtifactCollection{
		BusinessID:  business.ID,
		Pages:       pages,
		TotalPages:  len(pages),
		GeneratedAt: start.UTC(),
		Diagnostics: diags,
		Stats: model.GenerationStats{
			TemplatePages:    templated,
			EnhancedPages:    enhanced,
			FailedPages:      len(diags),
			EstimatedCostUSD: float64(enhanced) * g.cfg.EnhancedPageCost,
			DurationMS:       time.Since(start).Milliseconds(),
		},
	}

	zap.L().Info("generated page collection",
		zap.String("business_id", business.ID),
		zap.Int("total_pages", collection.TotalPages),
		zap.Int("template_pages", templated),
		zap.Int("enhanced_pages", enhanced),
		zap.Int("failed_pages", len(diags)),
		zap.Int64("duration_ms", collection.Stats.DurationMS))

	return collection, nil
}

func (g *Generator) buildPage(ctx context.Context, business model.Business, catalog model.Catalog, key model.PageKey, svcByID map[string]model.Service, locByID map[string]model.Location, decide Decider) (*model.PageArtifact, error) {
	var svc *model.Service
	if key.ServiceID != "" {
		if s, ok := svcByID[key.ServiceID]; ok {
			svc = &s
		}
	}
	var loc *model.Location
	if key.LocationID != "" {
		if l, ok := locByID[key.LocationID]; ok {
			loc = &l
		}
	}

	method := methodForKey(key, svcByID, locByID, decide)

	var extra *enhance.Sections
	if method == model.MethodEnhanced {
		if g.writer == nil {
			method = model.MethodTemplate
		} else {
			sections, err := g.writer.Sections(ctx, enhance.Request{
				Business: business,
				Service:  *svc,
				Location: *loc,
			})
			if err != nil {
				return nil, eris.Wrapf(err, "seo: enhanced sections for %s", key.URL())
			}
			extra = sections
		}
	}

	rendered, err := g.renderer.Render(PageInput{
		Key:      key,
		Method:   method,
		Business: business,
		Service:  svc,
		Location: loc,
		Services: catalog.Services,
		Extra:    extra,
	})
	if err != nil {
		return nil, err
	}

	return &model.PageArtifact{
		URL:              key.URL(),
		Title:            rendered.Title,
		MetaDescription:  rendered.MetaDescription,
		H1Heading:        rendered.H1Heading,
		ContentHTML:      rendered.ContentHTML,
		SchemaMarkup:     BuildSchema(key, business, svc, loc),
		TargetKeywords:   TargetKeywords(key, svc, loc),
		GenerationMethod: method,
		PageType:         key.Type,
		WordCount:        rendered.WordCount,
		CreatedAt:        time.Now().UTC(),
	}, nil
}
