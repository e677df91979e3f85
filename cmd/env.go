package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tradelift/seogen/internal/config"
	"github.com/tradelift/seogen/internal/cost"
	"github.com/tradelift/seogen/internal/enhance"
	"github.com/tradelift/seogen/internal/seo"
	"github.com/tradelift/seogen/internal/store"
	"github.com/tradelift/seogen/pkg/anthropic"
)

// appEnv holds the store, writer, and generator shared by the serve and
// generate commands.
type appEnv struct {
	Store     store.Store
	Generator *seo.Generator
	Deck      *seo.Deck
	PageCost  float64
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// decider returns the generation policy for one business.
func (e *appEnv) decider(businessID string) seo.Decider {
	return seo.NewPolicy(businessID, cfg.Policy.MinMonthlySearches, cfg.Policy.SampleRate).Decide
}

// initEnv sets up the store, content deck, writer, and generator. Callers
// should defer env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	deck, err := seo.LoadDeck(cfg.Content.PackPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	gen, pageCost, err := buildGenerator(deck)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &appEnv{Store: st, Generator: gen, Deck: deck, PageCost: pageCost}, nil
}

// buildGenerator assembles the writer chain and generator from config.
// Without an API key the deterministic copy writer serves enhanced pages,
// so every command works offline.
func buildGenerator(deck *seo.Deck) (*seo.Generator, float64, error) {
	renderer, err := seo.NewRenderer(deck)
	if err != nil {
		return nil, 0, err
	}

	fallback := enhance.NewCopyWriter(deck.Expertise, deck.Testimonials)

	var writer enhance.Writer = fallback
	pageCost := estimatedPageCost()
	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		writer = enhance.NewClaudeWriter(client, enhance.ClaudeWriterConfig{
			Model:             cfg.Anthropic.Model,
			MaxTokens:         int64(cfg.Anthropic.MaxTokens),
			RequestsPerSecond: cfg.Anthropic.RequestsPerSecond,
		}, fallback)
		zap.L().Info("anthropic writer enabled",
			zap.String("model", cfg.Anthropic.Model),
			zap.Float64("est_cost_per_page_usd", pageCost))
	} else {
		zap.L().Info("no anthropic key set, enhanced pages use the copy deck writer")
	}

	gen := seo.NewGenerator(renderer, writer, seo.GeneratorConfig{
		Workers:          cfg.Generate.Workers,
		Timeout:          time.Duration(cfg.Generate.TimeoutSecs) * time.Second,
		EnhancedPageCost: pageCost,
	})
	return gen, pageCost, nil
}

// estimatedPageCost prices one enhanced page under the configured model.
// Zero when no API key is set: the copy writer is free.
func estimatedPageCost() float64 {
	if cfg.Anthropic.Key == "" {
		return 0
	}
	calc := cost.NewCalculator(pricingRates(cfg.Pricing), cfg.Pricing.EnhancedAvgInput, cfg.Pricing.EnhancedAvgOutput)
	return calc.EnhancedPage(cfg.Anthropic.Model)
}

func pricingRates(pc config.PricingConfig) cost.Rates {
	rates := cost.Rates{Anthropic: make(map[string]cost.ModelRate, len(pc.Anthropic))}
	for m, r := range pc.Anthropic {
		rates.Anthropic[m] = cost.ModelRate{Input: r.Input, Output: r.Output}
	}
	return rates
}
