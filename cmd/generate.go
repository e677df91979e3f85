package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tradelift/seogen/internal/catalog"
	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/seo"
)

var (
	generateBusinessID    string
	generateBusinessFile  string
	generateServicesFile  string
	generateLocationsFile string
	generateOutput        string
	generateHTMLDir       string
	generatePretty        bool
	generateSave          bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full SEO page set for a business",
	Long:  "Expands the business catalog into every page, renders them, and writes the collection as JSON. Reads the catalog from the store (--business) or from JSON fixture files (--business-file).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		switch {
		case generateBusinessFile != "":
			return generateFromFiles(ctx)
		case generateBusinessID != "":
			return generateFromStore(ctx)
		default:
			return eris.New("either --business or --business-file is required")
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateBusinessID, "business", "", "business ID to generate from the store")
	generateCmd.Flags().StringVar(&generateBusinessFile, "business-file", "", "business JSON fixture (store-less mode)")
	generateCmd.Flags().StringVar(&generateServicesFile, "services-file", "", "services JSON fixture")
	generateCmd.Flags().StringVar(&generateLocationsFile, "locations-file", "", "locations JSON fixture")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "write the collection to this path (default stdout)")
	generateCmd.Flags().StringVar(&generateHTMLDir, "html-dir", "", "also dump each page's rendered HTML under this directory")
	generateCmd.Flags().BoolVar(&generatePretty, "pretty", false, "indent the JSON output")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "also cache the collection in the store")
	rootCmd.AddCommand(generateCmd)
}

func generateFromFiles(ctx context.Context) error {
	if generateSave {
		return eris.New("--save requires store mode (--business)")
	}

	provider, err := catalog.NewFileProvider(generateBusinessFile, generateServicesFile, generateLocationsFile)
	if err != nil {
		return err
	}

	deck, err := seo.LoadDeck(cfg.Content.PackPath)
	if err != nil {
		return err
	}
	gen, _, err := buildGenerator(deck)
	if err != nil {
		return err
	}

	business, err := provider.Business(ctx, "")
	if err != nil {
		return err
	}
	cat, err := provider.Catalog(ctx, business.ID)
	if err != nil {
		return err
	}

	decide := seo.NewPolicy(business.ID, cfg.Policy.MinMonthlySearches, cfg.Policy.SampleRate).Decide
	coll, err := gen.Generate(ctx, *business, *cat, decide)
	if err != nil {
		return err
	}

	return writeCollection(coll)
}

func generateFromStore(ctx context.Context) error {
	env, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	provider := catalog.NewStoreProvider(env.Store)
	business, err := provider.Business(ctx, generateBusinessID)
	if err != nil {
		return err
	}
	if business == nil {
		return eris.Errorf("business %q not found", generateBusinessID)
	}

	cat, err := provider.Catalog(ctx, business.ID)
	if err != nil {
		return err
	}

	coll, err := env.Generator.Generate(ctx, *business, *cat, env.decider(business.ID))
	if err != nil {
		return err
	}

	if generateSave {
		ttl := time.Duration(cfg.Generate.CacheTTLMinutes) * time.Minute
		if err := env.Store.SetCachedCollection(ctx, coll, ttl); err != nil {
			return eris.Wrap(err, "cache collection")
		}
	}

	return writeCollection(coll)
}

func writeCollection(coll *model.ArtifactCollection) error {
	if generateHTMLDir != "" {
		if err := writeHTMLDir(generateHTMLDir, coll); err != nil {
			return err
		}
	}

	var (
		data []byte
		err  error
	)
	if generatePretty {
		data, err = json.MarshalIndent(coll, "", "  ")
	} else {
		data, err = json.Marshal(coll)
	}
	if err != nil {
		return eris.Wrap(err, "marshal collection")
	}
	data = append(data, '\n')

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, data, 0o644); err != nil {
			return eris.Wrap(err, "write output file")
		}
	} else if _, err := os.Stdout.Write(data); err != nil {
		return eris.Wrap(err, "write stdout")
	}

	zap.L().Info("generation complete",
		zap.String("business_id", coll.BusinessID),
		zap.Int("total_pages", coll.TotalPages),
		zap.Int("template_pages", coll.Stats.TemplatePages),
		zap.Int("enhanced_pages", coll.Stats.EnhancedPages),
		zap.Int("failed_pages", coll.Stats.FailedPages),
		zap.Float64("estimated_cost_usd", coll.Stats.EstimatedCostUSD),
		zap.Int64("duration_ms", coll.Stats.DurationMS),
	)
	return nil
}

// writeHTMLDir mirrors each page's canonical URL as a .html file under dir,
// for eyeballing rendered content without a front-end.
func writeHTMLDir(dir string, coll *model.ArtifactCollection) error {
	for _, u := range coll.URLs() {
		path := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(u, "/"))+".html")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return eris.Wrapf(err, "create html dir %s", filepath.Dir(path))
		}
		if err := os.WriteFile(path, []byte(coll.Pages[u].ContentHTML), 0o644); err != nil {
			return eris.Wrapf(err, "write html file %s", path)
		}
	}
	zap.L().Info("html pages written", zap.String("dir", dir), zap.Int("pages", len(coll.Pages)))
	return nil
}
