package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tradelift/seogen/internal/catalog"
	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/seo"
)

var (
	planBusinessID    string
	planBusinessFile  string
	planServicesFile  string
	planLocationsFile string
	planFormat        string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview which pages a generation run would produce",
	Long:  "Enumerates the catalog and applies the generation policy without rendering anything, showing per-page methods and the estimated enhanced-page spend.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if planFormat != "table" && planFormat != "json" {
			return eris.Errorf("plan: --format must be table or json (got %q)", planFormat)
		}

		business, cat, err := planInputs(ctx)
		if err != nil {
			return err
		}

		decide := seo.NewPolicy(business.ID, cfg.Policy.MinMonthlySearches, cfg.Policy.SampleRate).Decide
		plan := seo.BuildPlan(*cat, decide, estimatedPageCost())

		switch planFormat {
		case "json":
			return writePlanJSON(business.ID, plan)
		default:
			writePlanTable(business.ID, plan)
			return nil
		}
	},
}

func init() {
	planCmd.Flags().StringVar(&planBusinessID, "business", "", "business ID to plan from the store")
	planCmd.Flags().StringVar(&planBusinessFile, "business-file", "", "business JSON fixture (store-less mode)")
	planCmd.Flags().StringVar(&planServicesFile, "services-file", "", "services JSON fixture")
	planCmd.Flags().StringVar(&planLocationsFile, "locations-file", "", "locations JSON fixture")
	planCmd.Flags().StringVar(&planFormat, "format", "table", "output format: table or json")
	rootCmd.AddCommand(planCmd)
}

func planInputs(ctx context.Context) (*model.Business, *model.Catalog, error) {
	var provider catalog.Provider
	switch {
	case planBusinessFile != "":
		p, err := catalog.NewFileProvider(planBusinessFile, planServicesFile, planLocationsFile)
		if err != nil {
			return nil, nil, err
		}
		provider = p
	case planBusinessID != "":
		st, err := initStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return nil, nil, eris.Wrap(err, "migrate store")
		}
		provider = catalog.NewStoreProvider(st)
	default:
		return nil, nil, eris.New("either --business or --business-file is required")
	}

	business, err := provider.Business(ctx, planBusinessID)
	if err != nil {
		return nil, nil, err
	}
	if business == nil {
		return nil, nil, eris.Errorf("business %q not found", planBusinessID)
	}

	cat, err := provider.Catalog(ctx, business.ID)
	if err != nil {
		return nil, nil, err
	}
	return business, cat, nil
}

func writePlanJSON(businessID string, plan *seo.Plan) error {
	out := map[string]any{
		"business_id":        businessID,
		"total_pages":        plan.TotalPages(),
		"template_pages":     plan.TemplatePages,
		"enhanced_pages":     plan.EnhancedPages,
		"estimated_cost_usd": plan.EstimatedCostUSD,
		"entries":            plan.Entries,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return eris.Wrap(err, "plan: marshal")
	}
	data = append(data, '\n')
	_, err = os.Stdout.Write(data)
	return err
}

func writePlanTable(businessID string, plan *seo.Plan) {
	fmt.Printf("%-55s %-18s %-10s\n", "URL", "Type", "Method")
	fmt.Println(strings.Repeat("-", 85))
	for _, e := range plan.Entries {
		url := e.URL
		if len(url) > 55 {
			url = url[:52] + "..."
		}
		fmt.Printf("%-55s %-18s %-10s\n", url, e.Type, e.Method)
	}

	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Business:        %s\n", businessID)
	fmt.Printf("Total pages:     %d\n", plan.TotalPages())
	fmt.Printf("Template pages:  %d\n", plan.TemplatePages)
	fmt.Printf("Enhanced pages:  %d\n", plan.EnhancedPages)
	fmt.Printf("Estimated cost:  $%.4f\n", plan.EstimatedCostUSD)
}
