package seo

import (
	"github.com/tradelift/seogen/internal/model"
)

// PlanEntry is one page a generation run would produce.
type PlanEntry struct {
	URL    string                 `json:"url"`
	Type   model.PageType         `json:"page_type"`
	Method model.GenerationMethod `json:"generation_method"`
}

// Plan previews a generation run without rendering anything: which pages
// the catalog implies, which of them the policy enhances, and what the
// enhanced share is expected to cost.
type Plan struct {
	Entries          []PlanEntry `json:"entries"`
	TemplatePages    int         `json:"template_pages"`
	EnhancedPages    int         `json:"enhanced_pages"`
	EstimatedCostUSD float64     `json:"estimated_cost_usd"`
}

// TotalPages returns the number of pages the plan covers.
func (p *Plan) TotalPages() int {
	return len(p.Entries)
}

// BuildPlan enumerates the catalog and applies the decider the same way a
// generation run would.
func BuildPlan(catalog model.Catalog, decide Decider, enhancedPageCost float64) *Plan {
	svcByID := make(map[string]model.Service, len(catalog.Services))
	for _, s := range catalog.Services {
		svcByID[s.ID] = s
	}
	locByID := make(map[string]model.Location, len(catalog.Locations))
	for _, l := range catalog.Locations {
		locByID[l.ID] = l
	}

	keys := EnumerateKeys(catalog)
	plan := &Plan{Entries: make([]PlanEntry, 0, len(keys))}
	for _, key := range keys {
		method := methodForKey(key, svcByID, locByID, decide)
		plan.Entries = append(plan.Entries, PlanEntry{
			URL:    key.URL(),
			Type:   key.Type,
			Method: method,
		})
		if method == model.MethodEnhanced {
			plan.EnhancedPages++
		} else {
			plan.TemplatePages++
		}
	}
	plan.EstimatedCostUSD = float64(plan.EnhancedPages) * enhancedPageCost
	return plan
}

// methodForKey picks the generation method for one key. Only
// service-location pages consult the decider; everything else, emergency
// pages included, is templated.
func methodForKey(key model.PageKey, svcByID map[string]model.Service, locByID map[string]model.Location, decide Decider) model.GenerationMethod {
	if key.Type != model.PageTypeServiceLocation || decide == nil {
		return model.MethodTemplate
	}
	svc, okS := svcByID[key.ServiceID]
	loc, okL := locByID[key.LocationID]
	if !okS || !okL {
		return model.MethodTemplate
	}
	return decide(svc, loc)
}
