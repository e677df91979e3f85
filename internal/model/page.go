package model

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// PageType classifies a generated page by the catalog axes it combines.
type PageType string

const (
	PageTypeService         PageType = "service"
	PageTypeLocation        PageType = "location"
	PageTypeServiceLocation PageType = "service_location"
	PageTypeEmergency       PageType = "emergency"
)

// AllPageTypes returns all defined page types.
func AllPageTypes() []PageType {
	return []PageType{
		PageTypeService,
		PageTypeLocation,
		PageTypeServiceLocation,
		PageTypeEmergency,
	}
}

// GenerationMethod identifies how a page's content was produced.
type GenerationMethod string

const (
	// MethodTemplate is deterministic template interpolation, free per page.
	MethodTemplate GenerationMethod = "template"
	// MethodEnhanced adds writer-produced narrative sections and carries a
	// per-page cost when an LLM writer is configured.
	MethodEnhanced GenerationMethod = "enhanced"
)

// PageKey identifies one generation target. ServiceID and LocationID are
// populated according to Type; unused fields are empty.
type PageKey struct {
	Type       PageType `json:"type"`
	ServiceID  string   `json:"service_id,omitempty"`
	LocationID string   `json:"location_id,omitempty"`
}

// URL returns the canonical path for the key. The mapping is bijective:
// ParsePageURL recovers the exact key.
func (k PageKey) URL() string {
	switch k.Type {
	case PageTypeService:
		return "/services/" + k.ServiceID
	case PageTypeLocation:
		return "/locations/" + k.LocationID
	case PageTypeServiceLocation:
		return "/services/" + k.ServiceID + "/" + k.LocationID
	case PageTypeEmergency:
		return "/emergency/" + k.ServiceID + "/" + k.LocationID
	}
	return ""
}

// ParsePageURL parses a canonical page path back into its PageKey.
func ParsePageURL(path string) (PageKey, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return PageKey{}, eris.Errorf("parse page url: empty path %q", path)
	}
	parts := strings.Split(trimmed, "/")
	for _, p := range parts {
		if p == "" {
			return PageKey{}, eris.Errorf("parse page url: empty segment in %q", path)
		}
	}

	switch {
	case parts[0] == "services" && len(parts) == 2:
		return PageKey{Type: PageTypeService, ServiceID: parts[1]}, nil
	case parts[0] == "services" && len(parts) == 3:
		return PageKey{Type: PageTypeServiceLocation, ServiceID: parts[1], LocationID: parts[2]}, nil
	case parts[0] == "locations" && len(parts) == 2:
		return PageKey{Type: PageTypeLocation, LocationID: parts[1]}, nil
	case parts[0] == "emergency" && len(parts) == 3:
		return PageKey{Type: PageTypeEmergency, ServiceID: parts[1], LocationID: parts[2]}, nil
	}
	return PageKey{}, eris.Errorf("parse page url: unrecognized path %q", path)
}

// PageArtifact is one generated page's complete content and metadata
// record. One artifact exists per PageKey within a collection.
type PageArtifact struct {
	URL              string           `json:"url"`
	Title            string           `json:"title"`
	MetaDescription  string           `json:"meta_description"`
	H1Heading        string           `json:"h1_heading"`
	ContentHTML      string           `json:"content_html"`
	SchemaMarkup     *Schema          `json:"schema_markup"`
	TargetKeywords   []string         `json:"target_keywords"`
	GenerationMethod GenerationMethod `json:"generation_method"`
	PageType         PageType         `json:"page_type"`
	WordCount        int              `json:"word_count"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Diagnostic records a single page that failed to generate. Failures are
// isolated per page; the collection carries the survivors plus these.
type Diagnostic struct {
	URL      string   `json:"url"`
	PageType PageType `json:"page_type"`
	Error    string   `json:"error"`
}

// GenerationStats summarizes one generation run.
type GenerationStats struct {
	TemplatePages    int     `json:"template_pages"`
	EnhancedPages    int     `json:"enhanced_pages"`
	FailedPages      int     `json:"failed_pages"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	DurationMS       int64   `json:"duration_ms"`
}

// ArtifactCollection is the unit returned to callers: every artifact for
// one business keyed by canonical URL. Collections are rebuilt whole; no
// artifact has an independent update lifecycle.
type ArtifactCollection struct {
	BusinessID  string                  `json:"business_id"`
	Pages       map[string]PageArtifact `json:"pages"`
	TotalPages  int                     `json:"total_pages"`
	GeneratedAt time.Time               `json:"generated_at"`
	Diagnostics []Diagnostic            `json:"diagnostics,omitempty"`
	Stats       GenerationStats         `json:"stats"`
}

// URLs returns the collection's page URLs in lexical order.
func (c *ArtifactCollection) URLs() []string {
	urls := make([]string, 0, len(c.Pages))
	for u := range c.Pages {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
