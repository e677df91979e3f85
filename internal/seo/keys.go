// Package seo generates the full SEO page set for a business: catalog
// expansion into page keys, the template/enhanced generation policy,
// HTML rendering, schema.org structured data, and concurrent assembly
// of the artifact collection.
package seo

import (
	"github.com/tradelift/seogen/internal/model"
)

// EnumerateKeys expands a catalog into every page to generate: one page
// per service, one per location, one per service-location pair, and one
// emergency page per emergency-service-location pair. Order follows the
// catalog (services outer, locations inner) so repeated runs enumerate
// identically. Empty axes simply contribute nothing.
func EnumerateKeys(catalog model.Catalog) []model.PageKey {
	services := catalog.Services
	locations := catalog.Locations
	emergency := catalog.EmergencyServices()

	keys := make([]model.PageKey, 0,
		len(services)+len(locations)+(len(services)+len(emergency))*len(locations))

	for _, svc := range services {
		keys = append(keys, model.PageKey{Type: model.PageTypeService, ServiceID: svc.ID})
	}
	for _, loc := range locations {
		keys = append(keys, model.PageKey{Type: model.PageTypeLocation, LocationID: loc.ID})
	}
	for _, svc := range services {
		for _, loc := range locations {
			keys = append(keys, model.PageKey{
				Type:       model.PageTypeServiceLocation,
				ServiceID:  svc.ID,
				LocationID: loc.ID,
			})
		}
	}
	for _, svc := range emergency {
		for _, loc := range locations {
			keys = append(keys, model.PageKey{
				Type:       model.PageTypeEmergency,
				ServiceID:  svc.ID,
				LocationID: loc.ID,
			})
		}
	}
	return keys
}
