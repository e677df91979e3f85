package seo

import (
	"fmt"
	"strings"

	"github.com/tradelift/seogen/internal/model"
)

// BuildSchema produces the JSON-LD node for a page. Service-bearing pages
// emit a Service (or EmergencyService) with the business as provider;
// location pages emit the LocalBusiness itself scoped to the served city.
func BuildSchema(key model.PageKey, b model.Business, svc *model.Service, loc *model.Location) *model.Schema {
	switch key.Type {
	case model.PageTypeService:
		return &model.Schema{
			Context:     model.SchemaContext,
			Type:        model.SchemaTypeService,
			Name:        svc.Name,
			ServiceType: svc.Name,
			Description: fmt.Sprintf("Professional %s services from %s.", strings.ToLower(svc.Name), b.Name),
			Provider:    providerNode(b),
		}

	case model.PageTypeLocation:
		return &model.Schema{
			Context:    model.SchemaContext,
			Type:       model.SchemaTypeLocalBusiness,
			Name:       b.Name,
			Telephone:  b.Phone,
			Email:      b.Email,
			URL:        businessURL(b),
			Address:    businessAddress(b),
			AreaServed: cityNode(loc),
		}

	case model.PageTypeServiceLocation:
		return &model.Schema{
			Context:     model.SchemaContext,
			Type:        model.SchemaTypeService,
			Name:        fmt.Sprintf("%s in %s, %s", svc.Name, loc.City, loc.State),
			ServiceType: svc.Name,
			Description: fmt.Sprintf("Professional %s for %s, %s homeowners from %s.", strings.ToLower(svc.Name), loc.City, loc.State, b.Name),
			Provider:    providerNode(b),
			AreaServed:  cityNode(loc),
		}

	case model.PageTypeEmergency:
		return &model.Schema{
			Context:     model.SchemaContext,
			Type:        model.SchemaTypeEmergencyService,
			Name:        fmt.Sprintf("24/7 Emergency %s in %s, %s", svc.Name, loc.City, loc.State),
			ServiceType: svc.Name,
			Description: fmt.Sprintf("Emergency %s in %s, %s, available 24 hours a day from %s.", strings.ToLower(svc.Name), loc.City, loc.State, b.Name),
			Provider:    providerNode(b),
			AreaServed:  cityNode(loc),
			AvailableAtOrFrom: &model.Schema{
				Type: model.SchemaTypePlace,
				Name: fmt.Sprintf("%s, %s", loc.City, loc.State),
			},
			HoursAvailable: []model.OpeningHoursSpec{{
				Type:      "OpeningHoursSpecification",
				DayOfWeek: model.AllWeek,
				Opens:     "00:00",
				Closes:    "23:59",
			}},
		}
	}
	return nil
}

func providerNode(b model.Business) *model.Schema {
	return &model.Schema{
		Type:      model.SchemaTypeLocalBusiness,
		Name:      b.Name,
		Telephone: b.Phone,
		URL:       businessURL(b),
	}
}

func cityNode(loc *model.Location) *model.Schema {
	return &model.Schema{
		Type: model.SchemaTypeCity,
		Name: loc.City,
		ContainedInPlace: &model.Schema{
			Type: model.SchemaTypeState,
			Name: loc.State,
		},
	}
}

func businessAddress(b model.Business) *model.PostalAddress {
	if b.Street == "" && b.City == "" && b.ZipCode == "" {
		return nil
	}
	return &model.PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   b.Street,
		AddressLocality: b.City,
		AddressRegion:   b.State,
		PostalCode:      b.ZipCode,
		AddressCountry:  "US",
	}
}

func businessURL(b model.Business) string {
	if b.Domain == "" {
		return ""
	}
	if strings.HasPrefix(b.Domain, "http://") || strings.HasPrefix(b.Domain, "https://") {
		return b.Domain
	}
	return "https://" + b.Domain
}
