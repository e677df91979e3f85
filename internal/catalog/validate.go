package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/tradelift/seogen/internal/model"
)

// ValidateBusiness checks the fields page generation cannot do without.
func ValidateBusiness(b model.Business) error {
	if b.ID == "" {
		return eris.New("catalog: business id is required")
	}
	if b.Name == "" {
		return eris.Errorf("catalog: business %s: name is required", b.ID)
	}
	return nil
}

// ValidateServices checks that every service has an ID and name and that
// IDs are unique. IDs become URL path segments, so duplicates would make
// two pages claim the same URL.
func ValidateServices(services []model.Service) error {
	seen := make(map[string]bool, len(services))
	for i, svc := range services {
		if svc.ID == "" {
			return eris.Errorf("catalog: service %d: id is required", i)
		}
		if svc.Name == "" {
			return eris.Errorf("catalog: service %s: name is required", svc.ID)
		}
		if seen[svc.ID] {
			return eris.Errorf("catalog: duplicate service id %s", svc.ID)
		}
		seen[svc.ID] = true
	}
	return nil
}

// ValidateLocations checks location IDs, required fields, and that search
// volumes are not negative.
func ValidateLocations(locations []model.Location) error {
	seen := make(map[string]bool, len(locations))
	for i, loc := range locations {
		if loc.ID == "" {
			return eris.Errorf("catalog: location %d: id is required", i)
		}
		if loc.City == "" || loc.State == "" {
			return eris.Errorf("catalog: location %s: city and state are required", loc.ID)
		}
		if loc.MonthlySearches < 0 {
			return eris.Errorf("catalog: location %s: monthly searches cannot be negative", loc.ID)
		}
		if seen[loc.ID] {
			return eris.Errorf("catalog: duplicate location id %s", loc.ID)
		}
		seen[loc.ID] = true
	}
	return nil
}

// ValidateCatalog validates both sides of a catalog.
func ValidateCatalog(c model.Catalog) error {
	if err := ValidateServices(c.Services); err != nil {
		return err
	}
	return ValidateLocations(c.Locations)
}
