package catalog

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/tradelift/seogen/internal/model"
)

// LoadBusinessFromFile reads a model.Business from a JSON fixture.
func LoadBusinessFromFile(path string) (*model.Business, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read business fixture")
	}

	var b model.Business
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal business fixture")
	}
	if err := ValidateBusiness(b); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadServicesFromFile reads a JSON array of model.Service from the given path.
func LoadServicesFromFile(path string) ([]model.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read services fixture")
	}

	var services []model.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal services fixture")
	}
	if err := ValidateServices(services); err != nil {
		return nil, err
	}
	return services, nil
}

// LoadLocationsFromFile reads a JSON array of model.Location from the given path.
func LoadLocationsFromFile(path string) ([]model.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read locations fixture")
	}

	var locations []model.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal locations fixture")
	}
	if err := ValidateLocations(locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// FileProvider serves a single business and its catalog from JSON fixtures,
// letting generation run without a database.
type FileProvider struct {
	business model.Business
	catalog  model.Catalog
}

// NewFileProvider loads and validates the three fixture files. The services
// and locations paths may be empty, leaving that side of the catalog empty.
func NewFileProvider(businessPath, servicesPath, locationsPath string) (*FileProvider, error) {
	b, err := LoadBusinessFromFile(businessPath)
	if err != nil {
		return nil, err
	}

	p := &FileProvider{business: *b}
	if servicesPath != "" {
		if p.catalog.Services, err = LoadServicesFromFile(servicesPath); err != nil {
			return nil, err
		}
	}
	if locationsPath != "" {
		if p.catalog.Locations, err = LoadLocationsFromFile(locationsPath); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *FileProvider) Business(ctx context.Context, businessID string) (*model.Business, error) {
	if businessID != "" && businessID != p.business.ID {
		return nil, nil
	}
	b := p.business
	return &b, nil
}

func (p *FileProvider) Catalog(ctx context.Context, businessID string) (*model.Catalog, error) {
	if businessID != "" && businessID != p.business.ID {
		return &model.Catalog{}, nil
	}
	c := p.catalog
	return &c, nil
}
