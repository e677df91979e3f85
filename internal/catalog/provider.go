// Package catalog supplies the business profiles and service/location
// catalogs that drive page generation. Catalogs come from the store, from
// JSON fixture files, or from XLSX imports.
package catalog

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/store"
)

// Provider resolves a business and its catalog by business ID. A nil
// business with a nil error means the business is unknown.
type Provider interface {
	Business(ctx context.Context, businessID string) (*model.Business, error)
	Catalog(ctx context.Context, businessID string) (*model.Catalog, error)
}

// StoreProvider reads businesses and catalogs from the persistence layer.
type StoreProvider struct {
	st store.Store
}

func NewStoreProvider(st store.Store) *StoreProvider {
	return &StoreProvider{st: st}
}

func (p *StoreProvider) Business(ctx context.Context, businessID string) (*model.Business, error) {
	return p.st.GetBusiness(ctx, businessID)
}

func (p *StoreProvider) Catalog(ctx context.Context, businessID string) (*model.Catalog, error) {
	services, err := p.st.ListServices(ctx, businessID)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load services for %s", businessID)
	}
	locations, err := p.st.ListLocations(ctx, businessID)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load locations for %s", businessID)
	}
	return &model.Catalog{Services: services, Locations: locations}, nil
}
