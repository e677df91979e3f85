// Package store provides persistence for businesses, their service and
// location catalogs, and cached page collections. Two implementations
// exist: SQLite for local single-binary use and Postgres for shared
// deployments.
package store

import (
	"context"
	"time"

	"github.com/tradelift/seogen/internal/model"
)

// Store defines the persistence interface for the page generation engine.
type Store interface {
	// Businesses
	UpsertBusiness(ctx context.Context, b model.Business) error
	GetBusiness(ctx context.Context, businessID string) (*model.Business, error)
	ListBusinesses(ctx context.Context) ([]model.Business, error)

	// Catalog. Replace operations swap the full set for a business in one
	// transaction, preserving the given slice order for later listing.
	ReplaceServices(ctx context.Context, businessID string, services []model.Service) error
	ListServices(ctx context.Context, businessID string) ([]model.Service, error)
	ReplaceLocations(ctx context.Context, businessID string, locations []model.Location) error
	ListLocations(ctx context.Context, businessID string) ([]model.Location, error)

	// Page cache
	GetCachedCollection(ctx context.Context, businessID string) (*model.ArtifactCollection, error)
	SetCachedCollection(ctx context.Context, collection *model.ArtifactCollection, ttl time.Duration) error
	DeleteExpiredCollections(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
