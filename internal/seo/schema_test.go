package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelift/seogen/internal/model"
)

func TestBuildSchema_ServicePage(t *testing.T) {
	t.Parallel()

	svc := model.Service{ID: "drain-cleaning", Name: "Drain Cleaning"}
	key := model.PageKey{Type: model.PageTypeService, ServiceID: svc.ID}

	schema := BuildSchema(key, seoBusiness(), &svc, nil)
	require.NotNil(t, schema)

	assert.Equal(t, model.SchemaContext, schema.Context)
	assert.Equal(t, model.SchemaTypeService, schema.Type)
	assert.Equal(t, "Drain Cleaning", schema.Name)
	assert.Equal(t, "Drain Cleaning", schema.ServiceType)

	require.NotNil(t, schema.Provider)
	assert.Equal(t, model.SchemaTypeLocalBusiness, schema.Provider.Type)
	assert.Equal(t, "Summit Plumbing", schema.Provider.Name)
	assert.Equal(t, "https://summitplumbing.example.com", schema.Provider.URL)
	assert.Nil(t, schema.AreaServed)
}

func TestBuildSchema_LocationPage(t *testing.T) {
	t.Parallel()

	loc := model.Location{ID: "denver-co", City: "Denver", State: "CO"}
	key := model.PageKey{Type: model.PageTypeLocation, LocationID: loc.ID}

	schema := BuildSchema(key, seoBusiness(), nil, &loc)
	require.NotNil(t, schema)

	assert.Equal(t, model.SchemaTypeLocalBusiness, schema.Type)
	assert.Equal(t, "Summit Plumbing", schema.Name)
	assert.Equal(t, "(303) 555-0142", schema.Telephone)

	require.NotNil(t, schema.Address)
	assert.Equal(t, "1200 Osage St", schema.Address.StreetAddress)
	assert.Equal(t, "Denver", schema.Address.AddressLocality)
	assert.Equal(t, "CO", schema.Address.AddressRegion)

	require.NotNil(t, schema.AreaServed)
	assert.Equal(t, model.SchemaTypeCity, schema.AreaServed.Type)
	assert.Equal(t, "Denver", schema.AreaServed.Name)
	require.NotNil(t, schema.AreaServed.ContainedInPlace)
	assert.Equal(t, model.SchemaTypeState, schema.AreaServed.ContainedInPlace.Type)
}

func TestBuildSchema_ServiceLocationPage(t *testing.T) {
	t.Parallel()

	svc := model.Service{ID: "drain-cleaning", Name: "Drain Cleaning"}
	loc := model.Location{ID: "denver-co", City: "Denver", State: "CO"}
	key := model.PageKey{Type: model.PageTypeServiceLocation, ServiceID: svc.ID, LocationID: loc.ID}

	schema := BuildSchema(key, seoBusiness(), &svc, &loc)
	require.NotNil(t, schema)

	assert.Equal(t, model.SchemaTypeService, schema.Type)
	assert.Equal(t, "Drain Cleaning in Denver, CO", schema.Name)
	require.NotNil(t, schema.Provider)
	require.NotNil(t, schema.AreaServed)
	assert.Equal(t, "Denver", schema.AreaServed.Name)
}

func TestBuildSchema_EmergencyPage(t *testing.T) {
	t.Parallel()

	svc := model.Service{ID: "burst-pipe-repair", Name: "Burst Pipe Repair", Emergency: true}
	loc := model.Location{ID: "denver-co", City: "Denver", State: "CO"}
	key := model.PageKey{Type: model.PageTypeEmergency, ServiceID: svc.ID, LocationID: loc.ID}

	schema := BuildSchema(key, seoBusiness(), &svc, &loc)
	require.NotNil(t, schema)

	assert.Equal(t, model.SchemaTypeEmergencyService, schema.Type)
	assert.Equal(t, "Burst Pipe Repair", schema.ServiceType)

	require.NotNil(t, schema.AvailableAtOrFrom)
	assert.Equal(t, model.SchemaTypePlace, schema.AvailableAtOrFrom.Type)
	assert.Equal(t, "Denver, CO", schema.AvailableAtOrFrom.Name)

	require.Len(t, schema.HoursAvailable, 1)
	hours := schema.HoursAvailable[0]
	assert.Equal(t, "OpeningHoursSpecification", hours.Type)
	assert.Len(t, hours.DayOfWeek, 7)
	assert.Equal(t, "00:00", hours.Opens)
	assert.Equal(t, "23:59", hours.Closes)
}

func TestBuildSchema_JSONShape(t *testing.T) {
	t.Parallel()

	svc := model.Service{ID: "drain-cleaning", Name: "Drain Cleaning"}
	key := model.PageKey{Type: model.PageTypeService, ServiceID: svc.ID}

	data, err := json.Marshal(BuildSchema(key, seoBusiness(), &svc, nil))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"@context":"https://schema.org"`)
	assert.Contains(t, string(data), `"@type":"Service"`)
	// Nested nodes carry @type but never repeat @context.
	assert.Equal(t, 1, strings.Count(string(data), "@context"))
}

func TestBuildSchema_MinimalBusiness(t *testing.T) {
	t.Parallel()

	business := model.Business{ID: "biz-2", Name: "Bare Minimum Services", Phone: "(512) 555-0100"}
	loc := model.Location{ID: "austin-tx", City: "Austin", State: "TX"}
	key := model.PageKey{Type: model.PageTypeLocation, LocationID: loc.ID}

	schema := BuildSchema(key, business, nil, &loc)
	require.NotNil(t, schema)
	assert.Empty(t, schema.URL)
	assert.Nil(t, schema.Address)
}
