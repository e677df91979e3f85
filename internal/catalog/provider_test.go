package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/store"
)

func newSeededStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.UpsertBusiness(ctx, model.Business{ID: "biz-1", Name: "Summit Plumbing"}))
	require.NoError(t, st.ReplaceServices(ctx, "biz-1", []model.Service{
		{ID: "drain-cleaning", Name: "Drain Cleaning"},
		{ID: "burst-pipe-repair", Name: "Burst Pipe Repair", Emergency: true},
	}))
	require.NoError(t, st.ReplaceLocations(ctx, "biz-1", []model.Location{
		{ID: "denver-co", City: "Denver", State: "CO", MonthlySearches: 2400},
	}))
	return st
}

func TestStoreProvider(t *testing.T) {
	p := NewStoreProvider(newSeededStore(t))
	ctx := context.Background()

	b, err := p.Business(ctx, "biz-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Summit Plumbing", b.Name)

	c, err := p.Catalog(ctx, "biz-1")
	require.NoError(t, err)
	require.Len(t, c.Services, 2)
	require.Len(t, c.Locations, 1)
	assert.True(t, c.Services[1].Emergency)

	missing, err := p.Business(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := p.Catalog(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, empty.Services)
	assert.Empty(t, empty.Locations)
}
