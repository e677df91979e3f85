package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelift/seogen/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetBusiness_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year FROM businesses WHERE id = \$1`).
		WithArgs("ghost-biz").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetBusiness(context.Background(), "ghost-biz")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetBusiness_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year FROM businesses WHERE id = \$1`).
		WithArgs("biz-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "domain", "phone", "email", "street", "city", "state", "zip_code", "description", "founded_year",
		}).AddRow(
			"biz-1", "Summit Plumbing", "summitplumbing.example.com", "(303) 555-0142", "office@summitplumbing.example.com",
			"4125 Wadsworth Blvd", "Denver", "CO", "80033", "Family-owned plumbing company.", 1998,
		))

	got, err := s.GetBusiness(context.Background(), "biz-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Summit Plumbing", got.Name)
	assert.Equal(t, 1998, got.FoundedYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertBusiness(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO businesses`).
		WithArgs("biz-1", "Summit Plumbing", "summitplumbing.example.com", "(303) 555-0142",
			"office@summitplumbing.example.com", "4125 Wadsworth Blvd", "Denver", "CO", "80033",
			"Family-owned plumbing company serving the Denver metro.", 1998, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.UpsertBusiness(context.Background(), testBusiness())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceServices_Transaction(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM services WHERE business_id = \$1`).
		WithArgs("biz-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO services`).
		WithArgs("biz-1", "drain-cleaning", "Drain Cleaning", false, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO services`).
		WithArgs("biz-1", "burst-pipe-repair", "Burst Pipe Repair", true, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.ReplaceServices(context.Background(), "biz-1", []model.Service{
		{ID: "drain-cleaning", Name: "Drain Cleaning"},
		{ID: "burst-pipe-repair", Name: "Burst Pipe Repair", Emergency: true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceServices_RollbackOnError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM services WHERE business_id = \$1`).
		WithArgs("biz-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO services`).
		WithArgs("biz-1", "drain-cleaning", "Drain Cleaning", false, 0).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := s.ReplaceServices(context.Background(), "biz-1", []model.Service{
		{ID: "drain-cleaning", Name: "Drain Cleaning"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert service drain-cleaning")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceLocations_Transaction(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM locations WHERE business_id = \$1`).
		WithArgs("biz-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO locations`).
		WithArgs("biz-1", "denver-co", "Denver", "CO", 2400, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.ReplaceLocations(context.Background(), "biz-1", []model.Location{
		{ID: "denver-co", City: "Denver", State: "CO", MonthlySearches: 2400},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListServices(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, emergency FROM services WHERE business_id = \$1 ORDER BY position`).
		WithArgs("biz-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "emergency"}).
			AddRow("drain-cleaning", "Drain Cleaning", false).
			AddRow("burst-pipe-repair", "Burst Pipe Repair", true))

	got, err := s.ListServices(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "drain-cleaning", got[0].ID)
	assert.True(t, got[1].Emergency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCachedCollection_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT collection FROM page_cache`).
		WithArgs("unknown-biz").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetCachedCollection(context.Background(), "unknown-biz")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCachedCollection_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	collectionJSON, err := json.Marshal(testCollection("biz-1"))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT collection FROM page_cache`).
		WithArgs("biz-1").
		WillReturnRows(pgxmock.NewRows([]string{"collection"}).AddRow(collectionJSON))

	got, err := s.GetCachedCollection(context.Background(), "biz-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "biz-1", got.BusinessID)
	assert.Equal(t, 1, got.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetCachedCollection(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO page_cache`).
		WithArgs(pgxmock.AnyArg(), "biz-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SetCachedCollection(context.Background(), testCollection("biz-1"), 15*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteExpiredCollections(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM page_cache WHERE expires_at <= now\(\)`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.DeleteExpiredCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
