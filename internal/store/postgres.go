package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/tradelift/seogen/internal/db"
	"github.com/tradelift/seogen/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot serve-path operations.
var preparedStatements = map[string]string{
	"get_business":          `SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year FROM businesses WHERE id = $1`,
	"list_services":         `SELECT id, name, emergency FROM services WHERE business_id = $1 ORDER BY position`,
	"list_locations":        `SELECT id, city, state, monthly_searches FROM locations WHERE business_id = $1 ORDER BY position`,
	"get_cached_collection": `SELECT collection FROM page_cache WHERE business_id = $1 AND expires_at > now()`,
	"set_cached_collection": `INSERT INTO page_cache (id, business_id, collection, generated_at, expires_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (business_id) DO UPDATE SET collection = $3, generated_at = $4, expires_at = $5`,
	"delete_expired_pages":  `DELETE FROM page_cache WHERE expires_at <= now()`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need
// direct query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS businesses (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	domain       TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	street       TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	zip_code     TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	founded_year INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS services (
	business_id TEXT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	emergency   BOOLEAN NOT NULL DEFAULT false,
	position    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (business_id, id)
);

CREATE TABLE IF NOT EXISTS locations (
	business_id      TEXT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
	id               TEXT NOT NULL,
	city             TEXT NOT NULL,
	state            TEXT NOT NULL,
	monthly_searches INTEGER NOT NULL DEFAULT 0,
	position         INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (business_id, id)
);

CREATE TABLE IF NOT EXISTS page_cache (
	id           TEXT PRIMARY KEY,
	business_id  TEXT NOT NULL UNIQUE,
	collection   JSONB NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_services_business ON services(business_id, position);
CREATE INDEX IF NOT EXISTS idx_locations_business ON locations(business_id, position);
CREATE INDEX IF NOT EXISTS idx_page_cache_expires ON page_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) UpsertBusiness(ctx context.Context, b model.Business) error {
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO businesses (id, name, domain, phone, email, street, city, state, zip_code, description, founded_year, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		 ON CONFLICT (id) DO UPDATE SET
			name = $2, domain = $3, phone = $4, email = $5, street = $6, city = $7,
			state = $8, zip_code = $9, description = $10, founded_year = $11, updated_at = $12`,
		b.ID, b.Name, b.Domain, b.Phone, b.Email, b.Street, b.City, b.State,
		b.ZipCode, b.Description, b.FoundedYear, now,
	)
	return eris.Wrapf(err, "postgres: upsert business %s", b.ID)
}

func (s *PostgresStore) GetBusiness(ctx context.Context, businessID string) (*model.Business, error) {
	var b model.Business
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year FROM businesses WHERE id = $1`,
		businessID,
	).Scan(&b.ID, &b.Name, &b.Domain, &b.Phone, &b.Email, &b.Street, &b.City,
		&b.State, &b.ZipCode, &b.Description, &b.FoundedYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get business %s", businessID)
	}
	return &b, nil
}

func (s *PostgresStore) ListBusinesses(ctx context.Context) ([]model.Business, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year FROM businesses ORDER BY name, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list businesses")
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		var b model.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Domain, &b.Phone, &b.Email, &b.Street,
			&b.City, &b.State, &b.ZipCode, &b.Description, &b.FoundedYear); err != nil {
			return nil, eris.Wrap(err, "postgres: scan business")
		}
		businesses = append(businesses, b)
	}
	return businesses, eris.Wrap(rows.Err(), "postgres: list businesses iterate")
}

func (s *PostgresStore) ReplaceServices(ctx context.Context, businessID string, services []model.Service) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace services")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM services WHERE business_id = $1`, businessID); err != nil {
		return eris.Wrapf(err, "postgres: delete services for %s", businessID)
	}
	for i, svc := range services {
		if _, err := tx.Exec(ctx,
			`INSERT INTO services (business_id, id, name, emergency, position) VALUES ($1, $2, $3, $4, $5)`,
			businessID, svc.ID, svc.Name, svc.Emergency, i,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert service %s", svc.ID)
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace services")
}

func (s *PostgresStore) ListServices(ctx context.Context, businessID string) ([]model.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, emergency FROM services WHERE business_id = $1 ORDER BY position`,
		businessID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list services for %s", businessID)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Emergency); err != nil {
			return nil, eris.Wrap(err, "postgres: scan service")
		}
		services = append(services, svc)
	}
	return services, eris.Wrap(rows.Err(), "postgres: list services iterate")
}

func (s *PostgresStore) ReplaceLocations(ctx context.Context, businessID string, locations []model.Location) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace locations")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM locations WHERE business_id = $1`, businessID); err != nil {
		return eris.Wrapf(err, "postgres: delete locations for %s", businessID)
	}
	for i, loc := range locations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO locations (business_id, id, city, state, monthly_searches, position) VALUES ($1, $2, $3, $4, $5, $6)`,
			businessID, loc.ID, loc.City, loc.State, loc.MonthlySearches, i,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert location %s", loc.ID)
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace locations")
}

func (s *PostgresStore) ListLocations(ctx context.Context, businessID string) ([]model.Location, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, city, state, monthly_searches FROM locations WHERE business_id = $1 ORDER BY position`,
		businessID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list locations for %s", businessID)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.City, &loc.State, &loc.MonthlySearches); err != nil {
			return nil, eris.Wrap(err, "postgres: scan location")
		}
		locations = append(locations, loc)
	}
	return locations, eris.Wrap(rows.Err(), "postgres: list locations iterate")
}

func (s *PostgresStore) GetCachedCollection(ctx context.Context, businessID string) (*model.ArtifactCollection, error) {
	var collectionJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT collection FROM page_cache WHERE business_id = $1 AND expires_at > now()`,
		businessID,
	).Scan(&collectionJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get cached collection for %s", businessID)
	}

	var collection model.ArtifactCollection
	if err := json.Unmarshal(collectionJSON, &collection); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal cached collection")
	}
	return &collection, nil
}

func (s *PostgresStore) SetCachedCollection(ctx context.Context, collection *model.ArtifactCollection, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()

	collectionJSON, err := json.Marshal(collection)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal collection")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO page_cache (id, business_id, collection, generated_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (business_id) DO UPDATE SET collection = $3, generated_at = $4, expires_at = $5`,
		id, collection.BusinessID, collectionJSON, now, now.Add(ttl),
	)
	return eris.Wrapf(err, "postgres: set cached collection for %s", collection.BusinessID)
}

func (s *PostgresStore) DeleteExpiredCollections(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM page_cache WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired collections")
	}
	return int(tag.RowsAffected()), nil
}
