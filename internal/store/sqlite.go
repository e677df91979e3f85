package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/tradelift/seogen/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Expiry columns hold unix seconds rather than DATETIME text so the
// comparison is independent of how the driver formats time values.
const sqliteMigration = `
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
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS services (
	business_id TEXT NOT NULL REFERENCES businesses(id),
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	emergency   INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (business_id, id)
);

CREATE TABLE IF NOT EXISTS locations (
	business_id      TEXT NOT NULL REFERENCES businesses(id),
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
	collection   TEXT NOT NULL,
	generated_at INTEGER NOT NULL,
	expires_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_services_business ON services(business_id, position);
CREATE INDEX IF NOT EXISTS idx_locations_business ON locations(business_id, position);
CREATE INDEX IF NOT EXISTS idx_page_cache_expires ON page_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertBusiness(ctx context.Context, b model.Business) error {
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO businesses (id, name, domain, phone, email, street, city, state, zip_code, description, founded_year, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, domain = excluded.domain, phone = excluded.phone,
			email = excluded.email, street = excluded.street, city = excluded.city,
			state = excluded.state, zip_code = excluded.zip_code,
			description = excluded.description, founded_year = excluded.founded_year,
			updated_at = excluded.updated_at`,
		b.ID, b.Name, b.Domain, b.Phone, b.Email, b.Street, b.City, b.State,
		b.ZipCode, b.Description, b.FoundedYear, now, now,
	)
	return eris.Wrapf(err, "sqlite: upsert business %s", b.ID)
}

func (s *SQLiteStore) GetBusiness(ctx context.Context, businessID string) (*model.Business, error) {
	var b model.Business
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year
		 FROM businesses WHERE id = ?`,
		businessID,
	).Scan(&b.ID, &b.Name, &b.Domain, &b.Phone, &b.Email, &b.Street, &b.City,
		&b.State, &b.ZipCode, &b.Description, &b.FoundedYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get business %s", businessID)
	}
	return &b, nil
}

func (s *SQLiteStore) ListBusinesses(ctx context.Context) ([]model.Business, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, domain, phone, email, street, city, state, zip_code, description, founded_year
		 FROM businesses ORDER BY name, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list businesses")
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		var b model.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Domain, &b.Phone, &b.Email, &b.Street,
			&b.City, &b.State, &b.ZipCode, &b.Description, &b.FoundedYear); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan business")
		}
		businesses = append(businesses, b)
	}
	return businesses, eris.Wrap(rows.Err(), "sqlite: list businesses iterate")
}

func (s *SQLiteStore) ReplaceServices(ctx context.Context, businessID string, services []model.Service) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace services")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM services WHERE business_id = ?`, businessID); err != nil {
		return eris.Wrapf(err, "sqlite: delete services for %s", businessID)
	}
	for i, svc := range services {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO services (business_id, id, name, emergency, position) VALUES (?, ?, ?, ?, ?)`,
			businessID, svc.ID, svc.Name, svc.Emergency, i,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert service %s", svc.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit replace services")
}

func (s *SQLiteStore) ListServices(ctx context.Context, businessID string) ([]model.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, emergency FROM services WHERE business_id = ? ORDER BY position`,
		businessID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list services for %s", businessID)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Emergency); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan service")
		}
		services = append(services, svc)
	}
	return services, eris.Wrap(rows.Err(), "sqlite: list services iterate")
}

func (s *SQLiteStore) ReplaceLocations(ctx context.Context, businessID string, locations []model.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace locations")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE business_id = ?`, businessID); err != nil {
		return eris.Wrapf(err, "sqlite: delete locations for %s", businessID)
	}
	for i, loc := range locations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO locations (business_id, id, city, state, monthly_searches, position) VALUES (?, ?, ?, ?, ?, ?)`,
			businessID, loc.ID, loc.City, loc.State, loc.MonthlySearches, i,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert location %s", loc.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit replace locations")
}

func (s *SQLiteStore) ListLocations(ctx context.Context, businessID string) ([]model.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, state, monthly_searches FROM locations WHERE business_id = ? ORDER BY position`,
		businessID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list locations for %s", businessID)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.City, &loc.State, &loc.MonthlySearches); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan location")
		}
		locations = append(locations, loc)
	}
	return locations, eris.Wrap(rows.Err(), "sqlite: list locations iterate")
}

func (s *SQLiteStore) GetCachedCollection(ctx context.Context, businessID string) (*model.ArtifactCollection, error) {
	var collectionJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT collection FROM page_cache WHERE business_id = ? AND expires_at > ?`,
		businessID, time.Now().UTC().Unix(),
	).Scan(&collectionJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get cached collection for %s", businessID)
	}

	var collection model.ArtifactCollection
	if err := json.Unmarshal(collectionJSON, &collection); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal cached collection")
	}
	return &collection, nil
}

func (s *SQLiteStore) SetCachedCollection(ctx context.Context, collection *model.ArtifactCollection, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()

	collectionJSON, err := json.Marshal(collection)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal collection")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO page_cache (id, business_id, collection, generated_at, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(business_id) DO UPDATE SET
			collection = excluded.collection, generated_at = excluded.generated_at, expires_at = excluded.expires_at`,
		id, collection.BusinessID, string(collectionJSON), now.Unix(), now.Add(ttl).Unix(),
	)
	return eris.Wrapf(err, "sqlite: set cached collection for %s", collection.BusinessID)
}

func (s *SQLiteStore) DeleteExpiredCollections(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM page_cache WHERE expires_at <= ?`, time.Now().UTC().Unix(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired collections")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}
