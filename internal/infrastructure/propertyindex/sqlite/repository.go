// Package sqlite provides a SQLite implementation of the property index.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/infrastructure/config"
)

// meterDegreeLat is the approximate length of one degree of latitude.
const meterDegreeLat = 111320.0

// Repository implements ports.PropertyIndex and ports.PropertyWriter
// using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// Init creates the database schema if it doesn't exist.
func (r *Repository) Init(ctx context.Context) error {
	schema := `
	-- Geocoded properties (the duplicate-check corpus)
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_properties_lat ON properties(lat);
	CREATE INDEX IF NOT EXISTS idx_properties_lon ON properties(lon);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Upsert stores the given properties, generating IDs where missing.
func (r *Repository) Upsert(ctx context.Context, props []entities.ExistingProperty) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO properties (id, name, lat, lon) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, lat = excluded.lat, lon = excluded.lon`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range props {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, id, p.Name, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("upserting property %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}

	return nil
}

// Count returns the number of indexed properties.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting properties: %w", err)
	}
	return count, nil
}

// FindPropertiesNear returns the properties within radiusMeters of the
// given coordinates. A bounding box narrows the scan; the exact haversine
// distance decides membership.
func (r *Repository) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	dLat := radiusMeters / meterDegreeLat
	dLon := radiusMeters / (meterDegreeLat * math.Cos(lat*math.Pi/180))
	if math.IsInf(dLon, 0) || math.IsNaN(dLon) {
		// Degenerate at the poles: fall back to a full longitude span.
		dLon = 180
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, lat, lon FROM properties
		WHERE lat BETWEEN ? AND ? AND lon BETWEEN ? AND ?`,
		lat-dLat, lat+dLat, lon-math.Abs(dLon), lon+math.Abs(dLon))
	if err != nil {
		return nil, &entities.GeoLookupError{Provider: "sqlite", Err: err}
	}
	defer rows.Close()

	center := entities.Location{Lat: lat, Lon: lon}
	var props []entities.ExistingProperty

	for rows.Next() {
		var p entities.ExistingProperty
		if err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lon); err != nil {
			return nil, &entities.GeoLookupError{Provider: "sqlite", Err: err}
		}
		if center.DistanceMeters(p.Position()) <= radiusMeters {
			props = append(props, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &entities.GeoLookupError{Provider: "sqlite", Err: err}
	}

	return props, nil
}
