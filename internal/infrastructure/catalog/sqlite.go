package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/daniel-soulful/giftly-new/internal/domain"
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed local fallback catalog. It is read-mostly:
// the selection pipeline only lists products, while seeding happens at
// deploy time. Concurrent readers are safe.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		price_nok INTEGER,
		merchant_name TEXT,
		tags TEXT,
		external_url TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_products_price ON products(price_nok);
	CREATE INDEX IF NOT EXISTS idx_products_merchant ON products(merchant_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ListProducts returns every catalog row as a raw record. No filtering
// happens here; the selection pipeline normalizes and gates the rows.
func (s *Store) ListProducts(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, image_url, price_nok, merchant_name, tags, external_url
		 FROM products ORDER BY merchant_name, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RawRecord
	for rows.Next() {
		var (
			id       int64
			name     string
			desc     sql.NullString
			image    sql.NullString
			price    sql.NullInt64
			merchant sql.NullString
			tags     sql.NullString
			extURL   sql.NullString
		)
		if err := rows.Scan(&id, &name, &desc, &image, &price, &merchant, &tags, &extURL); err != nil {
			return nil, err
		}
		records = append(records, domain.RawRecord{
			"id":            fmt.Sprintf("catalog-%d", id),
			"name":          name,
			"description":   desc.String,
			"image_url":     image.String,
			"price_nok":     price.Int64,
			"merchant_name": merchant.String,
			"tags":          tags.String,
			"external_url":  extURL.String,
		})
	}
	return records, rows.Err()
}

// Product is one seedable catalog entry
type Product struct {
	Name         string
	Description  string
	ImageURL     string
	PriceNOK     int
	MerchantName string
	Tags         string // comma-separated lowercase keywords
	ExternalURL  string
}

// Seed inserts products into the catalog, used by deploy scripts and tests
func (s *Store) Seed(ctx context.Context, products []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (name, description, image_url, price_nok, merchant_name, tags, external_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Description, p.ImageURL, p.PriceNOK, p.MerchantName, p.Tags, p.ExternalURL); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}
