package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func InitialiseDB(ctx context.Context, db *sqlx.DB) error {
	if err := CreateBookingsTable(ctx, db); err != nil {
		return fmt.Errorf("creating bookings table: %w", err)
	}

	if err := CreateRatingsTable(ctx, db); err != nil {
		return fmt.Errorf("creating ratings table: %w", err)
	}

	return nil
}

func CreateBookingsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(50) NOT NULL,
		state VARCHAR(100) NOT NULL,
		package_name VARCHAR(255) NOT NULL,
		package_price NUMERIC(10, 2) NOT NULL CHECK (package_price >= 0),
		payment_method VARCHAR(255) NOT NULL,
		payment_status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (payment_status IN ('pending', 'paid', 'failed')),
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`)
	return err
}

func CreateRatingsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS ratings (
		id BIGSERIAL PRIMARY KEY,
		package_name VARCHAR(255) NOT NULL,
		state VARCHAR(100) NOT NULL,
		rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		source_identifier VARCHAR(64) NOT NULL,
		submitter_agent TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`)
	if err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_ratings_package ON ratings (package_name, state)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_source ON ratings (package_name, state, source_identifier, created_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("creating ratings index: %w", err)
		}
	}

	return nil
}
