package database

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	DB         *sqlx.DB
	SqlBuilder sq.StatementBuilderType
}

func New(URL string) (*PostgresDB, func(), error) {
	db, cleanup, err := initDB(URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	pgDB := &PostgresDB{
		DB:         db,
		SqlBuilder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	if err := pgDB.ensureSchema(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return pgDB, cleanup, nil
}

func initDB(URL string) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open("postgres", URL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}
	db.Mapper = reflectx.NewMapper("json")

	return db, cleanup, nil
}

// ensureSchema creates the application tables on startup. The unique indexes
// on email and id_number back the application-level uniqueness guard, and the
// seeded sequence row backs atomic membership-number issuance.
func (p *PostgresDB) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS membership_applications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			id_number TEXT NOT NULL,
			county TEXT NOT NULL,
			constituency TEXT,
			ward TEXT,
			message TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			review_notes TEXT,
			reviewed_by UUID,
			reviewed_at TIMESTAMPTZ,
			membership_number TEXT,
			expiry_date TIMESTAMPTZ,
			last_payment_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS membership_applications_email_idx
			ON membership_applications (email) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS membership_applications_id_number_idx
			ON membership_applications (id_number) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS membership_applications_number_idx
			ON membership_applications (membership_number) WHERE membership_number IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS membership_applications_status_idx
			ON membership_applications (status)`,
		`CREATE INDEX IF NOT EXISTS membership_applications_county_idx
			ON membership_applications (county)`,
		`CREATE TABLE IF NOT EXISTS membership_sequences (
			name TEXT PRIMARY KEY,
			value BIGINT NOT NULL DEFAULT 0
		)`,
		`INSERT INTO membership_sequences (name, value) VALUES ('membership_number', 0)
			ON CONFLICT (name) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS membership_renewals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			membership_id UUID NOT NULL REFERENCES membership_applications (id),
			reference TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			amount BIGINT NOT NULL,
			new_expiry_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS membership_resignations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reference TEXT NOT NULL,
			reason TEXT NOT NULL,
			details TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range statements {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
