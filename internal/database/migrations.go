package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the idempotent DDL for the four billing tables plus the
// operator accounts. bill_items cascades with its bill; medicine and
// customer references are nulled out on delete so historical bills
// stay readable after the referenced record is gone.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medicines (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL CHECK (stock >= 0),
		expiry_date DATE NOT NULL,
		category TEXT,
		manufacturer TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		visit_count INTEGER NOT NULL DEFAULT 0 CHECK (visit_count >= 0),
		total_spent NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (total_spent >= 0),
		last_visit TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		customer_id UUID REFERENCES customers(id) ON DELETE SET NULL,
		customer_name TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount_amount >= 0),
		total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bill_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		bill_id UUID NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
		medicine_id UUID REFERENCES medicines(id) ON DELETE SET NULL,
		medicine_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}

	return nil
}
