package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL UNIQUE,
		password_hash   TEXT NOT NULL,
		phone           TEXT NOT NULL DEFAULT '',
		role            TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		profile_image   TEXT NOT NULL DEFAULT '',
		is_verified     BOOLEAN NOT NULL DEFAULT FALSE,
		push_token      TEXT NOT NULL DEFAULT '',
		date_of_birth   TIMESTAMPTZ,
		gender          TEXT NOT NULL DEFAULT '',
		license_number  TEXT NOT NULL DEFAULT '',
		license_expiry  TIMESTAMPTZ,
		license_state   TEXT NOT NULL DEFAULT '',
		address         JSONB NOT NULL DEFAULT '{}',
		preferences     JSONB NOT NULL DEFAULT '{}',
		account_status  TEXT NOT NULL DEFAULT 'active',
		total_bookings  INTEGER NOT NULL DEFAULT 0,
		total_spent     NUMERIC(14,2) NOT NULL DEFAULT 0,
		loyalty_points  INTEGER NOT NULL DEFAULT 0,
		member_since    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL,
		brand          TEXT NOT NULL,
		model          TEXT NOT NULL,
		type           TEXT NOT NULL,
		price_per_day  NUMERIC(12,2) NOT NULL CHECK (price_per_day > 0),
		fuel_type      TEXT NOT NULL,
		transmission   TEXT NOT NULL,
		seats          INTEGER NOT NULL CHECK (seats > 0),
		images         TEXT[] NOT NULL DEFAULT '{}',
		features       TEXT[] NOT NULL DEFAULT '{}',
		rating         NUMERIC(3,2) NOT NULL DEFAULT 0,
		review_count   INTEGER NOT NULL DEFAULT 0,
		total_trips    INTEGER NOT NULL DEFAULT 0,
		is_available   BOOLEAN NOT NULL DEFAULT TRUE,
		license_plate  TEXT NOT NULL UNIQUE,
		location_lat   DOUBLE PRECISION NOT NULL DEFAULT 0,
		location_lng   DOUBLE PRECISION NOT NULL DEFAULT 0,
		location_addr  TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id              UUID PRIMARY KEY,
		user_id         UUID NOT NULL REFERENCES users(id),
		license_number  TEXT NOT NULL,
		phone           TEXT NOT NULL DEFAULT '',
		vehicle_type    TEXT NOT NULL DEFAULT '',
		is_available    BOOLEAN NOT NULL DEFAULT TRUE,
		current_lat     DOUBLE PRECISION,
		current_lng     DOUBLE PRECISION,
		rating          NUMERIC(3,2) NOT NULL DEFAULT 5.0,
		earnings        NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                UUID PRIMARY KEY,
		user_id           UUID NOT NULL REFERENCES users(id),
		car_id            UUID NOT NULL REFERENCES cars(id) ON DELETE RESTRICT,
		driver_id         UUID REFERENCES drivers(id),
		start_date        TIMESTAMPTZ NOT NULL,
		end_date          TIMESTAMPTZ NOT NULL,
		total_amount      NUMERIC(14,2) NOT NULL CHECK (total_amount > 0),
		paid_amount       NUMERIC(14,2) NOT NULL DEFAULT 0,
		status            TEXT NOT NULL,
		payment_status    TEXT NOT NULL,
		payment_method    TEXT NOT NULL,
		payment_id        TEXT NOT NULL DEFAULT '',
		pickup_location   TEXT NOT NULL,
		dropoff_location  TEXT NOT NULL,
		notes             TEXT NOT NULL DEFAULT '',
		version           INTEGER NOT NULL DEFAULT 1,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date > start_date),
		CHECK ((payment_status = 'full_paid') = (paid_amount = total_amount))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id              UUID PRIMARY KEY,
		booking_id      UUID NOT NULL REFERENCES bookings(id),
		user_id         UUID NOT NULL REFERENCES users(id),
		amount          NUMERIC(14,2) NOT NULL,
		payment_type    TEXT NOT NULL,
		payment_method  TEXT NOT NULL,
		transaction_id  TEXT NOT NULL UNIQUE,
		status          TEXT NOT NULL DEFAULT 'success',
		notes           TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_user_created ON payments (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_booking ON payments (booking_id)`,
	`CREATE TABLE IF NOT EXISTS coupons (
		id              UUID PRIMARY KEY,
		code            TEXT NOT NULL UNIQUE,
		discount_type   TEXT NOT NULL CHECK (discount_type IN ('percentage', 'fixed')),
		discount_value  NUMERIC(12,2) NOT NULL,
		min_amount      NUMERIC(12,2) NOT NULL DEFAULT 0,
		max_discount    NUMERIC(12,2),
		valid_from      TIMESTAMPTZ NOT NULL,
		valid_until     TIMESTAMPTZ NOT NULL,
		usage_limit     INTEGER,
		used_count      INTEGER NOT NULL DEFAULT 0,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          UUID PRIMARY KEY,
		booking_id  UUID NOT NULL REFERENCES bookings(id),
		user_id     UUID NOT NULL REFERENCES users(id),
		car_id      UUID NOT NULL REFERENCES cars(id),
		rating      INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment     TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id          UUID PRIMARY KEY,
		user_id     UUID NOT NULL REFERENCES users(id),
		title       TEXT NOT NULL,
		message     TEXT NOT NULL,
		type        TEXT NOT NULL,
		link        TEXT NOT NULL DEFAULT '',
		is_read     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema if it does not exist yet. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
