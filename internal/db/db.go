package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the given URL and verifies it with a
// ping before handing it out.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates the schema when missing. The partial unique index on
// carts keeps a session token bound to at most one active cart even under
// concurrent first-requests.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			productid BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(17,2) NOT NULL CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS carts (
			cartid BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			total_price NUMERIC(17,2) NOT NULL DEFAULT 0 CHECK (total_price >= 0),
			last_interaction_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			abandoned_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS index_carts_on_active_session
			ON carts (session_id) WHERE abandoned_at IS NULL;
		CREATE INDEX IF NOT EXISTS index_carts_on_abandoned_at
			ON carts (abandoned_at);
		CREATE INDEX IF NOT EXISTS index_carts_on_last_interaction_at
			ON carts (last_interaction_at);

		CREATE TABLE IF NOT EXISTS cart_items (
			cartitemid BIGSERIAL PRIMARY KEY,
			cart_id BIGINT NOT NULL REFERENCES carts(cartid) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(productid),
			quantity INT NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cart_id, product_id)
		);
	`)
	return err
}
