package repository

import (
	"context"
	"errors"
	"time"

	"CartStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// FindActiveByToken returns the single active cart bound to a session token.
func (r *CartRepository) FindActiveByToken(ctx context.Context, token string) (*model.Cart, error) {
	var c model.Cart
	query := `SELECT cartid, session_id, total_price, last_interaction_at, abandoned_at
		FROM carts WHERE session_id=$1 AND abandoned_at IS NULL`
	err := r.DB.QueryRow(ctx, query, token).Scan(&c.CartID, &c.SessionID, &c.TotalPrice, &c.LastInteractionAt, &c.AbandonedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFound("cart")
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a fresh empty cart for the token. The partial unique index
// on (session_id) WHERE abandoned_at IS NULL rejects a concurrent second
// insert for the same new session; in that case the winner's row is
// returned instead.
func (r *CartRepository) Create(ctx context.Context, token string) (*model.Cart, error) {
	var c model.Cart
	query := `INSERT INTO carts (session_id, total_price, last_interaction_at, created_at)
		VALUES ($1, 0, $2, $2)
		RETURNING cartid, session_id, total_price, last_interaction_at, abandoned_at`
	err := r.DB.QueryRow(ctx, query, token, time.Now()).Scan(&c.CartID, &c.SessionID, &c.TotalPrice, &c.LastInteractionAt, &c.AbandonedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.FindActiveByToken(ctx, token)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) GetByID(ctx context.Context, cartID int64) (*model.Cart, error) {
	var c model.Cart
	query := `SELECT cartid, session_id, total_price, last_interaction_at, abandoned_at
		FROM carts WHERE cartid=$1`
	err := r.DB.QueryRow(ctx, query, cartID).Scan(&c.CartID, &c.SessionID, &c.TotalPrice, &c.LastInteractionAt, &c.AbandonedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFound("cart")
		}
		return nil, err
	}
	return &c, nil
}

// Items returns the cart's ledger entries joined with current product data.
// Line totals use the price as it is now, not as it was when added.
func (r *CartRepository) Items(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	query := `
		SELECT ci.product_id, p.name, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.productid = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.cartitemid
	`
	rows, err := r.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		it.TotalPrice = it.UnitPrice * float64(it.Quantity)
		items = append(items, it)
	}
	return items, rows.Err()
}

// lockCartTx takes the cart's row lock before any ledger statement runs.
// Mutations of the same cart serialize on it, and every later statement in
// the transaction reads data that is current as of acquiring the lock.
func (r *CartRepository) lockCartTx(ctx context.Context, tx pgx.Tx, cartID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT cartid FROM carts WHERE cartid=$1 FOR UPDATE`, cartID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NotFound("cart")
		}
		return err
	}
	return nil
}

// SetItem overwrites the quantity for (cart, product), creating the ledger
// entry if absent. Ledger write, total recompute and touch commit together.
func (r *CartRepository) SetItem(ctx context.Context, cartID, productID int64, qty int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.lockCartTx(ctx, tx, cartID); err != nil {
		return err
	}

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`
	if _, err := tx.Exec(ctx, query, cartID, productID, qty, time.Now()); err != nil {
		return err
	}
	if err := r.recalculateTotalTx(ctx, tx, cartID); err != nil {
		return err
	}
	if err := r.touchTx(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// IncrementItem adds delta to the quantity for (cart, product), starting
// from 0 when no entry exists. The cart row lock serializes the
// read-modify-write against concurrent mutations of the same cart, first
// insert included. A non-positive result rolls the whole transaction back.
func (r *CartRepository) IncrementItem(ctx context.Context, cartID, productID int64, delta int) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := r.lockCartTx(ctx, tx, cartID); err != nil {
		return 0, err
	}

	var current int
	query := `SELECT quantity FROM cart_items WHERE cart_id=$1 AND product_id=$2`
	if err := tx.QueryRow(ctx, query, cartID, productID).Scan(&current); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		current = 0
	}

	next := current + delta
	if next <= 0 {
		return 0, model.Invalid("quantity must be greater than 0")
	}

	query = `
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`
	if _, err := tx.Exec(ctx, query, cartID, productID, next, time.Now()); err != nil {
		return 0, err
	}
	if err := r.recalculateTotalTx(ctx, tx, cartID); err != nil {
		return 0, err
	}
	if err := r.touchTx(ctx, tx, cartID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return next, nil
}

// RemoveItem deletes the ledger entry for (cart, product). Returns whether
// an entry existed; a miss leaves the cart untouched.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID int64) (bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := r.lockCartTx(ctx, tx, cartID); err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1 AND product_id=$2`, cartID, productID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if err := r.recalculateTotalTx(ctx, tx, cartID); err != nil {
		return false, err
	}
	if err := r.touchTx(ctx, tx, cartID); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// recalculateTotalTx persists total_price = sum of current line totals.
func (r *CartRepository) recalculateTotalTx(ctx context.Context, tx pgx.Tx, cartID int64) error {
	query := `
		UPDATE carts SET total_price = COALESCE((
			SELECT SUM(p.price * ci.quantity)
			FROM cart_items ci
			JOIN products p ON p.productid = ci.product_id
			WHERE ci.cart_id = carts.cartid
		), 0)
		WHERE cartid=$1
	`
	tag, err := tx.Exec(ctx, query, cartID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &model.ConsistencyError{Msg: "total recompute hit no cart row"}
	}
	return nil
}

func (r *CartRepository) touchTx(ctx context.Context, tx pgx.Tx, cartID int64) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET last_interaction_at=$1 WHERE cartid=$2`, time.Now(), cartID)
	return err
}

// MarkAbandoned sets abandoned_at on one cart. Idempotent: an already
// abandoned cart keeps its original timestamp.
func (r *CartRepository) MarkAbandoned(ctx context.Context, cartID int64) error {
	query := `UPDATE carts SET abandoned_at=$1 WHERE cartid=$2 AND abandoned_at IS NULL`
	_, err := r.DB.Exec(ctx, query, time.Now(), cartID)
	return err
}

// MarkAbandonedBefore abandons every active cart idle since before cutoff.
func (r *CartRepository) MarkAbandonedBefore(ctx context.Context, cutoff, at time.Time) (int64, error) {
	query := `UPDATE carts SET abandoned_at=$2 WHERE abandoned_at IS NULL AND last_interaction_at < $1`
	tag, err := r.DB.Exec(ctx, query, cutoff, at)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PurgeAbandonedBefore permanently deletes carts abandoned before cutoff.
// cart_items go with them via ON DELETE CASCADE.
func (r *CartRepository) PurgeAbandonedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM carts WHERE abandoned_at IS NOT NULL AND abandoned_at < $1`
	tag, err := r.DB.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
