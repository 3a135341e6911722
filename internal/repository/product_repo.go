package repository

import (
	"context"
	"errors"
	"time"

	"CartStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `INSERT INTO products (name, price, created_at) VALUES ($1, $2, $3) RETURNING productid`
	if err := r.DB.QueryRow(ctx, query, p.Name, p.Price, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT productid, name, price FROM products WHERE productid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&p.ProductID, &p.Name, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFound("product")
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT productid, name, price FROM products ORDER BY productid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, price=$2 WHERE productid=$3`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Price, p.ProductID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound("product")
	}
	return nil
}

// Delete removes a product together with its ledger entries, then recomputes
// the total of every cart that referenced it, all in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `DELETE FROM cart_items WHERE product_id=$1 RETURNING cart_id`, id)
	if err != nil {
		return err
	}
	affected := make(map[int64]struct{})
	for rows.Next() {
		var cartID int64
		if err := rows.Scan(&cartID); err != nil {
			rows.Close()
			return err
		}
		affected[cartID] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE productid=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound("product")
	}

	recompute := `
		UPDATE carts SET total_price = COALESCE((
			SELECT SUM(p.price * ci.quantity)
			FROM cart_items ci
			JOIN products p ON p.productid = ci.product_id
			WHERE ci.cart_id = carts.cartid
		), 0)
		WHERE cartid=$1
	`
	for cartID := range affected {
		if _, err := tx.Exec(ctx, recompute, cartID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
