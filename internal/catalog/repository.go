package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	id, name, price, original_price, discount, image, images, category,
	description, fabric, care, colors, sizes, in_stock, rating, reviews,
	featured, is_new`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Discount, &p.Image,
		pq.Array(&p.Images), &p.Category, &p.Description, &p.Fabric, &p.Care,
		pq.Array(&p.Colors), pq.Array(&p.Sizes), &p.InStock, &p.Rating,
		&p.Reviews, &p.Featured, &p.IsNew,
	)
	return p, err
}

func (r *ProductRepository) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert writes products in list order, replacing rows with the same id.
func (r *ProductRepository) Upsert(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (`+productColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, price = EXCLUDED.price, original_price = EXCLUDED.original_price,
				discount = EXCLUDED.discount, image = EXCLUDED.image, images = EXCLUDED.images,
				category = EXCLUDED.category, description = EXCLUDED.description, fabric = EXCLUDED.fabric,
				care = EXCLUDED.care, colors = EXCLUDED.colors, sizes = EXCLUDED.sizes,
				in_stock = EXCLUDED.in_stock, rating = EXCLUDED.rating, reviews = EXCLUDED.reviews,
				featured = EXCLUDED.featured, is_new = EXCLUDED.is_new, position = EXCLUDED.position
		`, p.ID, p.Name, p.Price, p.OriginalPrice, p.Discount, p.Image, pq.Array(p.Images),
			p.Category, p.Description, p.Fabric, p.Care, pq.Array(p.Colors), pq.Array(p.Sizes),
			p.InStock, p.Rating, p.Reviews, p.Featured, p.IsNew, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
