package catalog

import (
	"context"
	"fmt"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// Source supplies the product list from outside the process, such as the
// products table or the remote catalog API.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Refresh replaces the store contents with the products from src. An empty
// result keeps the current catalogue.
func (s *Store) Refresh(ctx context.Context, src Source) (int, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}

	s.Replace(products)
	return len(products), nil
}
