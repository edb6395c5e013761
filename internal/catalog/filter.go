package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

const (
	CategoryAll  = "all"
	CategorySale = "sale"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortRating    SortKey = "rating"
)

// ParseSortKey maps a query value to a SortKey. Unknown values sort by
// featured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceLow, SortPriceHigh, SortNewest, SortRating:
		return k
	}
	return SortFeatured
}

// Criteria selects and orders a subset of the catalogue. Zero values
// disable the corresponding filter.
type Criteria struct {
	CategoryID string
	Search     string
	NewOnly    bool
	Sizes      []string
	Colors     []string
	MinPrice   decimal.NullDecimal
	MaxPrice   decimal.NullDecimal
	Sort       SortKey
}

// Apply filters products by every active criterion and returns them in the
// requested order. The input slice is not modified.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	result := Filter(products, c)
	Sort(result, c.Sort)
	return result
}

// Filter keeps the products matching all active criteria, preserving input
// order. The result is never nil.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, c.CategoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if c.NewOnly && !p.IsNew {
			continue
		}
		if len(c.Sizes) > 0 && !containsAny(p.Sizes, c.Sizes) {
			continue
		}
		if len(c.Colors) > 0 && !containsAny(p.Colors, c.Colors) {
			continue
		}
		if c.MinPrice.Valid && p.Price.LessThan(c.MinPrice.Decimal) {
			continue
		}
		if c.MaxPrice.Valid && p.Price.GreaterThan(c.MaxPrice.Decimal) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Sort orders products in place by key. The sort is stable: products that
// compare equal keep their relative order.
func Sort(products []domain.Product, key SortKey) {
	slices.SortStableFunc(products, comparator(key))
}

func comparator(key SortKey) func(a, b domain.Product) int {
	switch key {
	case SortPriceLow:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceHigh:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case SortNewest:
		return func(a, b domain.Product) int { return flagFirst(a.IsNew, b.IsNew) }
	case SortRating:
		return func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b domain.Product) int { return flagFirst(a.Featured, b.Featured) }
	}
}

// flagFirst orders true before false.
func flagFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

func matchesCategory(p domain.Product, categoryID string) bool {
	switch categoryID {
	case "", CategoryAll:
		return true
	case CategorySale:
		return p.OnSale()
	default:
		return p.Category == categoryID
	}
}

func containsAny(offered, wanted []string) bool {
	for _, w := range wanted {
		if slices.Contains(offered, w) {
			return true
		}
	}
	return false
}
