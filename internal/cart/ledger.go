package cart

import (
	"errors"
	"slices"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrColorRequired   = errors.New("please select a color")
	ErrSizeRequired    = errors.New("please select a size")
)

// Ledger is the shopping cart: one line per (product, color, size) plus at
// most one active promo code. It is not safe for concurrent use.
type Ledger struct {
	lines  []domain.CartLine
	promo  *domain.PromoCode
	promos PromoTable
}

func NewLedger(promos PromoTable) *Ledger {
	return &Ledger{promos: promos}
}

// Add puts quantity units of product into the cart, merging with an
// existing line for the same color and size.
func (l *Ledger) Add(product domain.Product, quantity int, color, size string) error {
	if color == "" {
		return ErrColorRequired
	}
	if size == "" {
		return ErrSizeRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	key := domain.LineKey{ProductID: product.ID, Color: color, Size: size}
	if i := l.index(key); i >= 0 {
		l.lines[i].Quantity += quantity
		return nil
	}

	l.lines = append(l.lines, domain.CartLine{
		Product:  product,
		Color:    color,
		Size:     size,
		Quantity: quantity,
	})
	return nil
}

// Remove deletes the matching line. It reports whether a line was removed.
// The active promo code is kept even when the cart becomes empty.
func (l *Ledger) Remove(key domain.LineKey) bool {
	i := l.index(key)
	if i < 0 {
		return false
	}
	l.lines = slices.Delete(l.lines, i, i+1)
	return true
}

// UpdateQuantity sets the quantity of an existing line. It reports whether
// the line exists.
func (l *Ledger) UpdateQuantity(key domain.LineKey, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}
	i := l.index(key)
	if i < 0 {
		return false, nil
	}
	l.lines[i].Quantity = quantity
	return true, nil
}

// ApplyPromoCode activates code, replacing any previous promo.
func (l *Ledger) ApplyPromoCode(code string) (domain.PromoCode, error) {
	promo, err := l.promos.Lookup(code)
	if err != nil {
		return domain.PromoCode{}, err
	}
	l.promo = &promo
	return promo, nil
}

// Clear empties the cart and drops the promo code.
func (l *Ledger) Clear() {
	l.lines = nil
	l.promo = nil
}

func (l *Ledger) Lines() []domain.CartLine {
	return slices.Clone(l.lines)
}

func (l *Ledger) Promo() *domain.PromoCode {
	if l.promo == nil {
		return nil
	}
	p := *l.promo
	return &p
}

func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) Totals(cfg PricingConfig) Totals {
	return ComputeTotals(l.lines, l.promo, cfg)
}

func (l *Ledger) index(key domain.LineKey) int {
	return slices.IndexFunc(l.lines, func(line domain.CartLine) bool {
		return line.Key() == key
	})
}
