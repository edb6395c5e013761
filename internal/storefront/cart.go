package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/cart"
	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// CartView is the cart as presented to clients, with totals rounded to
// cents.
type CartView struct {
	Lines                 []domain.CartLine `json:"lines"`
	Promo                 *domain.PromoCode `json:"promo,omitempty"`
	ItemCount             int               `json:"item_count"`
	Totals                cart.Totals       `json:"totals"`
	FreeShippingRemaining decimal.Decimal   `json:"free_shipping_remaining"`
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	totals := s.cart.Totals(s.pricing)
	return CartView{
		Lines:                 s.cart.Lines(),
		Promo:                 s.cart.Promo(),
		ItemCount:             s.cart.ItemCount(),
		Totals:                totals.Rounded(),
		FreeShippingRemaining: totals.FreeShippingRemaining(s.pricing).Round(2),
	}
}

// AddToCart snapshots the product into the cart. Validation failures leave
// the cart unchanged.
func (s *Session) AddToCart(productID string, quantity int, color, size string) (CartView, error) {
	product, err := s.Product(productID)
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	if err := s.cart.Add(product, quantity, color, size); err != nil {
		s.mu.Unlock()
		return CartView{}, err
	}
	view := s.cartView()
	s.mu.Unlock()

	s.logger.Info("cart line added", "product_id", productID, "color", color, "size", size, "quantity", quantity)
	s.notify(EventCart, "add")
	return view, nil
}

func (s *Session) RemoveFromCart(key domain.LineKey) CartView {
	s.mu.Lock()
	removed := s.cart.Remove(key)
	view := s.cartView()
	s.mu.Unlock()

	if removed {
		s.notify(EventCart, "remove")
	}
	return view
}

// UpdateCartQuantity reports whether the line exists.
func (s *Session) UpdateCartQuantity(key domain.LineKey, quantity int) (CartView, bool, error) {
	s.mu.Lock()
	found, err := s.cart.UpdateQuantity(key, quantity)
	if err != nil {
		s.mu.Unlock()
		return CartView{}, false, err
	}
	view := s.cartView()
	s.mu.Unlock()

	if found {
		s.notify(EventCart, "update")
	}
	return view, found, nil
}

func (s *Session) ApplyPromoCode(code string) (CartView, error) {
	s.mu.Lock()
	promo, err := s.cart.ApplyPromoCode(code)
	if err != nil {
		s.mu.Unlock()
		return CartView{}, err
	}
	view := s.cartView()
	s.mu.Unlock()

	if promo.Type == domain.PromoTypeFixed {
		// Fixed-amount codes are accepted but never reduce the total.
		s.logger.Warn("fixed-amount promo code applied without discount", "code", promo.Code, "amount", promo.Discount)
	}

	s.notify(EventCart, "promo")
	return view, nil
}

func (s *Session) ClearCart() CartView {
	s.mu.Lock()
	s.cart.Clear()
	view := s.cartView()
	s.mu.Unlock()

	s.notify(EventCart, "clear")
	return view
}
