package storefront

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/cart"
	"github.com/joao-fontenele/modestwear-storefront/internal/catalog"
	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	store := catalog.NewStore(catalog.SeedProducts(), catalog.DefaultFilterOptions())
	return NewSession(store, discardLogger(), opts...)
}

func TestSession_Subscribe(t *testing.T) {
	s := newTestSession(t)

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ToggleWishlist("2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unsubscribe()
	s.ClearCart()

	want := []Event{{Kind: EventCart, Action: "add"}, {Kind: EventWishlist, Action: "add"}}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestSession_SubscriberMayReadState(t *testing.T) {
	s := newTestSession(t)

	var count int
	s.Subscribe(func(e Event) {
		if e.Kind == EventCart {
			count = s.Cart().ItemCount
		}
	})

	if _, err := s.AddToCart("1", 3, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected subscriber to observe 3 items, got %d", count)
	}
}

func TestSession_Products(t *testing.T) {
	s := newTestSession(t)

	t.Run("filters by category", func(t *testing.T) {
		products, err := s.Products(catalog.Criteria{CategoryID: "sale"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range products {
			if !p.OnSale() {
				t.Errorf("product %s is not on sale", p.ID)
			}
		}
	})

	t.Run("empty category means all", func(t *testing.T) {
		products, err := s.Products(catalog.Criteria{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 10 {
			t.Errorf("expected 10 products, got %d", len(products))
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := s.Products(catalog.Criteria{CategoryID: "shoes"})
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := s.Product("999")
		if !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestSession_CartTotals(t *testing.T) {
	s := newTestSession(t)

	if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := s.AddToCart("3", 1, "Navy", "L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"subtotal", view.Totals.Subtotal, "169.98"},
		{"shipping", view.Totals.Shipping, "10"},
		{"tax", view.Totals.Tax, "13.6"},
		{"total", view.Totals.Total, "193.58"},
		{"free shipping remaining", view.FreeShippingRemaining, "330.02"},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}

	view, err = s.ApplyPromoCode("welcome20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Totals.Discount.Equal(decimal.RequireFromString("34")) {
		t.Errorf("expected discount 34.00, got %s", view.Totals.Discount)
	}
	if !view.Totals.Total.Equal(decimal.RequireFromString("159.58")) {
		t.Errorf("expected total 159.58, got %s", view.Totals.Total)
	}
}

func TestSession_AddToCartValidation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		color     string
		size      string
		want      error
	}{
		{name: "missing color", productID: "1", quantity: 1, size: "M", want: cart.ErrColorRequired},
		{name: "missing size", productID: "1", quantity: 1, color: "Black", want: cart.ErrSizeRequired},
		{name: "zero quantity", productID: "1", quantity: 0, color: "Black", size: "M", want: cart.ErrInvalidQuantity},
		{name: "unknown product", productID: "999", quantity: 1, color: "Black", size: "M", want: ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			notified := false
			s.Subscribe(func(Event) { notified = true })

			_, err := s.AddToCart(tt.productID, tt.quantity, tt.color, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s.Cart().ItemCount != 0 {
				t.Error("cart should be unchanged")
			}
			if notified {
				t.Error("failed operations should not notify")
			}
		})
	}
}

func TestSession_FixedPromoLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	store := catalog.NewStore(catalog.SeedProducts(), catalog.DefaultFilterOptions())
	s := NewSession(store, slog.New(slog.NewTextHandler(&buf, nil)))

	if _, err := s.AddToCart("5", 1, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := s.ApplyPromoCode("SAVE50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Promo == nil || view.Promo.Type != domain.PromoTypeFixed {
		t.Fatalf("expected fixed promo to be active, got %+v", view.Promo)
	}
	if !view.Totals.Discount.IsZero() {
		t.Errorf("expected no discount, got %s", view.Totals.Discount)
	}
	if !strings.Contains(buf.String(), "fixed-amount promo code applied without discount") {
		t.Errorf("expected warning log, got %q", buf.String())
	}
}

func TestSession_PromoSurvivesPartialRemoval(t *testing.T) {
	s := newTestSession(t)

	if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ApplyPromoCode("MODEST10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := s.RemoveFromCart(domain.LineKey{ProductID: "1", Color: "Black", Size: "M"})
	if view.Promo == nil {
		t.Fatal("promo should survive removing the last line")
	}

	view = s.ClearCart()
	if view.Promo != nil {
		t.Error("clear should drop the promo")
	}
}

func TestSession_UpdateCartQuantity(t *testing.T) {
	s := newTestSession(t)
	key := domain.LineKey{ProductID: "1", Color: "Black", Size: "M"}

	if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, found, err := s.UpdateCartQuantity(key, 4)
	if err != nil || !found {
		t.Fatalf("expected update to succeed, found=%v err=%v", found, err)
	}
	if view.ItemCount != 4 {
		t.Errorf("expected 4 items, got %d", view.ItemCount)
	}

	_, found, err = s.UpdateCartQuantity(domain.LineKey{ProductID: "2", Color: "Black", Size: "M"}, 2)
	if err != nil || found {
		t.Errorf("expected missing line to be reported, found=%v err=%v", found, err)
	}

	_, _, err = s.UpdateCartQuantity(key, 0)
	if !errors.Is(err, cart.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestSession_Wishlist(t *testing.T) {
	s := newTestSession(t)

	in, err := s.ToggleWishlist("4")
	if err != nil || !in {
		t.Fatalf("expected product to be added, in=%v err=%v", in, err)
	}
	in, err = s.ToggleWishlist("4")
	if err != nil || in {
		t.Fatalf("expected product to be removed, in=%v err=%v", in, err)
	}
	if len(s.Wishlist()) != 0 {
		t.Errorf("expected empty wishlist, got %d", len(s.Wishlist()))
	}

	added, _ := s.AddToWishlist("4")
	again, _ := s.AddToWishlist("4")
	if !added || again {
		t.Errorf("expected first add to insert and second to be a no-op, got %v %v", added, again)
	}
	if !s.InWishlist("4") {
		t.Error("expected product 4 in wishlist")
	}
}
