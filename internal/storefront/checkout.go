package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

var ErrEmptyCart = errors.New("your cart is empty")

// FieldError is a checkout validation failure for a single form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

type CheckoutForm struct {
	Email         string               `json:"email"`
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	ZipCode       string               `json:"zip_code"`
	Country       string               `json:"country"`
	Phone         string               `json:"phone"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	CardNumber    string               `json:"card_number,omitempty"`
	CardExpiry    string               `json:"card_expiry,omitempty"`
	CardCVV       string               `json:"card_cvv,omitempty"`
}

const defaultCountry = "RSA"

// Validate checks the form in field order and returns the first problem.
func (f *CheckoutForm) Validate() error {
	required := []struct {
		field string
		value string
		label string
	}{
		{"email", f.Email, "email"},
		{"first_name", f.FirstName, "first name"},
		{"last_name", f.LastName, "last name"},
		{"address", f.Address, "address"},
		{"city", f.City, "city"},
		{"state", f.State, "state"},
		{"zip_code", f.ZipCode, "zip code"},
		{"phone", f.Phone, "phone number"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &FieldError{Field: r.field, Message: r.label + " is required"}
		}
	}

	if _, err := mail.ParseAddress(f.Email); err != nil {
		return &FieldError{Field: "email", Message: "please enter a valid email address"}
	}

	if !f.PaymentMethod.Valid() {
		return &FieldError{Field: "payment_method", Message: "please select a payment method"}
	}

	if f.PaymentMethod == domain.PaymentMethodCard {
		return f.validateCard()
	}
	return nil
}

func (f *CheckoutForm) validateCard() error {
	number := strings.ReplaceAll(f.CardNumber, " ", "")
	if len(number) < 12 || len(number) > 19 || !allDigits(number) {
		return &FieldError{Field: "card_number", Message: "please enter a valid card number"}
	}

	expiry, err := time.Parse("01/06", strings.TrimSpace(f.CardExpiry))
	if err != nil {
		return &FieldError{Field: "card_expiry", Message: "expiry date must be MM/YY"}
	}
	// Cards are valid through the last day of the expiry month.
	if !time.Now().UTC().Before(expiry.AddDate(0, 1, 0)) {
		return &FieldError{Field: "card_expiry", Message: "card has expired"}
	}

	if cvv := strings.TrimSpace(f.CardCVV); len(cvv) < 3 || len(cvv) > 4 || !allDigits(cvv) {
		return &FieldError{Field: "card_cvv", Message: "please enter a valid CVV"}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// Checkout turns the cart into an order. The session stays locked for the
// whole operation so the order matches the cart it clears. The order is
// saved locally before a signed-in user's order is submitted to the
// backend; a failure at either step leaves the cart untouched, and a
// backend failure cancels the local order. Publishing the order event is
// best effort.
func (s *Session) Checkout(ctx context.Context, form CheckoutForm) (*domain.Order, error) {
	if form.Country == "" {
		form.Country = defaultCountry
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	totals := s.cart.Totals(s.pricing).Rounded()
	order := &domain.Order{
		ID:     uuid.NewString(),
		Email:  strings.TrimSpace(form.Email),
		Status: domain.OrderStatusPending,
		Items:  make([]domain.OrderItem, 0, len(lines)),
		Shipping: domain.ShippingAddress{
			FirstName: strings.TrimSpace(form.FirstName),
			LastName:  strings.TrimSpace(form.LastName),
			Address:   strings.TrimSpace(form.Address),
			City:      strings.TrimSpace(form.City),
			State:     strings.TrimSpace(form.State),
			ZipCode:   strings.TrimSpace(form.ZipCode),
			Country:   strings.TrimSpace(form.Country),
			Phone:     strings.TrimSpace(form.Phone),
		},
		PaymentMethod: form.PaymentMethod,
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.Shipping,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		CreatedAt:     time.Now().UTC(),
	}
	if promo := s.cart.Promo(); promo != nil {
		order.PromoCode = promo.Code
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:    l.Product.ID,
			ProductName:  l.Product.Name,
			ProductImage: l.Product.Image,
			Quantity:     l.Quantity,
			Price:        l.Product.Price,
			Color:        l.Color,
			Size:         l.Size,
		})
	}

	if s.orders != nil {
		if err := s.orders.Create(ctx, order); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("save order: %w", err)
		}
	}

	if s.remote != nil && s.tokens.Access != "" {
		if _, err := s.remote.Checkout(ctx, s.tokens.Access, order); err != nil {
			s.cancelOrder(ctx, order.ID)
			s.mu.Unlock()
			return nil, err
		}
	}

	s.cart.Clear()
	s.mu.Unlock()

	s.logger.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.Total.StringFixed(2))

	if s.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:   order.ID,
			Email:     order.Email,
			Items:     order.Items,
			Total:     order.Total,
			Timestamp: order.CreatedAt,
		}
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	s.notify(EventCart, "clear")
	s.notify(EventOrder, "placed")
	return order, nil
}

func (s *Session) cancelOrder(ctx context.Context, orderID string) {
	if s.orders == nil {
		return
	}
	if _, err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		s.logger.Error("failed to cancel order after backend rejection", "error", err, "order_id", orderID)
	}
}
