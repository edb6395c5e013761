package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/backend"
	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
	"github.com/joao-fontenele/modestwear-storefront/internal/orders"
)

type recordingPublisher struct {
	events []domain.OrderPlacedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, event domain.OrderPlacedEvent) error {
	p.events = append(p.events, event)
	return p.err
}

// flakyStore fails Create while err is set and otherwise delegates to an
// in-memory repository.
type flakyStore struct {
	*orders.MemoryRepository
	err error
}

func (s *flakyStore) Create(ctx context.Context, order *domain.Order) error {
	if s.err != nil {
		return s.err
	}
	return s.MemoryRepository.Create(ctx, order)
}

// newCheckoutServer accepts logins and counts order submissions. A non-zero
// rejectStatus makes every submission fail with "Item out of stock".
func newCheckoutServer(t *testing.T, rejectStatus int, submitted *atomic.Int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			_, _ = w.Write([]byte(`{"data":{"tokens":{"access_token":"acc","refresh_token":"ref"},"user":{}}}`))
		case "/api/orders/checkout/":
			submitted.Add(1)
			if rejectStatus != 0 {
				w.WriteHeader(rejectStatus)
				_, _ = w.Write([]byte(`{"error":"Item out of stock"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"remote-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func validForm() CheckoutForm {
	return CheckoutForm{
		Email:         "amina@example.com",
		FirstName:     "Amina",
		LastName:      "Khan",
		Address:       "12 Long Street",
		City:          "Cape Town",
		State:         "Western Cape",
		ZipCode:       "8001",
		Phone:         "+27 21 555 0100",
		PaymentMethod: domain.PaymentMethodCard,
		CardNumber:    "4242 4242 4242 4242",
		CardExpiry:    "12/40",
		CardCVV:       "123",
	}
}

func TestCheckoutForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *CheckoutForm)
		wantField string
	}{
		{name: "valid card", mutate: func(f *CheckoutForm) {}},
		{name: "valid cash on delivery without card", mutate: func(f *CheckoutForm) {
			f.PaymentMethod = domain.PaymentMethodCOD
			f.CardNumber, f.CardExpiry, f.CardCVV = "", "", ""
		}},
		{name: "missing email", mutate: func(f *CheckoutForm) { f.Email = " " }, wantField: "email"},
		{name: "malformed email", mutate: func(f *CheckoutForm) { f.Email = "amina" }, wantField: "email"},
		{name: "missing city", mutate: func(f *CheckoutForm) { f.City = "" }, wantField: "city"},
		{name: "missing phone", mutate: func(f *CheckoutForm) { f.Phone = "" }, wantField: "phone"},
		{name: "unknown payment method", mutate: func(f *CheckoutForm) { f.PaymentMethod = "bitcoin" }, wantField: "payment_method"},
		{name: "short card number", mutate: func(f *CheckoutForm) { f.CardNumber = "4242" }, wantField: "card_number"},
		{name: "non-numeric card number", mutate: func(f *CheckoutForm) { f.CardNumber = "4242-4242-4242-4242" }, wantField: "card_number"},
		{name: "bad expiry format", mutate: func(f *CheckoutForm) { f.CardExpiry = "2040-12" }, wantField: "card_expiry"},
		{name: "expired card", mutate: func(f *CheckoutForm) { f.CardExpiry = "01/20" }, wantField: "card_expiry"},
		{name: "bad cvv", mutate: func(f *CheckoutForm) { f.CardCVV = "12" }, wantField: "card_cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := form.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid form, got %v", err)
				}
				return
			}

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, fieldErr.Field)
			}
		})
	}
}

func TestSession_Checkout(t *testing.T) {
	t.Run("places order and clears cart", func(t *testing.T) {
		repo := orders.NewMemoryRepository()
		publisher := &recordingPublisher{}
		s := newTestSession(t, WithOrderStore(repo), WithPublisher(publisher))

		if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.AddToCart("3", 1, "Beige", "L"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.ApplyPromoCode("WELCOME20"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var events []Event
		s.Subscribe(func(e Event) { events = append(events, e) })

		order, err := s.Checkout(context.Background(), validForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if order.ID == "" {
			t.Error("expected order id")
		}
		if order.Status != domain.OrderStatusPending {
			t.Errorf("expected pending status, got %s", order.Status)
		}
		if order.Shipping.Country != "RSA" {
			t.Errorf("expected default country RSA, got %s", order.Shipping.Country)
		}
		if order.PromoCode != "WELCOME20" {
			t.Errorf("expected promo WELCOME20, got %s", order.PromoCode)
		}
		if !order.Total.Equal(decimal.RequireFromString("159.58")) {
			t.Errorf("expected total 159.58, got %s", order.Total)
		}
		if len(order.Items) != 2 || order.Items[1].Color != "Beige" {
			t.Errorf("unexpected items: %+v", order.Items)
		}

		stored, _ := repo.GetByID(context.Background(), order.ID)
		if stored == nil {
			t.Fatal("expected order to be persisted")
		}

		if len(publisher.events) != 1 || publisher.events[0].OrderID != order.ID {
			t.Errorf("expected one order placed event, got %+v", publisher.events)
		}

		view := s.Cart()
		if len(view.Lines) != 0 || view.Promo != nil {
			t.Errorf("expected cart and promo cleared, got %+v", view)
		}

		if len(events) != 2 || events[1] != (Event{Kind: EventOrder, Action: "placed"}) {
			t.Errorf("unexpected events: %v", events)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		s := newTestSession(t)

		_, err := s.Checkout(context.Background(), validForm())
		if !errors.Is(err, ErrEmptyCart) {
			t.Errorf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("invalid form leaves cart unchanged", func(t *testing.T) {
		repo := orders.NewMemoryRepository()
		s := newTestSession(t, WithOrderStore(repo))
		if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		form := validForm()
		form.Email = ""
		if _, err := s.Checkout(context.Background(), form); err == nil {
			t.Fatal("expected validation error")
		}

		if s.Cart().ItemCount != 1 {
			t.Error("cart should be unchanged")
		}
		list, _ := repo.List(context.Background())
		if len(list) != 0 {
			t.Errorf("expected no orders, got %d", len(list))
		}
	})

	t.Run("publish failure does not fail checkout", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker down")}
		s := newTestSession(t, WithOrderStore(orders.NewMemoryRepository()), WithPublisher(publisher))
		if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := s.Checkout(context.Background(), validForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Cart().ItemCount != 0 {
			t.Error("cart should be cleared")
		}
	})

	t.Run("backend rejection leaves cart unchanged and cancels local order", func(t *testing.T) {
		var submitted atomic.Int32
		server := newCheckoutServer(t, http.StatusConflict, &submitted)
		defer server.Close()

		repo := orders.NewMemoryRepository()
		s := newTestSession(t, WithOrderStore(repo), WithBackend(backend.NewClient(server.URL, server.Client())))
		if _, err := s.Login(context.Background(), "amina@example.com", "secret"); err != nil {
			t.Fatalf("unexpected login error: %v", err)
		}
		if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := s.Checkout(context.Background(), validForm())

		var apiErr *backend.APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Item out of stock" {
			t.Fatalf("expected backend error, got %v", err)
		}
		if s.Cart().ItemCount != 1 {
			t.Error("cart should be unchanged")
		}
		list, _ := repo.List(context.Background())
		if len(list) != 1 || list[0].Status != domain.OrderStatusCancelled {
			t.Errorf("expected one cancelled local order, got %+v", list)
		}
	})

	t.Run("local save failure never reaches backend", func(t *testing.T) {
		var submitted atomic.Int32
		server := newCheckoutServer(t, 0, &submitted)
		defer server.Close()

		store := &flakyStore{MemoryRepository: orders.NewMemoryRepository(), err: errors.New("db down")}
		s := newTestSession(t, WithOrderStore(store), WithBackend(backend.NewClient(server.URL, server.Client())))
		if _, err := s.Login(context.Background(), "amina@example.com", "secret"); err != nil {
			t.Fatalf("unexpected login error: %v", err)
		}
		if _, err := s.AddToCart("1", 1, "Black", "M"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for attempt := 0; attempt < 2; attempt++ {
			if _, err := s.Checkout(context.Background(), validForm()); err == nil {
				t.Fatalf("attempt %d: expected save error", attempt)
			}
			if s.Cart().ItemCount != 1 {
				t.Errorf("attempt %d: cart should be unchanged", attempt)
			}
		}
		if n := submitted.Load(); n != 0 {
			t.Errorf("expected no remote submissions while the store is down, got %d", n)
		}

		store.err = nil
		order, err := s.Checkout(context.Background(), validForm())
		if err != nil {
			t.Fatalf("unexpected error after recovery: %v", err)
		}
		if n := submitted.Load(); n != 1 {
			t.Errorf("expected exactly one remote submission, got %d", n)
		}
		if s.Cart().ItemCount != 0 {
			t.Error("cart should be cleared")
		}
		stored, _ := store.GetByID(context.Background(), order.ID)
		if stored == nil || stored.Status != domain.OrderStatusPending {
			t.Errorf("expected pending local order, got %+v", stored)
		}
	})
}
