package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/joao-fontenele/modestwear-storefront/internal/backend"
	"github.com/joao-fontenele/modestwear-storefront/internal/cart"
	"github.com/joao-fontenele/modestwear-storefront/internal/catalog"
	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
	"github.com/joao-fontenele/modestwear-storefront/internal/outfit"
	"github.com/joao-fontenele/modestwear-storefront/internal/wishlist"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBackendUnavailable  = errors.New("account service is not configured")
	ErrOutfitNameRequired  = errors.New("outfit name is required")
	ErrOutfitCanvasEmpty   = errors.New("add items to the canvas before saving")
	ErrOutfitItemNotFound  = errors.New("outfit item not found")
	ErrSavedOutfitNotFound = errors.New("saved outfit not found")
)

type EventKind string

const (
	EventCart     EventKind = "cart"
	EventWishlist EventKind = "wishlist"
	EventOutfit   EventKind = "outfit"
	EventUser     EventKind = "user"
	EventOrder    EventKind = "order"
)

// Event describes a state change that was just applied to the session.
type Event struct {
	Kind   EventKind `json:"kind"`
	Action string    `json:"action"`
}

// Backend is the subset of the remote storefront API the session calls.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.AuthResult, error)
	Register(ctx context.Context, email, password, fullName string) (*backend.AuthResult, error)
	GoogleLogin(ctx context.Context, credential string) (*backend.AuthResult, error)
	Profile(ctx context.Context, token string) (json.RawMessage, error)
	Logout(ctx context.Context, token, refresh string) error
	Recommendations(ctx context.Context, kind, token string) (json.RawMessage, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	Orders(ctx context.Context, token string) (json.RawMessage, error)
	Outfits(ctx context.Context, token string) (json.RawMessage, error)
	Checkout(ctx context.Context, token string, order *domain.Order) (json.RawMessage, error)
	CreateOutfit(ctx context.Context, token string, outfit domain.SavedOutfit) error
	DeleteOutfit(ctx context.Context, token, id string) error
}

// OrderStore persists placed orders.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// OrderPublisher announces placed orders to downstream consumers.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error
}

// Session owns all client-side storefront state: catalogue, cart, wishlist,
// outfit canvas and the signed-in user. Every mutation runs under one lock;
// subscribers are notified after the lock is released.
type Session struct {
	mu       sync.Mutex
	catalog  *catalog.Store
	cart     *cart.Ledger
	wishlist *wishlist.Set
	canvas   *outfit.Canvas
	pricing  cart.PricingConfig
	user     json.RawMessage
	tokens   backend.Tokens

	remote    Backend
	orders    OrderStore
	publisher OrderPublisher
	logger    *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

type Option func(*Session)

func WithPricing(cfg cart.PricingConfig) Option {
	return func(s *Session) {
		s.pricing = cfg
	}
}

func WithPromoTable(promos cart.PromoTable) Option {
	return func(s *Session) {
		s.cart = cart.NewLedger(promos)
	}
}

func WithCanvas(canvas *outfit.Canvas) Option {
	return func(s *Session) {
		s.canvas = canvas
	}
}

func WithBackend(remote Backend) Option {
	return func(s *Session) {
		s.remote = remote
	}
}

func WithOrderStore(orders OrderStore) Option {
	return func(s *Session) {
		s.orders = orders
	}
}

func WithPublisher(publisher OrderPublisher) Option {
	return func(s *Session) {
		s.publisher = publisher
	}
}

func NewSession(store *catalog.Store, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		catalog:  store,
		cart:     cart.NewLedger(cart.DefaultPromoTable()),
		wishlist: wishlist.NewSet(),
		canvas:   outfit.NewCanvas(),
		pricing:  cart.DefaultPricingConfig(),
		logger:   logger,
		subs:     make(map[int]func(Event)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers fn for state-change events. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify(kind EventKind, action string) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	ev := Event{Kind: kind, Action: action}
	for _, fn := range fns {
		fn(ev)
	}
}

// Catalog returns the product store backing the session.
func (s *Session) Catalog() *catalog.Store {
	return s.catalog
}

// Products runs the filter engine over the catalogue. An unknown category
// yields ErrCategoryNotFound.
func (s *Session) Products(c catalog.Criteria) ([]domain.Product, error) {
	if c.CategoryID != "" && !s.catalog.HasCategory(c.CategoryID) {
		return nil, ErrCategoryNotFound
	}
	return s.catalog.Search(c), nil
}

// SearchProducts runs a free-text search. With a backend it uses the remote
// search endpoint, otherwise the local name match.
func (s *Session) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if s.remote == nil {
		return s.catalog.Search(catalog.Criteria{Search: query}), nil
	}
	return s.remote.SearchProducts(ctx, query)
}

func (s *Session) Product(id string) (domain.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}
