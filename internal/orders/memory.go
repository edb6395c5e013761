package orders

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// MemoryRepository keeps orders in process memory. It is used when no
// database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	stored := *order
	stored.Items = slices.Clone(order.Items)

	r.mu.Lock()
	r.orders = append(r.orders, stored)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.Items = slices.Clone(o.Items)
			return &o, nil
		}
	}
	return nil, nil
}

// List returns orders newest first.
func (r *MemoryRepository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		o.Items = slices.Clone(o.Items)
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	i := slices.IndexFunc(r.orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		r.mu.Unlock()
		return nil, nil
	}
	if current := r.orders[i].Status; !current.CanTransitionTo(status) {
		r.mu.Unlock()
		return nil, &TransitionError{From: current, To: status}
	}
	r.orders[i].Status = status
	r.mu.Unlock()

	return r.GetByID(ctx, id)
}
