package catalog

import (
	"slices"
	"sync"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// Store holds the product catalogue in memory. The product list can be
// swapped wholesale after a refresh from an external source.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]int
	filters  domain.FilterOptions
}

func NewStore(products []domain.Product, filters domain.FilterOptions) *Store {
	s := &Store{filters: filters}
	s.Replace(products)
	return s
}

// Replace swaps the product list. Later duplicates of an id are dropped.
func (s *Store) Replace(products []domain.Product) {
	byID := make(map[string]int, len(products))
	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = len(kept)
		kept = append(kept, p)
	}

	s.mu.Lock()
	s.products = kept
	s.byID = byID
	s.mu.Unlock()
}

func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// Get returns the product with the given id and whether it exists.
func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) Search(c Criteria) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Apply(s.products, c)
}

// Categories returns every browsable category with its current product
// count.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(categoryNames))
	for _, c := range categoryNames {
		count := 0
		for _, p := range s.products {
			if matchesCategory(p, c.id) {
				count++
			}
		}
		categories = append(categories, domain.Category{ID: c.id, Name: c.name, Count: count})
	}
	return categories
}

// HasCategory reports whether id names a known category or pseudo-category.
func (s *Store) HasCategory(id string) bool {
	for _, c := range categoryNames {
		if c.id == id {
			return true
		}
	}
	return false
}

func (s *Store) Filters() domain.FilterOptions {
	return s.filters
}
