package wishlist

import (
	"slices"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// Set holds saved-for-later products, unique by id, in the order they were
// last added: a product removed and added again moves to the end. It is not
// safe for concurrent use.
type Set struct {
	items []domain.Product
}

func NewSet() *Set {
	return &Set{}
}

// Toggle adds product when absent and removes it when present. It reports
// whether the product is in the set afterwards.
func (s *Set) Toggle(product domain.Product) bool {
	if s.Remove(product.ID) {
		return false
	}
	s.items = append(s.items, product)
	return true
}

// Add inserts product unless an entry with the same id exists.
func (s *Set) Add(product domain.Product) bool {
	if s.Contains(product.ID) {
		return false
	}
	s.items = append(s.items, product)
	return true
}

func (s *Set) Remove(productID string) bool {
	i := s.index(productID)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *Set) Contains(productID string) bool {
	return s.index(productID) >= 0
}

func (s *Set) Items() []domain.Product {
	return slices.Clone(s.items)
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) index(productID string) int {
	return slices.IndexFunc(s.items, func(p domain.Product) bool {
		return p.ID == productID
	})
}
