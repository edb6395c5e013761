package storefront

import "github.com/joao-fontenele/modestwear-storefront/internal/domain"

func (s *Session) Wishlist() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Items()
}

// ToggleWishlist reports whether the product is in the wishlist afterwards.
func (s *Session) ToggleWishlist(productID string) (bool, error) {
	product, err := s.Product(productID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	added := s.wishlist.Toggle(product)
	s.mu.Unlock()

	action := "remove"
	if added {
		action = "add"
	}
	s.notify(EventWishlist, action)
	return added, nil
}

// AddToWishlist reports whether the product was newly added.
func (s *Session) AddToWishlist(productID string) (bool, error) {
	product, err := s.Product(productID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	added := s.wishlist.Add(product)
	s.mu.Unlock()

	if added {
		s.notify(EventWishlist, "add")
	}
	return added, nil
}

func (s *Session) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}
