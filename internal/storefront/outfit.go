package storefront

import (
	"context"
	"slices"
	"strings"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

type OutfitView struct {
	Items    []domain.OutfitItem `json:"items"`
	Selected string              `json:"selected,omitempty"`
}

// OutfitItemPatch carries the canvas attributes to change. Nil fields are
// left as they are.
type OutfitItemPatch struct {
	Position *domain.Position `json:"position,omitempty"`
	Scale    *float64         `json:"scale,omitempty"`
	Rotation *float64         `json:"rotation,omitempty"`
	Layer    *int             `json:"layer,omitempty"`
	Selected *bool            `json:"selected,omitempty"`
}

func (s *Session) Outfit() OutfitView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outfitView()
}

func (s *Session) outfitView() OutfitView {
	return OutfitView{
		Items:    s.canvas.Items(),
		Selected: s.canvas.Selected(),
	}
}

// AddToOutfit places the product on top of the canvas and selects it.
func (s *Session) AddToOutfit(productID string) (OutfitView, error) {
	product, err := s.Product(productID)
	if err != nil {
		return OutfitView{}, err
	}

	s.mu.Lock()
	s.canvas.AddItem(product)
	view := s.outfitView()
	s.mu.Unlock()

	s.notify(EventOutfit, "add")
	return view, nil
}

func (s *Session) RemoveFromOutfit(productID string) (OutfitView, error) {
	s.mu.Lock()
	removed := s.canvas.RemoveItem(productID)
	view := s.outfitView()
	s.mu.Unlock()

	if !removed {
		return OutfitView{}, ErrOutfitItemNotFound
	}
	s.notify(EventOutfit, "remove")
	return view, nil
}

func (s *Session) UpdateOutfitItem(productID string, patch OutfitItemPatch) (OutfitView, error) {
	s.mu.Lock()
	if !s.hasOutfitItem(productID) {
		s.mu.Unlock()
		return OutfitView{}, ErrOutfitItemNotFound
	}

	if patch.Position != nil {
		s.canvas.UpdatePosition(productID, *patch.Position)
	}
	if patch.Scale != nil {
		s.canvas.UpdateScale(productID, *patch.Scale)
	}
	if patch.Rotation != nil {
		s.canvas.UpdateRotation(productID, *patch.Rotation)
	}
	if patch.Layer != nil {
		s.canvas.UpdateLayer(productID, *patch.Layer)
	}
	if patch.Selected != nil {
		switch {
		case *patch.Selected:
			s.canvas.Select(productID)
		case s.canvas.Selected() == productID:
			s.canvas.Select("")
		}
	}
	view := s.outfitView()
	s.mu.Unlock()

	s.notify(EventOutfit, "update")
	return view, nil
}

func (s *Session) hasOutfitItem(productID string) bool {
	return slices.ContainsFunc(s.canvas.Items(), func(item domain.OutfitItem) bool {
		return item.Product.ID == productID
	})
}

func (s *Session) ClearOutfit() OutfitView {
	s.mu.Lock()
	s.canvas.Clear()
	view := s.outfitView()
	s.mu.Unlock()

	s.notify(EventOutfit, "clear")
	return view
}

func (s *Session) SavedOutfits() []domain.SavedOutfit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Saved()
}

// SaveOutfit snapshots the canvas. When a user is signed in the outfit is
// also pushed to the backend; a sync failure is logged and the local copy
// is kept.
func (s *Session) SaveOutfit(ctx context.Context, name string) (domain.SavedOutfit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedOutfit{}, ErrOutfitNameRequired
	}

	s.mu.Lock()
	saved, ok := s.canvas.Save(name)
	token := s.tokens.Access
	s.mu.Unlock()

	if !ok {
		return domain.SavedOutfit{}, ErrOutfitCanvasEmpty
	}

	if s.remote != nil && token != "" {
		if err := s.remote.CreateOutfit(ctx, token, saved); err != nil {
			s.logger.Error("failed to sync saved outfit", "error", err, "outfit_id", saved.ID)
		}
	}

	s.logger.Info("outfit saved", "outfit_id", saved.ID, "items", len(saved.Items))
	s.notify(EventOutfit, "save")
	return saved, nil
}

func (s *Session) LoadOutfit(outfitID string) (OutfitView, error) {
	s.mu.Lock()
	loaded := s.canvas.Load(outfitID)
	view := s.outfitView()
	s.mu.Unlock()

	if !loaded {
		return OutfitView{}, ErrSavedOutfitNotFound
	}
	s.notify(EventOutfit, "load")
	return view, nil
}

func (s *Session) DeleteOutfit(ctx context.Context, outfitID string) error {
	s.mu.Lock()
	deleted := s.canvas.Delete(outfitID)
	token := s.tokens.Access
	s.mu.Unlock()

	if !deleted {
		return ErrSavedOutfitNotFound
	}

	if s.remote != nil && token != "" {
		if err := s.remote.DeleteOutfit(ctx, token, outfitID); err != nil {
			s.logger.Error("failed to delete synced outfit", "error", err, "outfit_id", outfitID)
		}
	}

	s.notify(EventOutfit, "delete")
	return nil
}
