package outfit

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

var defaultPosition = domain.Position{X: 50, Y: 50}

// Canvas is the outfit builder: the items currently placed plus the named
// snapshots saved from it. It is not safe for concurrent use.
type Canvas struct {
	items    []domain.OutfitItem
	saved    []domain.SavedOutfit
	selected string

	now   func() time.Time
	newID func() string
}

type Option func(*Canvas)

func WithClock(now func() time.Time) Option {
	return func(c *Canvas) {
		c.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Canvas) {
		c.newID = newID
	}
}

func NewCanvas(opts ...Option) *Canvas {
	c := &Canvas{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem places product at the centre of the canvas on top of every other
// item and selects it. Adding a product that is already placed stacks a
// second copy; product-keyed updates act on the first copy.
func (c *Canvas) AddItem(product domain.Product) {
	c.items = append(c.items, domain.OutfitItem{
		Product:  product,
		Position: defaultPosition,
		Scale:    1,
		Rotation: 0,
		Layer:    len(c.items),
	})
	c.selected = product.ID
}

// RemoveItem drops every copy of the product from the canvas.
func (c *Canvas) RemoveItem(productID string) bool {
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item domain.OutfitItem) bool {
		return item.Product.ID == productID
	})
	if len(c.items) == n {
		return false
	}
	if c.selected == productID {
		c.selected = ""
	}
	return true
}

func (c *Canvas) UpdatePosition(productID string, pos domain.Position) bool {
	return c.update(productID, func(item *domain.OutfitItem) { item.Position = pos })
}

func (c *Canvas) UpdateScale(productID string, scale float64) bool {
	return c.update(productID, func(item *domain.OutfitItem) { item.Scale = scale })
}

func (c *Canvas) UpdateRotation(productID string, rotation float64) bool {
	return c.update(productID, func(item *domain.OutfitItem) { item.Rotation = rotation })
}

func (c *Canvas) UpdateLayer(productID string, layer int) bool {
	return c.update(productID, func(item *domain.OutfitItem) { item.Layer = layer })
}

// Select marks an item as selected. An empty id clears the selection.
func (c *Canvas) Select(productID string) bool {
	if productID != "" && c.index(productID) < 0 {
		return false
	}
	c.selected = productID
	return true
}

func (c *Canvas) Selected() string {
	return c.selected
}

// Clear empties the canvas and deselects. Saved outfits are kept.
func (c *Canvas) Clear() {
	c.items = nil
	c.selected = ""
}

// Save snapshots the current items under name. It returns false and saves
// nothing when the canvas is empty.
func (c *Canvas) Save(name string) (domain.SavedOutfit, bool) {
	if len(c.items) == 0 {
		return domain.SavedOutfit{}, false
	}
	outfit := domain.SavedOutfit{
		ID:        c.newID(),
		Name:      name,
		Items:     slices.Clone(c.items),
		CreatedAt: c.now(),
	}
	c.saved = append(c.saved, outfit)
	return copyOutfit(outfit), true
}

// Load replaces the current items with a copy of a saved outfit and clears
// the selection, which may name an item that is no longer placed.
func (c *Canvas) Load(outfitID string) bool {
	i := c.savedIndex(outfitID)
	if i < 0 {
		return false
	}
	c.items = slices.Clone(c.saved[i].Items)
	c.selected = ""
	return true
}

func (c *Canvas) Delete(outfitID string) bool {
	i := c.savedIndex(outfitID)
	if i < 0 {
		return false
	}
	c.saved = slices.Delete(c.saved, i, i+1)
	return true
}

func (c *Canvas) Items() []domain.OutfitItem {
	return slices.Clone(c.items)
}

func (c *Canvas) Saved() []domain.SavedOutfit {
	out := make([]domain.SavedOutfit, len(c.saved))
	for i, o := range c.saved {
		out[i] = copyOutfit(o)
	}
	return out
}

func (c *Canvas) update(productID string, fn func(*domain.OutfitItem)) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	fn(&c.items[i])
	return true
}

func (c *Canvas) index(productID string) int {
	return slices.IndexFunc(c.items, func(item domain.OutfitItem) bool {
		return item.Product.ID == productID
	})
}

func (c *Canvas) savedIndex(outfitID string) int {
	return slices.IndexFunc(c.saved, func(o domain.SavedOutfit) bool {
		return o.ID == outfitID
	})
}

func copyOutfit(o domain.SavedOutfit) domain.SavedOutfit {
	o.Items = slices.Clone(o.Items)
	return o
}
