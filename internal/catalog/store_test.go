package catalog

import (
	"testing"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

func TestStore_Get(t *testing.T) {
	store := NewStore(SeedProducts(), DefaultFilterOptions())

	t.Run("known id", func(t *testing.T) {
		p, ok := store.Get("2")
		if !ok {
			t.Fatal("expected product 2 to exist")
		}
		if p.Name != "Classic Abaya" {
			t.Errorf("expected Classic Abaya, got %s", p.Name)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, ok := store.Get("404"); ok {
			t.Error("expected product 404 to be missing")
		}
	})
}

func TestStore_Categories(t *testing.T) {
	store := NewStore(SeedProducts(), DefaultFilterOptions())

	want := map[string]int{
		"all":         10,
		"dresses":     5,
		"abayas":      2,
		"sets":        1,
		"tops":        0,
		"bottoms":     0,
		"outerwear":   1,
		"accessories": 1,
		"sale":        5,
	}

	categories := store.Categories()
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for _, c := range categories {
		if c.Count != want[c.ID] {
			t.Errorf("category %s: expected count %d, got %d", c.ID, want[c.ID], c.Count)
		}
	}
}

func TestStore_ReplaceDropsDuplicateIDs(t *testing.T) {
	store := NewStore(nil, DefaultFilterOptions())

	store.Replace([]domain.Product{
		{ID: "x", Name: "first"},
		{ID: "y", Name: "other"},
		{ID: "x", Name: "second"},
	})

	if got := len(store.List()); got != 2 {
		t.Fatalf("expected 2 products, got %d", got)
	}
	p, _ := store.Get("x")
	if p.Name != "first" {
		t.Errorf("expected first occurrence to win, got %s", p.Name)
	}
}

func TestStore_ListIsACopy(t *testing.T) {
	store := NewStore(SeedProducts(), DefaultFilterOptions())

	list := store.List()
	list[0].Name = "changed"

	p, _ := store.Get(list[0].ID)
	if p.Name == "changed" {
		t.Error("mutating List result changed the store")
	}
}

func TestStore_HasCategory(t *testing.T) {
	store := NewStore(nil, DefaultFilterOptions())

	for _, id := range []string{"all", "sale", "dresses"} {
		if !store.HasCategory(id) {
			t.Errorf("expected %s to be a category", id)
		}
	}
	if store.HasCategory("shoes") {
		t.Error("expected shoes to be unknown")
	}
}
