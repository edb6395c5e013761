package catalog

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func bound(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestFilter(t *testing.T) {
	products := SeedProducts()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "no criteria keeps everything",
			criteria: Criteria{},
			want:     []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		},
		{
			name:     "all pseudo-category keeps everything",
			criteria: Criteria{CategoryID: CategoryAll},
			want:     []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		},
		{
			name:     "exact category",
			criteria: Criteria{CategoryID: "abayas"},
			want:     []string{"2", "6"},
		},
		{
			name:     "sale selects discounted products",
			criteria: Criteria{CategoryID: CategorySale},
			want:     []string{"1", "3", "5", "8", "10"},
		},
		{
			name:     "unknown category is empty",
			criteria: Criteria{CategoryID: "shoes"},
			want:     []string{},
		},
		{
			name:     "search is case-insensitive substring on name",
			criteria: Criteria{Search: "  DRESS "},
			want:     []string{"1", "4", "5", "7", "9", "10"},
		},
		{
			name:     "new only",
			criteria: Criteria{NewOnly: true},
			want:     []string{"5", "8", "10"},
		},
		{
			name:     "sizes match any requested size",
			criteria: Criteria{Sizes: []string{"XXL", "One Size"}},
			want:     []string{"3", "8"},
		},
		{
			name:     "colors match any requested color",
			criteria: Criteria{Colors: []string{"Camel", "Icy Blue"}},
			want:     []string{"6", "9"},
		},
		{
			name:     "inclusive price bounds",
			criteria: Criteria{MinPrice: bound("79.99"), MaxPrice: bound("94.99")},
			want:     []string{"1", "3", "8"},
		},
		{
			name:     "inverted price range is empty",
			criteria: Criteria{MinPrice: bound("300"), MaxPrice: bound("100")},
			want:     []string{},
		},
		{
			name: "criteria combine conjunctively",
			criteria: Criteria{
				CategoryID: "dresses",
				Colors:     []string{"Navy"},
				Sizes:      []string{"XS"},
				MaxPrice:   bound("350"),
			},
			want: []string{"1", "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(products, tt.criteria))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	products := SeedProducts()

	criteria := []Criteria{
		{},
		{CategoryID: CategorySale, Sort: SortPriceHigh},
		{Search: "abaya", Sort: SortRating},
		{Colors: []string{"Black"}, Sort: SortNewest},
		{Sizes: []string{"M"}, MinPrice: bound("100"), Sort: SortPriceLow},
	}

	for _, c := range criteria {
		once := Apply(products, c)
		twice := Apply(once, c)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("criteria %+v: expected %v, got %v", c, ids(once), ids(twice))
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := SeedProducts()
	before := ids(products)

	_ = Apply(products, Criteria{Sort: SortPriceLow})

	if !slices.Equal(before, ids(products)) {
		t.Errorf("input reordered: %v", ids(products))
	}
}

func TestSort(t *testing.T) {
	products := SeedProducts()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortPriceLow, []string{"4", "3", "1", "8", "2", "9", "5", "10", "7", "6"}},
		{SortPriceHigh, []string{"6", "7", "5", "10", "9", "2", "8", "1", "3", "4"}},
		{SortNewest, []string{"5", "8", "10", "1", "2", "3", "4", "6", "7", "9"}},
		{SortRating, []string{"6", "2", "10", "5", "3", "8", "1", "9", "4", "7"}},
		{SortFeatured, []string{"1", "2", "5", "10", "3", "4", "6", "7", "8", "9"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := Apply(products, Criteria{Sort: tt.key})
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestSort_Stable(t *testing.T) {
	same := decimal.RequireFromString("50")
	products := []domain.Product{
		{ID: "a", Price: same, Rating: 4},
		{ID: "b", Price: decimal.RequireFromString("10"), Rating: 5},
		{ID: "c", Price: same, Rating: 4},
		{ID: "d", Price: same, Rating: 4},
	}

	for _, key := range []SortKey{SortPriceLow, SortPriceHigh, SortRating, SortNewest, SortFeatured} {
		got := Apply(products, Criteria{Sort: key})

		var tied []string
		for _, p := range got {
			if p.ID != "b" {
				tied = append(tied, p.ID)
			}
		}
		if !slices.Equal(tied, []string{"a", "c", "d"}) {
			t.Errorf("sort %s: tied elements reordered: %v", key, ids(got))
		}
	}
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"price-low":  SortPriceLow,
		"price-high": SortPriceHigh,
		"newest":     SortNewest,
		"rating":     SortRating,
		"featured":   SortFeatured,
		"":           SortFeatured,
		"bogus":      SortFeatured,
	}
	for in, want := range tests {
		if got := ParseSortKey(in); got != want {
			t.Errorf("ParseSortKey(%q) = %s, want %s", in, got, want)
		}
	}
}
