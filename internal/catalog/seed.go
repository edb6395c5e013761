package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func originalPrice(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// SeedProducts returns the built-in catalogue used when no other product
// source is configured.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Elegant Maxi Dress",
			Price:         price("89.99"),
			OriginalPrice: originalPrice("129.99"),
			Discount:      31,
			Image:         "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=600",
			Category:      "dresses",
			Description:   "A flowing maxi dress with a modest silhouette and elegant draping.",
			Fabric:        "95% Polyester, 5% Spandex",
			Care:          "Machine wash cold, hang dry",
			Colors:        []string{"Black", "Navy", "Burgundy"},
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			InStock:       true,
			Rating:        4.5,
			Reviews:       127,
			Featured:      true,
		},
		{
			ID:          "2",
			Name:        "Classic Abaya",
			Price:       price("119.99"),
			Image:       "https://images.example.com/catalog/classic-abaya.jpeg",
			Category:    "abayas",
			Description: "Traditional abaya with delicate embroidery and premium fabric.",
			Fabric:      "100% Premium Cotton",
			Care:        "Hand wash recommended",
			Colors:      []string{"Black", "Charcoal"},
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Rating:      4.8,
			Reviews:     89,
			Featured:    true,
		},
		{
			ID:            "3",
			Name:          "Two-Piece Modest Set",
			Price:         price("79.99"),
			OriginalPrice: originalPrice("99.99"),
			Discount:      20,
			Image:         "https://images.example.com/catalog/two-piece-set.jpeg",
			Category:      "sets",
			Description:   "Coordinated two-piece set with pleated skirt and matching blazer.",
			Fabric:        "70% Viscose, 30% Linen",
			Care:          "Machine wash gentle cycle",
			Colors:        []string{"Beige", "Olive", "Dusty Rose"},
			Sizes:         []string{"XS", "S", "M", "L", "XL", "XXL"},
			InStock:       true,
			Rating:        4.6,
			Reviews:       203,
		},
		{
			ID:          "4",
			Name:        "Denim Dress",
			Price:       price("49.99"),
			Image:       "https://images.example.com/catalog/denim-dress.jpeg",
			Category:    "dresses",
			Description: "Robust blue cuffed drop shoulder denim dress.",
			Fabric:      "100% Cotton",
			Care:        "Machine wash cold",
			Colors:      []string{"White", "Cream", "Black", "Navy"},
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Rating:      4.4,
			Reviews:     156,
		},
		{
			ID:            "5",
			Name:          "Silk Diana Dress",
			Price:         price("349.99"),
			OriginalPrice: originalPrice("499.99"),
			Discount:      30,
			Image:         "https://images.example.com/catalog/silk-diana-dress.jpeg",
			Category:      "dresses",
			Description:   "Elegant silk dress for special occasions.",
			Fabric:        "100% Silk",
			Care:          "Dry clean only",
			Colors:        []string{"Ivory", "Sage Green", "Beige"},
			Sizes:         []string{"XS", "S", "M", "L"},
			InStock:       true,
			Rating:        4.7,
			Reviews:       94,
			Featured:      true,
			IsNew:         true,
		},
		{
			ID:          "6",
			Name:        "Premium Silk Abaya",
			Price:       price("399.99"),
			Image:       "https://images.example.com/catalog/premium-silk-abaya.jpeg",
			Category:    "abayas",
			Description: "Luxurious silk abaya with sophisticated draping.",
			Fabric:      "100% Silk",
			Care:        "Dry clean only",
			Colors:      []string{"Black", "Deep Purple", "Forest Green", "Icy Blue"},
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     false,
			Rating:      4.9,
			Reviews:     45,
		},
		{
			ID:          "7",
			Name:        "Modest Batwing Dress",
			Price:       price("354.99"),
			Image:       "https://images.example.com/catalog/batwing-dress.jpeg",
			Category:    "dresses",
			Description: "Wrap front ripple satin maxi dress with wide sleeves.",
			Fabric:      "100% Satin",
			Care:        "Machine wash cold",
			Colors:      []string{"Black", "Navy", "Beige", "Olive Green"},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			InStock:     true,
			Rating:      4.3,
			Reviews:     78,
		},
		{
			ID:            "8",
			Name:          "Hijab Scarf - Premium Chiffon",
			Price:         price("94.99"),
			OriginalPrice: originalPrice("134.99"),
			Discount:      29,
			Image:         "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?w=600",
			Category:      "accessories",
			Description:   "Soft and breathable premium chiffon hijab.",
			Fabric:        "100% Chiffon",
			Care:          "Hand wash gentle",
			Colors:        []string{"Black", "White", "Beige", "Navy", "Burgundy", "Dusty Rose"},
			Sizes:         []string{"One Size"},
			InStock:       true,
			Rating:        4.6,
			Reviews:       234,
			IsNew:         true,
		},
		{
			ID:          "9",
			Name:        "Mandarin Collar Dress",
			Price:       price("259.99"),
			Image:       "https://images.example.com/catalog/mandarin-collar-dress.jpeg",
			Category:    "outerwear",
			Description: "Long modest layer with a relaxed fit and soft fabric.",
			Fabric:      "80% Acrylic, 20% Wool",
			Care:        "Machine wash gentle, lay flat to dry",
			Colors:      []string{"Charcoal", "Cream", "Camel"},
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Rating:      4.5,
			Reviews:     112,
		},
		{
			ID:            "10",
			Name:          "Evening Formal Dress",
			Price:         price("349.99"),
			OriginalPrice: originalPrice("499.99"),
			Discount:      25,
			Image:         "https://images.example.com/catalog/evening-formal-dress.jpeg",
			Category:      "dresses",
			Description:   "Evening dress for weddings and formal events.",
			Fabric:        "100% Silk & Satin",
			Care:          "Dry clean only",
			Colors:        []string{"Navy", "Emerald", "Burgundy", "Dark Brown"},
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			InStock:       true,
			Rating:        4.8,
			Reviews:       67,
			Featured:      true,
			IsNew:         true,
		},
	}
}

// categoryNames lists the browsable categories in display order. "all" and
// "sale" are pseudo-categories resolved by the filter engine.
var categoryNames = []struct{ id, name string }{
	{CategoryAll, "All Products"},
	{"dresses", "Dresses"},
	{"abayas", "Abayas"},
	{"sets", "Sets"},
	{"tops", "Tops"},
	{"bottoms", "Bottoms"},
	{"outerwear", "Outerwear"},
	{"accessories", "Accessories"},
	{CategorySale, "Sale"},
}

// DefaultFilterOptions is the facet metadata offered to shoppers.
func DefaultFilterOptions() domain.FilterOptions {
	return domain.FilterOptions{
		Sizes:  []string{"XS", "S", "M", "L", "XL", "XXL"},
		Colors: []string{"Black", "White", "Navy", "Burgundy", "Beige", "Olive", "Dusty Rose", "Cream", "Sage Green", "Dusty Blue", "Charcoal"},
		PriceRanges: []domain.PriceRange{
			{Label: "Under R250", Min: decimal.Zero, Max: decimal.NewFromInt(250)},
			{Label: "R250 - R350", Min: decimal.NewFromInt(250), Max: decimal.NewFromInt(350)},
			{Label: "R350 - R450", Min: decimal.NewFromInt(350), Max: decimal.NewFromInt(450)},
			{Label: "Over R450", Min: decimal.NewFromInt(450), Max: decimal.NewFromInt(10000)},
		},
		Fabrics: []string{"Cotton", "Polyester", "Silk", "Linen", "Viscose", "Chiffon", "Rayon"},
	}
}
