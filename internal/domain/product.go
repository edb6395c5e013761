package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	Discount      int                 `json:"discount,omitempty"`
	Image         string              `json:"image"`
	Images        []string            `json:"images,omitempty"`
	Category      string              `json:"category"`
	Description   string              `json:"description,omitempty"`
	Fabric        string              `json:"fabric,omitempty"`
	Care          string              `json:"care,omitempty"`
	Colors        []string            `json:"colors"`
	Sizes         []string            `json:"sizes"`
	InStock       bool                `json:"in_stock"`
	Rating        float64             `json:"rating"`
	Reviews       int                 `json:"reviews"`
	Featured      bool                `json:"featured"`
	IsNew         bool                `json:"is_new"`
}

// OnSale reports whether the product carries a discount.
func (p Product) OnSale() bool {
	return p.Discount > 0
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Image string `json:"image,omitempty"`
}

type PriceRange struct {
	Label string          `json:"label"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

type FilterOptions struct {
	Sizes       []string     `json:"sizes"`
	Colors      []string     `json:"colors"`
	PriceRanges []PriceRange `json:"price_ranges"`
	Fabrics     []string     `json:"fabrics"`
}
