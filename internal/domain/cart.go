package domain

import "github.com/shopspring/decimal"

// LineKey identifies a cart line. Two lines never share a key.
type LineKey struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Color    string  `json:"color"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Color: l.Color, Size: l.Size}
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type PromoType string

const (
	PromoTypePercentage PromoType = "percentage"
	PromoTypeFixed      PromoType = "fixed"
)

type PromoCode struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Type     PromoType       `json:"type"`
}

// PercentOff is the percentage applied to the subtotal. Fixed-amount codes
// are not honored and yield zero.
func (p PromoCode) PercentOff() decimal.Decimal {
	if p.Type != PromoTypePercentage {
		return decimal.Zero
	}
	return p.Discount
}
