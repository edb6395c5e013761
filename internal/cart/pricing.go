package cart

import (
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

type PricingConfig struct {
	// Orders with a subtotal strictly above the threshold ship for free.
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Rounded returns the totals rounded to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Shipping: t.Shipping.Round(2),
		Tax:      t.Tax.Round(2),
		Discount: t.Discount.Round(2),
		Total:    t.Total.Round(2),
	}
}

// FreeShippingRemaining is how much more must be spent to ship for free.
func (t Totals) FreeShippingRemaining(cfg PricingConfig) decimal.Decimal {
	if t.Subtotal.GreaterThan(cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	return cfg.FreeShippingThreshold.Sub(t.Subtotal)
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals prices a set of lines. Every component is clamped at zero
// and an empty cart costs nothing.
func ComputeTotals(lines []domain.CartLine, promo *domain.PromoCode, cfg PricingConfig) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	subtotal = nonNegative(subtotal)

	shipping := decimal.Zero
	if len(lines) > 0 && !subtotal.GreaterThan(cfg.FreeShippingThreshold) {
		shipping = nonNegative(cfg.FlatShippingFee)
	}

	tax := nonNegative(subtotal.Mul(cfg.TaxRate))

	discount := decimal.Zero
	if promo != nil {
		discount = nonNegative(subtotal.Mul(promo.PercentOff()).Div(hundred))
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    nonNegative(subtotal.Add(shipping).Add(tax).Sub(discount)),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
