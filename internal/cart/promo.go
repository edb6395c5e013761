package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

var ErrUnknownPromoCode = errors.New("invalid promo code")

// PromoTable maps uppercase codes to their definitions.
type PromoTable map[string]domain.PromoCode

func DefaultPromoTable() PromoTable {
	return PromoTable{
		"MODEST10":  {Code: "MODEST10", Discount: decimal.NewFromInt(10), Type: domain.PromoTypePercentage},
		"WELCOME20": {Code: "WELCOME20", Discount: decimal.NewFromInt(20), Type: domain.PromoTypePercentage},
		"SAVE50":    {Code: "SAVE50", Discount: decimal.NewFromInt(50), Type: domain.PromoTypeFixed},
	}
}

// Lookup finds a code case-insensitively.
func (t PromoTable) Lookup(code string) (domain.PromoCode, error) {
	promo, ok := t[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.PromoCode{}, ErrUnknownPromoCode
	}
	return promo, nil
}
