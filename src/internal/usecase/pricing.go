package usecase

import (
	"fmt"
	"time"

	"transfer-service/src/internal/entity"
	"transfer-service/src/pkg/utils"
)

// Quote is the pricing breakdown for one booking. Promo is the resolved code
// when a discount was applied, PromoReason explains why a submitted code was
// ignored. Computing a quote has no side effects, usage counters are only
// touched inside the booking transaction.
type Quote struct {
	OriginalPrice  float64
	DiscountAmount float64
	TotalPrice     float64
	Commission     float64
	SupplierPayout float64
	Promo          *entity.PromoCode
	PromoReason    string
}

// EvaluatePromo is the eligibility predicate over the promo's current
// counters. An ineligible code never fails the booking, the caller proceeds
// at full price and surfaces the reason.
func EvaluatePromo(promo *entity.PromoCode, originalPrice float64, priorUses int, now time.Time) (bool, string) {
	if promo == nil {
		return false, "promo code not found"
	}
	if !promo.IsActive {
		return false, "promo code is not active"
	}
	if now.Before(promo.ValidFrom) || now.After(promo.ValidUntil) {
		return false, "promo code is outside its validity window"
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return false, "promo code usage limit reached"
	}
	if originalPrice < promo.MinAmount {
		return false, fmt.Sprintf("booking amount below the promo minimum of %s", utils.FormatMoney(promo.MinAmount))
	}
	if promo.UserLimit > 0 && priorUses >= promo.UserLimit {
		return false, "promo code already used the maximum number of times for this customer"
	}
	return true, ""
}

// CalculateQuote computes the full monetary breakdown: base plus per-extra
// passenger surcharge, promo discount with cap and original-price clamp, and
// the supplier/platform commission split. All amounts are rounded half up to
// two decimals.
func CalculateQuote(tariff *entity.Tariff, paxAdults int, promo *entity.PromoCode, priorUses int, now time.Time) Quote {
	basePrice := tariff.BasePrice
	if paxAdults > 1 && tariff.PricePerPax != nil {
		basePrice += *tariff.PricePerPax * float64(paxAdults-1)
	}

	quote := Quote{
		OriginalPrice: utils.RoundMoney(basePrice),
	}

	if promo != nil {
		eligible, reason := EvaluatePromo(promo, quote.OriginalPrice, priorUses, now)
		if eligible {
			quote.Promo = promo
			quote.DiscountAmount = discountFor(promo, quote.OriginalPrice)
		} else {
			quote.PromoReason = reason
		}
	}

	quote.TotalPrice = utils.RoundMoney(quote.OriginalPrice - quote.DiscountAmount)
	quote.Commission = utils.RoundMoney(quote.TotalPrice * tariff.CommissionRate / 100)
	quote.SupplierPayout = utils.RoundMoney(quote.TotalPrice - quote.Commission)

	return quote
}

// WithoutPromo recomputes the same quote at full price, used when the guarded
// usage increment loses the race at commit time.
func (q Quote) WithoutPromo(tariff *entity.Tariff, reason string) Quote {
	commission := utils.RoundMoney(q.OriginalPrice * tariff.CommissionRate / 100)
	return Quote{
		OriginalPrice:  q.OriginalPrice,
		TotalPrice:     q.OriginalPrice,
		Commission:     commission,
		SupplierPayout: utils.RoundMoney(q.OriginalPrice - commission),
		PromoReason:    reason,
	}
}

func discountFor(promo *entity.PromoCode, originalPrice float64) float64 {
	var discount float64
	switch promo.DiscountType {
	case entity.DiscountTypePercentage:
		discount = originalPrice * promo.DiscountValue / 100
	case entity.DiscountTypeFixed:
		discount = promo.DiscountValue
	default:
		return 0
	}

	if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
		discount = *promo.MaxDiscount
	}
	if discount > originalPrice {
		discount = originalPrice
	}

	return utils.RoundMoney(discount)
}
