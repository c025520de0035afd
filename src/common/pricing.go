package common

import (
	"ingresso/src/models"

	"github.com/shopspring/decimal"
)

// TicketPrice applies the coupon discount to a lot price. Inactive or absent
// coupons leave the price untouched.
func TicketPrice(lotPrice decimal.Decimal, coupon *models.Coupon) decimal.Decimal {
	if coupon == nil || !coupon.IsActive {
		return lotPrice
	}
	return lotPrice.Sub(lotPrice.Mul(coupon.Percentage))
}

// FinalTotal applies the event fee once to the sum of all ticket prices in a
// transaction.
func FinalTotal(totalValue, eventFee decimal.Decimal) decimal.Decimal {
	return totalValue.Add(totalValue.Mul(eventFee))
}
