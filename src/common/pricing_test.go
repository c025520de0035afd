package common

import (
	"ingresso/src/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTicketPrice(t *testing.T) {
	lotPrice := decimal.NewFromInt(100)

	t.Run("Should return the lot price without a coupon", func(t *testing.T) {
		price := TicketPrice(lotPrice, nil)
		assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)
	})

	t.Run("Should apply a percentage discount", func(t *testing.T) {
		coupon := &models.Coupon{
			Percentage: decimal.NewFromFloat(0.2),
			IsActive:   true,
		}
		price := TicketPrice(lotPrice, coupon)
		assert.True(t, price.Equal(decimal.NewFromInt(80)), "got %s", price)
	})

	t.Run("Should ignore an inactive coupon", func(t *testing.T) {
		coupon := &models.Coupon{
			Percentage: decimal.NewFromFloat(0.2),
			IsActive:   false,
		}
		price := TicketPrice(lotPrice, coupon)
		assert.True(t, price.Equal(decimal.NewFromInt(100)), "got %s", price)
	})

	t.Run("Should keep exact decimals on awkward percentages", func(t *testing.T) {
		coupon := &models.Coupon{
			Percentage: decimal.NewFromFloat(0.1),
			IsActive:   true,
		}
		price := TicketPrice(decimal.RequireFromString("33.30"), coupon)
		assert.True(t, price.Equal(decimal.RequireFromString("29.97")), "got %s", price)
	})
}

func TestFinalTotal(t *testing.T) {
	t.Run("Should add the event fee on top of the subtotal", func(t *testing.T) {
		subtotal := decimal.NewFromInt(200)
		fee := decimal.NewFromFloat(0.1)
		total := FinalTotal(subtotal, fee)
		assert.True(t, total.Equal(decimal.NewFromInt(220)), "got %s", total)
	})

	t.Run("Should leave the subtotal untouched on a zero fee", func(t *testing.T) {
		subtotal := decimal.RequireFromString("149.90")
		total := FinalTotal(subtotal, decimal.Zero)
		assert.True(t, total.Equal(subtotal), "got %s", total)
	})

	t.Run("Should combine coupon and fee the way a two-ticket checkout does", func(t *testing.T) {
		coupon := &models.Coupon{
			Percentage: decimal.NewFromFloat(0.2),
			IsActive:   true,
		}
		lotPrice := decimal.NewFromInt(100)
		subtotal := TicketPrice(lotPrice, coupon).Add(TicketPrice(lotPrice, coupon))
		total := FinalTotal(subtotal, decimal.NewFromFloat(0.1))
		assert.True(t, total.Equal(decimal.NewFromInt(176)), "got %s", total)
	})
}
