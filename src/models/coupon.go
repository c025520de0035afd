package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name    string    `json:"name"`
	EventID uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	// Percentage is the discount ratio, e.g. 0.2 takes 20% off the lot price.
	Percentage   decimal.Decimal `gorm:"type:numeric(6,4)" json:"percentage"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	Quantity     uint            `json:"quantity"`
	SoldQuantity uint            `gorm:"default:0" json:"sold_quantity"`

	types.Timestamps
}
