package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	// EventFee is a ratio applied once to the sum of all ticket prices in a
	// checkout, not per ticket.
	EventFee decimal.Decimal `gorm:"type:numeric(6,4);default:0" json:"event_fee"`

	TicketTypes []TicketType `json:"ticket_types,omitempty"`
	Coupons     []Coupon     `json:"coupons,omitempty"`

	types.Timestamps
}
