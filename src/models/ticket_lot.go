package models

import (
	"ingresso/src/types"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketLot is a time-boxed slice of purchasable inventory for a ticket type.
// SoldQuantity is only ever mutated through the counter helpers in
// src/common/counters.go.
type TicketLot struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name         string          `json:"name"`
	TicketTypeID uuid.UUID       `gorm:"type:uuid;index" json:"ticket_type_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Quantity     uint            `json:"quantity"`
	SoldQuantity uint            `gorm:"default:0" json:"sold_quantity"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`

	TicketType TicketType `json:"ticket_type,omitempty"`

	types.Timestamps
}
