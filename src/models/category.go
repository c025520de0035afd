package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
)

type Category struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	TicketTypeID uuid.UUID `gorm:"type:uuid;index" json:"ticket_type_id"`
	Title        string    `json:"title"`
	Quantity     uint      `json:"quantity"`
	SoldQuantity uint      `gorm:"default:0" json:"sold_quantity"`

	types.Timestamps
}
