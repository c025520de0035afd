package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
)

type TicketType struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name    string    `json:"name"`
	EventID uuid.UUID `gorm:"type:uuid;index" json:"event_id"`

	Event      Event       `json:"event,omitempty"`
	TicketLots []TicketLot `json:"ticket_lots,omitempty"`
	Categories []Category  `json:"categories,omitempty"`

	types.Timestamps
}
