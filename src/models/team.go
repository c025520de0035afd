package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
)

// Team groups the tickets created by one checkout entry. It has no identity
// beyond that grouping and is immutable after creation.
type Team struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Tickets []Ticket `json:"tickets,omitempty"`

	types.Timestamps
}
