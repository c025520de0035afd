package models

import (
	"ingresso/src/types"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Role  string `gorm:"default:'user'" json:"role,omitempty"`

	types.Timestamps
}
