package models

import (
	"ingresso/src/types"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ticket struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	UserID        uuid.UUID       `gorm:"type:uuid" json:"user_id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;index" json:"transaction_id"`
	TeamID        uuid.UUID       `gorm:"type:uuid" json:"team_id"`
	TicketLotID   uuid.UUID       `gorm:"type:uuid" json:"ticket_lot_id"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	CouponID      *uuid.UUID      `gorm:"type:uuid" json:"coupon_id,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Code          string          `gorm:"uniqueIndex" json:"code"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`

	User      User      `json:"user,omitempty"`
	Team      Team      `json:"team,omitempty"`
	TicketLot TicketLot `json:"ticket_lot,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Coupon    *Coupon   `json:"coupon,omitempty"`

	PersonalizedFieldAnswers []PersonalizedFieldAnswer `json:"personalized_field_answers,omitempty"`
	TermConfirmations        []TermTicketConfirmation  `json:"term_confirmations,omitempty"`

	types.Timestamps
}

type PersonalizedFieldAnswer struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	TicketID            uuid.UUID `gorm:"type:uuid;index" json:"ticket_id"`
	PersonalizedFieldID uuid.UUID `gorm:"type:uuid" json:"personalized_field_id"`
	Answer              string    `json:"answer"`

	types.Timestamps
}

type TermTicketConfirmation struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	TermID   uuid.UUID `gorm:"type:uuid" json:"term_id"`
	TicketID uuid.UUID `gorm:"type:uuid;index" json:"ticket_id"`

	types.Timestamps
}
