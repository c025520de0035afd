package models

import (
	"ingresso/src/types"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Status            types.TransactionStatus `gorm:"default:'PENDING'" json:"status"`
	TotalValue        decimal.Decimal         `gorm:"type:numeric(12,2)" json:"total_value"`
	PaymentMethod     types.PaymentMethod     `json:"payment_method"`
	ExternalPaymentId *string                 `gorm:"index" json:"external_payment_id,omitempty"`
	ExternalStatus    *string                 `json:"external_status,omitempty"`
	PixQRCode         *string                 `json:"pix_qr_code,omitempty"`
	PaidAt            *time.Time              `json:"paid_at,omitempty"`
	CancelledAt       *time.Time              `json:"cancelled_at,omitempty"`
	RefundedAt        *time.Time              `json:"refunded_at,omitempty"`
	CreatedById       uuid.UUID               `gorm:"type:uuid" json:"created_by_id"`
	Response          types.JSONB             `gorm:"type:jsonb" json:"-"`

	CreatedBy User     `gorm:"foreignKey:CreatedById" json:"-"`
	Tickets   []Ticket `json:"tickets,omitempty"`

	types.Timestamps
}
