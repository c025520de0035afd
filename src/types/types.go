package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// TransactionStatus is the canonical, gateway-agnostic status vocabulary.
// Gateways report their own raw strings; those are persisted verbatim on the
// transaction next to the mapped value.
type TransactionStatus string

const (
	TRANSACTION_PENDING      TransactionStatus = "PENDING"
	TRANSACTION_APPROVED     TransactionStatus = "APPROVED"
	TRANSACTION_AUTHORIZED   TransactionStatus = "AUTHORIZED"
	TRANSACTION_IN_PROCESS   TransactionStatus = "IN_PROCESS"
	TRANSACTION_IN_MEDIATION TransactionStatus = "IN_MEDIATION"
	TRANSACTION_REJECTED     TransactionStatus = "REJECTED"
	TRANSACTION_CANCELLED    TransactionStatus = "CANCELLED"
	TRANSACTION_REFUNDED     TransactionStatus = "REFUNDED"
	TRANSACTION_CHARGED_BACK TransactionStatus = "CHARGED_BACK"
)

type PaymentMethod string

const (
	PAYMENT_PIX         PaymentMethod = "PIX"
	PAYMENT_CREDIT_CARD PaymentMethod = "CREDIT_CARD"
	PAYMENT_BOLETO      PaymentMethod = "BOLETO"
	PAYMENT_STRIPE      PaymentMethod = "STRIPE"
	PAYMENT_FREE        PaymentMethod = "FREE"
)

type PersonalFieldAnswerBody struct {
	PersonalizedFieldID string `json:"personalized_field_id" binding:"required,uuid"`
	Answer              string `json:"answer"`
}

type CheckoutPlayerBody struct {
	UserID         string                    `json:"user_id" binding:"required,uuid"`
	CategoryID     *string                   `json:"category_id,omitempty" binding:"omitempty,uuid"`
	PersonalFields []PersonalFieldAnswerBody `json:"personal_fields,omitempty"`
}

type CheckoutTeamBody struct {
	TicketTypeID string               `json:"ticket_type_id" binding:"required,uuid"`
	Players      []CheckoutPlayerBody `json:"players" binding:"required,min=1"`
}

type CheckoutTermBody struct {
	TermID string `json:"term_id" binding:"required,uuid"`
}

type PaymentDataBody struct {
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,paymentmethod"`
	Currency      string        `json:"currency,omitempty"`
	PayerEmail    string        `json:"payer_email,omitempty" binding:"omitempty,email"`
	CardToken     string        `json:"card_token,omitempty"`
	Installments  int           `json:"installments,omitempty"`
}

type CreateCheckoutRequestBody struct {
	Teams       []CheckoutTeamBody `json:"teams" binding:"required,min=1"`
	CouponID    *string            `json:"coupon_id,omitempty" binding:"omitempty,uuid"`
	Terms       []CheckoutTermBody `json:"terms,omitempty"`
	PaymentData PaymentDataBody    `json:"payment_data" binding:"required"`
}

type CreateFreeCheckoutRequestBody struct {
	Team  CheckoutTeamBody   `json:"team" binding:"required"`
	Terms []CheckoutTermBody `json:"terms,omitempty"`
}

type CreateCategoryRequestBody struct {
	TicketTypeID string `json:"ticket_type_id" binding:"required,uuid"`
	Title        string `json:"title" binding:"required"`
	Quantity     uint   `json:"quantity" binding:"required"`
}

type UpdateCategoryRequestBody struct {
	Title    *string `json:"title,omitempty"`
	Quantity *uint   `json:"quantity,omitempty"`
}

// Inbound Mercado Pago webhook notification. Only the payment id is taken
// from the body; the full payment resource is always re-fetched from the API.
type MercadoPagoWebhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

type TransactionURIParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type SimpleURIParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PaymentResult is what a gateway hands back after dispatch: a hosted
// checkout URL (Stripe, boleto) or a PIX copy-and-paste code.
type PaymentResult struct {
	URL       *string `json:"url,omitempty"`
	PixQRCode *string `json:"pix_qr_code,omitempty"`
}
