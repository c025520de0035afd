package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"ingresso/src/config"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var mpHTTPClient = &http.Client{Timeout: 15 * time.Second}

// NewMercadoPagoHTTPClient Replace the http client used for Mercado Pago calls
func NewMercadoPagoHTTPClient(c *http.Client) {
	mpHTTPClient = c
}

type MercadoPagoPayer struct {
	Email string `json:"email,omitempty"`
}

type MercadoPagoPaymentRequest struct {
	TransactionAmount float64          `json:"transaction_amount"`
	Description       string           `json:"description,omitempty"`
	PaymentMethodID   string           `json:"payment_method_id"`
	Token             string           `json:"token,omitempty"`
	Installments      int              `json:"installments,omitempty"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	Payer             MercadoPagoPayer `json:"payer"`
}

type MercadoPagoTransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

type MercadoPagoPointOfInteraction struct {
	TransactionData *MercadoPagoTransactionData `json:"transaction_data"`
}

// MercadoPagoPayment models only the fields this service reads from the
// payment resource. Raw carries the payload verbatim for the audit column.
type MercadoPagoPayment struct {
	ID                        int64                          `json:"id"`
	Status                    string                         `json:"status"`
	StatusDetail              string                         `json:"status_detail"`
	ExternalReference         string                         `json:"external_reference"`
	TransactionAmount         float64                        `json:"transaction_amount"`
	TransactionAmountRefunded float64                        `json:"transaction_amount_refunded"`
	PaymentMethodID           string                         `json:"payment_method_id"`
	PointOfInteraction        *MercadoPagoPointOfInteraction `json:"point_of_interaction"`

	Raw map[string]any `json:"-"`
}

func (p *MercadoPagoPayment) PixQRCode() *string {
	if p.PointOfInteraction == nil || p.PointOfInteraction.TransactionData == nil {
		return nil
	}
	if p.PointOfInteraction.TransactionData.QRCode == "" {
		return nil
	}
	qr := p.PointOfInteraction.TransactionData.QRCode
	return &qr
}

func decodeMercadoPagoPayment(body []byte) (*MercadoPagoPayment, error) {
	var payment MercadoPagoPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &payment.Raw); err != nil {
		return nil, err
	}
	return &payment, nil
}

// MercadoPagoGetPayment fetches the full payment resource by id. Webhook
// notifications only carry the id; the state applied to a transaction always
// comes from this fetch.
func MercadoPagoGetPayment(paymentId string) (*MercadoPagoPayment, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", config.GetMercadoPagoBaseURL(), paymentId)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.GetMercadoPagoToken()))
	req.Header.Set("Content-Type", "application/json")

	res, err := mpHTTPClient.Do(req)
	if err != nil {
		log.Printf("[MercadoPago] fetch failed | id=%s: %s\n", paymentId, err.Error())
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Printf("[MercadoPago] fetch returned %d | id=%s\n", res.StatusCode, paymentId)
		return nil, fmt.Errorf("mercado pago returned status %d for payment %s", res.StatusCode, paymentId)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return decodeMercadoPagoPayment(body)
}

// MercadoPagoCreatePayment creates a payment for a checkout transaction.
func MercadoPagoCreatePayment(params *MercadoPagoPaymentRequest) (*MercadoPagoPayment, error) {
	url := fmt.Sprintf("%s/v1/payments", config.GetMercadoPagoBaseURL())
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.GetMercadoPagoToken()))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.New().String())

	res, err := mpHTTPClient.Do(req)
	if err != nil {
		log.Printf("[MercadoPago] create payment failed | ref=%s: %s\n", params.ExternalReference, err.Error())
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		log.Printf("[MercadoPago] create payment returned %d | ref=%s body=%s\n", res.StatusCode, params.ExternalReference, string(body))
		return nil, fmt.Errorf("mercado pago returned status %d", res.StatusCode)
	}
	return decodeMercadoPagoPayment(body)
}
