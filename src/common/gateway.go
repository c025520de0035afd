package common

import (
	"context"
	"fmt"
	"ingresso/src/config"
	"ingresso/src/lib"
	"ingresso/src/models"
	"ingresso/src/types"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// PaymentGateway hands a persisted checkout transaction to an external
// payment provider. Implementations are selected from the registry by
// payment method, so adding a gateway never touches the dispatch path.
type PaymentGateway interface {
	ProcessPayment(txn *models.Transaction, dto *types.CreateCheckoutRequestBody) (*types.PaymentResult, error)
}

var gateways = map[types.PaymentMethod]PaymentGateway{
	types.PAYMENT_PIX:         &MercadoPagoGateway{},
	types.PAYMENT_CREDIT_CARD: &MercadoPagoGateway{},
	types.PAYMENT_BOLETO:      &MercadoPagoGateway{},
	types.PAYMENT_STRIPE:      &StripeGateway{},
}

// ProcessPayment routes a completed checkout to the gateway registered for
// its payment method.
func ProcessPayment(txn *models.Transaction, dto *types.CreateCheckoutRequestBody) (*types.PaymentResult, error) {
	gateway, ok := gateways[dto.PaymentData.PaymentMethod]
	if !ok {
		return nil, ErrUnsupportedGateway
	}
	return gateway.ProcessPayment(txn, dto)
}

type MercadoPagoGateway struct{}

func mercadoPagoMethodId(method types.PaymentMethod) string {
	switch method {
	case types.PAYMENT_PIX:
		return "pix"
	case types.PAYMENT_BOLETO:
		return "bolbradesco"
	default:
		return ""
	}
}

func (g *MercadoPagoGateway) ProcessPayment(txn *models.Transaction, dto *types.CreateCheckoutRequestBody) (*types.PaymentResult, error) {
	amount, _ := txn.TotalValue.Float64()
	params := &lib.MercadoPagoPaymentRequest{
		TransactionAmount: amount,
		Description:       fmt.Sprintf("Inscricao %s", txn.ID),
		PaymentMethodID:   mercadoPagoMethodId(dto.PaymentData.PaymentMethod),
		ExternalReference: txn.ID.String(),
		Payer:             lib.MercadoPagoPayer{Email: dto.PaymentData.PayerEmail},
	}
	if dto.PaymentData.PaymentMethod == types.PAYMENT_CREDIT_CARD {
		params.Token = dto.PaymentData.CardToken
		params.Installments = dto.PaymentData.Installments
	}

	payment, err := lib.MercadoPagoCreatePayment(params)
	if err != nil {
		return nil, err
	}

	// The create response already carries status, id and the PIX QR; run it
	// through the same reconciliation path a webhook would take.
	updated, err := UpdateCheckoutTransaction(payment)
	if err != nil {
		return nil, err
	}

	result := &types.PaymentResult{PixQRCode: updated.PixQRCode}
	if updated.PixQRCode != nil {
		if rd := lib.GetRedisClient(); rd != nil {
			key := fmt.Sprintf("pix:%s", txn.ID)
			if err := rd.SetEx(context.Background(), key, *updated.PixQRCode, 24*time.Hour).Err(); err != nil {
				log.Printf("Error caching PIX code for %s: %s\n", txn.ID, err.Error())
			}
		}
	}
	if payment.PointOfInteraction != nil &&
		payment.PointOfInteraction.TransactionData != nil &&
		payment.PointOfInteraction.TransactionData.TicketURL != "" {
		url := payment.PointOfInteraction.TransactionData.TicketURL
		result.URL = &url
	}
	return result, nil
}

type StripeGateway struct{}

// StripeCheckoutSessionParams builds one line item per ticket with the unit
// amount in minor currency units.
func StripeCheckoutSessionParams(txn *models.Transaction, currency string) *stripe.CheckoutSessionCreateParams {
	if currency == "" {
		currency = "usd"
	}
	frontend := config.GetFrontendURL()
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(txn.Tickets))
	cents := decimal.NewFromInt(100)
	for _, ticket := range txn.Tickets {
		unitAmount := ticket.Price.Mul(cents).Round(0).IntPart()
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(ticket.TicketLot.Name),
				},
				UnitAmount: stripe.Int64(unitAmount),
			},
			Quantity: stripe.Int64(1),
		})
	}
	return &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		Metadata:           map[string]string{"transactionId": txn.ID.String()},
		SuccessURL:         stripe.String(fmt.Sprintf("%s/pagamento/%s?success=true", frontend, txn.ID)),
		CancelURL:          stripe.String(fmt.Sprintf("%s/pagamento/%s?canceled=true", frontend, txn.ID)),
	}
}

func (g *StripeGateway) ProcessPayment(txn *models.Transaction, dto *types.CreateCheckoutRequestBody) (*types.PaymentResult, error) {
	sc := lib.GetStripeClient()
	params := StripeCheckoutSessionParams(txn, dto.PaymentData.Currency)
	session, err := sc.V1CheckoutSessions.Create(context.Background(), params)
	if err != nil {
		log.Printf("Error creating Stripe checkout session for %s: %s\n", txn.ID, err.Error())
		return nil, err
	}
	return &types.PaymentResult{URL: &session.URL}, nil
}
