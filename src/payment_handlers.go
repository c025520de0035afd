package main

import (
	"encoding/json"
	"errors"
	"ingresso/src/common"
	"ingresso/src/config"
	"ingresso/src/lib"
	"ingresso/src/types"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func paymentWebhookRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/mercado-pago", func(ctx *gin.Context) {
		var body types.MercadoPagoWebhookBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			log.Printf("Error reading webhook body: %s\n", err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload."})
			return
		}
		paymentId := body.Data.ID.String()
		if body.Type != "payment" || paymentId == "" {
			log.Printf("Invalid webhook | type=%s id=%s\n", body.Type, paymentId)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload."})
			return
		}
		log.Printf("Webhook received | id=%s\n", paymentId)

		payment, err := lib.MercadoPagoGetPayment(paymentId)
		if err != nil {
			log.Printf("Payment not found | id=%s: %s\n", paymentId, err.Error())
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Payment data not found."})
			return
		}

		txn, err := common.UpdateCheckoutTransaction(payment)
		if err != nil {
			log.Printf("Tx update failed | payment=%d: %s\n", payment.ID, err.Error())
			if errors.Is(err, common.ErrTransactionNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found."})
				return
			}
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction."})
			return
		}

		if err := common.HandleTransactionByStatus(txn.ID.String(), txn.Status); err != nil {
			log.Printf("Webhook error | Tx %s: %s\n", txn.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error processing webhook."})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"message": "Webhook processed."})
	})

	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := config.GetStripeWebhookSecret()
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			txId := pi.Metadata["transactionId"]
			if txId == "" {
				log.Printf("[Stripe] PaymentIntent %s carries no transactionId\n", pi.ID)
				break
			}
			txn, err := common.UpdateStripePaymentStatus(txId, pi.ID, string(pi.Status))
			if err != nil {
				log.Printf("[Stripe] Tx update failed | intent=%s: %s\n", pi.ID, err.Error())
				break
			}
			if err := common.HandleApprovedTransaction(txn.ID.String()); err != nil {
				log.Printf("[Stripe] Error completing delivery | Tx %s: %s\n", txn.ID, err.Error())
			}
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			// No state mutation on failure; the customer can retry the same
			// checkout session.
			log.Printf("[Stripe] payment failed: %s %s\n", pi.ID, string(pi.Status))
		}
		ctx.Status(http.StatusOK)
	})

	return apiv1
}
