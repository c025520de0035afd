package common

import (
	"errors"
	"ingresso/src/db"
	"ingresso/src/lib"
	"ingresso/src/models"
	"ingresso/src/types"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MapPaymentStatus normalizes the Mercado Pago status vocabulary into the
// canonical enum. Unknown values map to PENDING so vocabulary drift on the
// gateway side never breaks webhook processing.
func MapPaymentStatus(externalStatus string) types.TransactionStatus {
	switch externalStatus {
	case "pending":
		return types.TRANSACTION_PENDING
	case "approved":
		return types.TRANSACTION_APPROVED
	case "authorized":
		return types.TRANSACTION_AUTHORIZED
	case "in_process":
		return types.TRANSACTION_IN_PROCESS
	case "in_mediation":
		return types.TRANSACTION_IN_MEDIATION
	case "rejected":
		return types.TRANSACTION_REJECTED
	case "cancelled":
		return types.TRANSACTION_CANCELLED
	case "refunded":
		return types.TRANSACTION_REFUNDED
	case "charged_back":
		return types.TRANSACTION_CHARGED_BACK
	default:
		return types.TRANSACTION_PENDING
	}
}

// MapStripeIntentStatus folds the Stripe payment-intent vocabulary into the
// same canonical enum.
func MapStripeIntentStatus(intentStatus string) types.TransactionStatus {
	switch intentStatus {
	case "succeeded":
		return types.TRANSACTION_APPROVED
	case "processing":
		return types.TRANSACTION_IN_PROCESS
	case "canceled":
		return types.TRANSACTION_CANCELLED
	default:
		return types.TRANSACTION_PENDING
	}
}

// ResolvePaymentStatus maps the payment's status field, except that any
// refunded amount overrides whatever status the gateway reports.
func ResolvePaymentStatus(payment *lib.MercadoPagoPayment) types.TransactionStatus {
	if payment.TransactionAmountRefunded > 0 {
		return types.TRANSACTION_REFUNDED
	}
	return MapPaymentStatus(payment.Status)
}

// UpdateCheckoutTransaction applies a fetched Mercado Pago payment to the
// transaction it references: resolved status, raw status and payload, external
// payment id, PIX QR code, and the paid/cancelled stamps.
func UpdateCheckoutTransaction(payment *lib.MercadoPagoPayment) (*models.Transaction, error) {
	status := ResolvePaymentStatus(payment)

	txnId, err := uuid.Parse(payment.ExternalReference)
	if err != nil {
		log.Printf("Invalid external reference on payment %d: %q\n", payment.ID, payment.ExternalReference)
		return nil, ErrTransactionNotFound
	}

	gdb := db.GetDb()
	var txn models.Transaction
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", txnId).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		updates := map[string]any{
			"external_payment_id": strconv.FormatInt(payment.ID, 10),
			"external_status":     payment.Status,
			"status":              status,
			"pix_qr_code":         payment.PixQRCode(),
			"response":            types.JSONB(payment.Raw),
		}
		now := time.Now()
		if (status == types.TRANSACTION_APPROVED || status == types.TRANSACTION_AUTHORIZED) && txn.PaidAt == nil {
			updates["paid_at"] = now
		}
		if status == types.TRANSACTION_CANCELLED && txn.CancelledAt == nil {
			updates["cancelled_at"] = now
		}

		if err := tx.
			Model(&models.Transaction{}).
			Where("id = ?", txnId).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return tx.Where("id = ?", txnId).First(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateStripePaymentStatus records a payment-intent outcome on the
// transaction named in the intent metadata.
func UpdateStripePaymentStatus(transactionId, intentId, intentStatus string) (*models.Transaction, error) {
	txnId, err := uuid.Parse(transactionId)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	status := MapStripeIntentStatus(intentStatus)

	gdb := db.GetDb()
	var txn models.Transaction
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", txnId).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		updates := map[string]any{
			"external_payment_id": intentId,
			"external_status":     intentStatus,
			"status":              status,
		}
		if (status == types.TRANSACTION_APPROVED || status == types.TRANSACTION_AUTHORIZED) && txn.PaidAt == nil {
			updates["paid_at"] = time.Now()
		}

		if err := tx.
			Model(&models.Transaction{}).
			Where("id = ?", txnId).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return tx.Where("id = ?", txnId).First(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// HandleApprovedTransaction completes delivery for every ticket of the
// transaction. A failing ticket is logged and skipped; it must not corrupt
// sibling tickets' counters.
func HandleApprovedTransaction(transactionId string) error {
	txn, err := GetTransactionWithTickets(transactionId)
	if err != nil {
		return err
	}
	for _, ticket := range txn.Tickets {
		if err := MarkTicketAsDelivered(ticket.ID); err != nil {
			log.Printf("Error delivering ticket | Transaction %s | Ticket %s: %s\n", transactionId, ticket.ID, err.Error())
			continue
		}
	}
	return nil
}

// HandleRefundedTransaction rolls back delivery counters for every ticket of
// the transaction and stamps refunded_at with the terminal status.
func HandleRefundedTransaction(transactionId string, status types.TransactionStatus) error {
	txn, err := GetTransactionWithTickets(transactionId)
	if err != nil {
		return err
	}
	for _, ticket := range txn.Tickets {
		if err := RollbackTicketDelivery(ticket.ID); err != nil {
			log.Printf("Error refunding ticket | Transaction %s | Ticket %s: %s\n", transactionId, ticket.ID, err.Error())
			continue
		}
	}

	gdb := db.GetDb()
	return gdb.
		Model(&models.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]any{
			"status":      status,
			"refunded_at": time.Now(),
		}).
		Error
}

// HandleTransactionByStatus branches a reconciled transaction into delivery
// completion or counter rollback. Non-terminal statuses only get a log line.
func HandleTransactionByStatus(transactionId string, status types.TransactionStatus) error {
	switch status {
	case types.TRANSACTION_APPROVED, types.TRANSACTION_AUTHORIZED:
		return HandleApprovedTransaction(transactionId)
	case types.TRANSACTION_REFUNDED, types.TRANSACTION_CHARGED_BACK:
		return HandleRefundedTransaction(transactionId, status)
	default:
		log.Printf("Unhandled status | Tx %s | %s\n", transactionId, status)
		return nil
	}
}
