package common

import (
	"errors"
	"ingresso/src/db"
	"ingresso/src/models"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func incrementSold(tx *gorm.DB, model any, id uuid.UUID) error {
	return tx.
		Model(model).
		Where("id = ?", id).
		UpdateColumn("sold_quantity", gorm.Expr("sold_quantity + ?", 1)).
		Error
}

// tryDecrementSold only decrements while the counter is positive, so a replayed
// refund can never drive sold_quantity below zero.
func tryDecrementSold(tx *gorm.DB, model any, id uuid.UUID) error {
	return tx.
		Model(model).
		Where("id = ? AND sold_quantity > ?", id, 0).
		UpdateColumn("sold_quantity", gorm.Expr("sold_quantity - ?", 1)).
		Error
}

// MarkTicketAsDelivered stamps delivered_at and increments the sold counters
// on the ticket's lot, category and coupon. The delivered_at guard makes the
// whole operation a no-op when the webhook is replayed.
func MarkTicketAsDelivered(ticketId uuid.UUID) error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.
			Select("id", "ticket_lot_id", "category_id", "coupon_id", "delivered_at").
			Where("id = ?", ticketId).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Ticket not found for delivery | Ticket ID: %s\n", ticketId)
				return ErrTicketNotFound
			}
			return err
		}

		res := tx.
			Model(&models.Ticket{}).
			Where("id = ? AND delivered_at IS NULL", ticket.ID).
			Update("delivered_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("Ticket already delivered, skipping counters | Ticket ID: %s\n", ticket.ID)
			return nil
		}

		if err := incrementSold(tx, &models.TicketLot{}, ticket.TicketLotID); err != nil {
			return err
		}
		if ticket.CategoryID != nil {
			if err := incrementSold(tx, &models.Category{}, *ticket.CategoryID); err != nil {
				return err
			}
		}
		if ticket.CouponID != nil {
			if err := incrementSold(tx, &models.Coupon{}, *ticket.CouponID); err != nil {
				return err
			}
		}
		log.Printf("Ticket delivered | Ticket %s | Lot %s\n", ticket.ID, ticket.TicketLotID)
		return nil
	})
}

// RollbackTicketDelivery reverses a delivery after a refund or chargeback:
// clears delivered_at and decrements the same counters the delivery
// incremented. Only previously delivered tickets are touched, which makes a
// replayed refund webhook a no-op.
func RollbackTicketDelivery(ticketId uuid.UUID) error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.
			Select("id", "ticket_lot_id", "category_id", "coupon_id", "delivered_at").
			Where("id = ?", ticketId).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Ticket not found for refund | Ticket ID: %s\n", ticketId)
				return ErrTicketNotFound
			}
			return err
		}

		res := tx.
			Model(&models.Ticket{}).
			Where("id = ? AND delivered_at IS NOT NULL", ticket.ID).
			Update("delivered_at", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("Ticket was not delivered, skipping counters | Ticket ID: %s\n", ticket.ID)
			return nil
		}

		if err := tryDecrementSold(tx, &models.TicketLot{}, ticket.TicketLotID); err != nil {
			return err
		}
		if ticket.CategoryID != nil {
			if err := tryDecrementSold(tx, &models.Category{}, *ticket.CategoryID); err != nil {
				return err
			}
		}
		if ticket.CouponID != nil {
			if err := tryDecrementSold(tx, &models.Coupon{}, *ticket.CouponID); err != nil {
				return err
			}
		}
		log.Printf("Ticket refunded | Ticket %s | Lot %s\n", ticket.ID, ticket.TicketLotID)
		return nil
	})
}
