package common

import (
	"errors"
	"ingresso/src/db"
	"ingresso/src/models"
	"ingresso/src/types"
	"ingresso/src/utils"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxShortCodeAttempts = 10
	maxCodeAttempts      = 20
)

// AllocateLot picks the eligible lot for a ticket type at a given instant:
// active, not deleted, validity window containing the instant, earliest
// startDate first.
func AllocateLot(tx *gorm.DB, ticketTypeId uuid.UUID, at time.Time) (*models.TicketLot, error) {
	var lot models.TicketLot
	err := tx.
		Where("ticket_type_id = ?", ticketTypeId).
		Where("is_active = ?", true).
		Where("start_date <= ?", at).
		Where("end_date >= ?", at).
		Order("start_date asc").
		First(&lot).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveLot
		}
		return nil, err
	}
	return &lot, nil
}

// uniqueTicketCode retries generation until the code is unused. The loop is
// bounded; the first half of the attempts draws from the short code space,
// the rest from the long one.
func uniqueTicketCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		generate := utils.GenerateTicketCode
		if attempt >= maxShortCodeAttempts {
			generate = utils.GenerateLongTicketCode
		}
		code, err := generate()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.
			Model(&models.Ticket{}).
			Where("code = ?", code).
			Count(&count).
			Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
		log.Printf("Ticket code collision on attempt %d, retrying\n", attempt+1)
	}
	return "", ErrCodeSpaceExhausted
}

func createTicketChildren(tx *gorm.DB, ticketId uuid.UUID, player *types.CheckoutPlayerBody, termIds []uuid.UUID) error {
	for _, field := range player.PersonalFields {
		fieldId, err := uuid.Parse(field.PersonalizedFieldID)
		if err != nil {
			return err
		}
		answer := models.PersonalizedFieldAnswer{
			TicketID:            ticketId,
			PersonalizedFieldID: fieldId,
			Answer:              field.Answer,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}
	}
	for _, termId := range termIds {
		confirmation := models.TermTicketConfirmation{
			TermID:   termId,
			TicketID: ticketId,
		}
		if err := tx.Create(&confirmation).Error; err != nil {
			return err
		}
	}
	return nil
}

func parseTermIds(terms []types.CheckoutTermBody) ([]uuid.UUID, error) {
	termIds := make([]uuid.UUID, 0, len(terms))
	for _, term := range terms {
		termId, err := uuid.Parse(term.TermID)
		if err != nil {
			return nil, err
		}
		termIds = append(termIds, termId)
	}
	return termIds, nil
}

// PerformCheckout runs the whole paid checkout inside one database
// transaction: any failure rolls back every team, ticket and child row
// created so far, so no partial cart is ever observable.
func PerformCheckout(dto *types.CreateCheckoutRequestBody, userId uuid.UUID) (*models.Transaction, error) {
	now := time.Now()
	termIds, err := parseTermIds(dto.Terms)
	if err != nil {
		return nil, err
	}

	var result models.Transaction
	gdb := db.GetDb()
	err = gdb.Transaction(func(tx *gorm.DB) error {
		totalValue := decimal.Zero
		txn := models.Transaction{
			Status:        types.TRANSACTION_PENDING,
			TotalValue:    decimal.Zero,
			PaymentMethod: dto.PaymentData.PaymentMethod,
			CreatedById:   userId,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		var coupon *models.Coupon
		if dto.CouponID != nil {
			couponId, err := uuid.Parse(*dto.CouponID)
			if err != nil {
				return err
			}
			var c models.Coupon
			if err := tx.Where("id = ?", couponId).First(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCouponNotFound
				}
				return err
			}
			coupon = &c
		}

		for _, teamBody := range dto.Teams {
			ticketTypeId, err := uuid.Parse(teamBody.TicketTypeID)
			if err != nil {
				return err
			}
			team := models.Team{}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}

			for _, player := range teamBody.Players {
				lot, err := AllocateLot(tx, ticketTypeId, now)
				if err != nil {
					log.Printf("Checkout aborted | Transaction %s | TicketType %s: %s\n", txn.ID, ticketTypeId, err.Error())
					return err
				}

				ticketPrice := TicketPrice(lot.Price, coupon)

				code, err := uniqueTicketCode(tx)
				if err != nil {
					return err
				}

				playerId, err := uuid.Parse(player.UserID)
				if err != nil {
					return err
				}
				ticket := models.Ticket{
					UserID:        playerId,
					TransactionID: txn.ID,
					TeamID:        team.ID,
					TicketLotID:   lot.ID,
					Price:         ticketPrice,
					Code:          code,
				}
				if player.CategoryID != nil {
					categoryId, err := uuid.Parse(*player.CategoryID)
					if err != nil {
						return err
					}
					ticket.CategoryID = &categoryId
				}
				if coupon != nil {
					couponId := coupon.ID
					ticket.CouponID = &couponId
				}
				if err := tx.Create(&ticket).Error; err != nil {
					return err
				}

				if err := createTicketChildren(tx, ticket.ID, &player, termIds); err != nil {
					return err
				}

				totalValue = totalValue.Add(ticketPrice)
			}
		}

		// All teams in one checkout share one event; the fee comes from the
		// first team's ticket type.
		eventFee := decimal.Zero
		if len(dto.Teams) > 0 {
			firstTypeId, err := uuid.Parse(dto.Teams[0].TicketTypeID)
			if err != nil {
				return err
			}
			var ticketType models.TicketType
			if err := tx.
				Preload("Event").
				Where("id = ?", firstTypeId).
				First(&ticketType).
				Error; err == nil {
				eventFee = ticketType.Event.EventFee
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		finalTotal := FinalTotal(totalValue, eventFee)
		if err := tx.
			Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("total_value", finalTotal).
			Error; err != nil {
			return err
		}

		return preloadTransactionGraph(tx).
			Where("id = ?", txn.ID).
			First(&result).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PerformFreeCheckout allocates a single team with every ticket priced at
// zero and the transaction approved immediately. No coupon or fee logic
// applies.
func PerformFreeCheckout(dto *types.CreateFreeCheckoutRequestBody, userId uuid.UUID) (*models.Transaction, error) {
	now := time.Now()
	termIds, err := parseTermIds(dto.Terms)
	if err != nil {
		return nil, err
	}
	ticketTypeId, err := uuid.Parse(dto.Team.TicketTypeID)
	if err != nil {
		return nil, err
	}

	var result models.Transaction
	gdb := db.GetDb()
	err = gdb.Transaction(func(tx *gorm.DB) error {
		externalStatus := "free"
		txn := models.Transaction{
			Status:         types.TRANSACTION_APPROVED,
			TotalValue:     decimal.Zero,
			PaymentMethod:  types.PAYMENT_FREE,
			ExternalStatus: &externalStatus,
			CreatedById:    userId,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		team := models.Team{}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		for _, player := range dto.Team.Players {
			lot, err := AllocateLot(tx, ticketTypeId, now)
			if err != nil {
				log.Printf("Free checkout aborted | Transaction %s | TicketType %s: %s\n", txn.ID, ticketTypeId, err.Error())
				return err
			}

			code, err := uniqueTicketCode(tx)
			if err != nil {
				return err
			}

			playerId, err := uuid.Parse(player.UserID)
			if err != nil {
				return err
			}
			ticket := models.Ticket{
				UserID:        playerId,
				TransactionID: txn.ID,
				TeamID:        team.ID,
				TicketLotID:   lot.ID,
				Price:         decimal.Zero,
				Code:          code,
			}
			if player.CategoryID != nil {
				categoryId, err := uuid.Parse(*player.CategoryID)
				if err != nil {
					return err
				}
				ticket.CategoryID = &categoryId
			}
			if err := tx.Create(&ticket).Error; err != nil {
				return err
			}

			if err := createTicketChildren(tx, ticket.ID, &player, termIds); err != nil {
				return err
			}
		}

		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkTransactionAsFree is the administrative shortcut for manually comped
// transactions.
func MarkTransactionAsFree(transactionId string) (*models.Transaction, error) {
	txnId, err := uuid.Parse(transactionId)
	if err != nil {
		return nil, err
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
		if err := tx.
			Model(&models.Transaction{}).
			Where("id = ?", txnId).
			Updates(map[string]any{
				"status":          types.TRANSACTION_APPROVED,
				"payment_method":  types.PAYMENT_FREE,
				"external_status": "free",
				"paid_at":         time.Now(),
			}).
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

func preloadTransactionGraph(tx *gorm.DB) *gorm.DB {
	return tx.
		Model(&models.Transaction{}).
		Preload("CreatedBy").
		Preload("Tickets").
		Preload("Tickets.User").
		Preload("Tickets.Team").
		Preload("Tickets.TicketLot").
		Preload("Tickets.TicketLot.TicketType").
		Preload("Tickets.TicketLot.TicketType.Event").
		Preload("Tickets.Category").
		Preload("Tickets.Coupon").
		Preload("Tickets.PersonalizedFieldAnswers").
		Preload("Tickets.TermConfirmations")
}

// GetTransactionWithTickets loads a transaction with its full ticket graph.
func GetTransactionWithTickets(transactionId string) (*models.Transaction, error) {
	txnId, err := uuid.Parse(transactionId)
	if err != nil {
		return nil, err
	}
	gdb := db.GetDb()
	var txn models.Transaction
	if err := preloadTransactionGraph(gdb).
		Where("id = ?", txnId).
		First(&txn).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}
