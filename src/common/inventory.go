package common

import (
	"errors"
	"ingresso/src/db"
	"ingresso/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindLotsByTicketTypeIds lists lots with their quantity counters for a set
// of ticket types, including inactive ones (organizer inventory view).
func FindLotsByTicketTypeIds(ticketTypeIds []uuid.UUID) ([]models.TicketLot, error) {
	gdb := db.GetDb()
	var lots []models.TicketLot
	if err := gdb.
		Preload("TicketType").
		Where("ticket_type_id IN (?)", ticketTypeIds).
		Order("start_date asc").
		Find(&lots).
		Error; err != nil {
		return nil, err
	}
	return lots, nil
}

func FindCategoriesByIds(ids []uuid.UUID) ([]models.Category, error) {
	gdb := db.GetDb()
	var categories []models.Category
	if err := gdb.
		Where("id IN (?)", ids).
		Find(&categories).
		Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCouponById scopes the lookup to an event so a coupon can never be
// redeemed against another event's tickets.
func FindCouponById(id, eventId uuid.UUID) (*models.Coupon, error) {
	gdb := db.GetDb()
	var coupon models.Coupon
	if err := gdb.
		Where("id = ? AND event_id = ?", id, eventId).
		First(&coupon).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}
