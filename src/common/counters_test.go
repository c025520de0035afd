package common

import (
	"ingresso/src/db"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB() sqlmock.Sqlmock {
	conn, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	return mock
}

func ticketRow(ticketId, lotId uuid.UUID, deliveredAt *time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "ticket_lot_id", "category_id", "coupon_id", "delivered_at"})
	rows.AddRow(ticketId.String(), lotId.String(), nil, nil, deliveredAt)
	return rows
}

func TestMarkTicketAsDelivered(t *testing.T) {
	ticketId := uuid.New()
	lotId := uuid.New()

	t.Run("Should stamp the ticket and increment the lot counter", func(t *testing.T) {
		mock := newMockDB()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
			WillReturnRows(ticketRow(ticketId, lotId, nil))
		mock.ExpectExec(`UPDATE "tickets" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "ticket_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := MarkTicketAsDelivered(ticketId)
		assert.Nil(t, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("Should skip counters when the ticket was already delivered", func(t *testing.T) {
		mock := newMockDB()
		delivered := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
			WillReturnRows(ticketRow(ticketId, lotId, &delivered))
		mock.ExpectExec(`UPDATE "tickets" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := MarkTicketAsDelivered(ticketId)
		assert.Nil(t, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("Should return ErrTicketNotFound for an unknown ticket", func(t *testing.T) {
		mock := newMockDB()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := MarkTicketAsDelivered(ticketId)
		assert.ErrorIs(t, err, ErrTicketNotFound)
		assert.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestRollbackTicketDelivery(t *testing.T) {
	ticketId := uuid.New()
	lotId := uuid.New()

	t.Run("Should clear the stamp and decrement the lot counter", func(t *testing.T) {
		mock := newMockDB()
		delivered := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
			WillReturnRows(ticketRow(ticketId, lotId, &delivered))
		mock.ExpectExec(`UPDATE "tickets" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "ticket_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := RollbackTicketDelivery(ticketId)
		assert.Nil(t, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("Should skip counters when the ticket was never delivered", func(t *testing.T) {
		mock := newMockDB()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
			WillReturnRows(ticketRow(ticketId, lotId, nil))
		mock.ExpectExec(`UPDATE "tickets" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := RollbackTicketDelivery(ticketId)
		assert.Nil(t, err)
		assert.Nil(t, mock.ExpectationsWereMet())
	})
}
