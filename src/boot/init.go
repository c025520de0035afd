package boot

import (
	"ingresso/src/common"
	"ingresso/src/db"
	"ingresso/src/lib"
	"ingresso/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.TicketLot{},
		&models.Category{},
		&models.Coupon{},
		&models.Team{},
		&models.Transaction{},
		&models.Ticket{},
		&models.PersonalizedFieldAnswer{},
		&models.TermTicketConfirmation{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

const staleTransactionAge = 24 * time.Hour

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Printf("Error initializing scheduler: %s\n", err.Error())
		return
	}
	if _, err := lib.CreateCronJob(func() {
		if err := common.CancelStaleTransactions(staleTransactionAge); err != nil {
			log.Printf("Error cancelling stale transactions: %s\n", err.Error())
		}
	}, time.Hour); err != nil {
		log.Printf("Error scheduling stale transaction job: %s\n", err.Error())
		return
	}
	sched.Start()
}
