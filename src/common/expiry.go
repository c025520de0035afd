package common

import (
	"ingresso/src/db"
	"ingresso/src/models"
	"ingresso/src/types"
	"log"
	"time"
)

// CancelStaleTransactions flips PENDING transactions older than maxAge to
// CANCELLED. Bookkeeping only: no tickets were delivered for them, so there
// are no counters to roll back and no gateway call to make.
func CancelStaleTransactions(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	gdb := db.GetDb()
	res := gdb.
		Model(&models.Transaction{}).
		Where("status = ? AND created_at < ?", types.TRANSACTION_PENDING, cutoff).
		Updates(map[string]any{
			"status":       types.TRANSACTION_CANCELLED,
			"cancelled_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("Cancelled %d stale pending transactions\n", res.RowsAffected)
	}
	return nil
}
