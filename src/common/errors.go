package common

import "errors"

var (
	// ErrNoActiveLot aborts the whole checkout: no lot for the requested
	// ticket type has a validity window containing the allocation instant.
	ErrNoActiveLot = errors.New("no active lot available for this ticket type")

	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCouponNotFound      = errors.New("coupon not found")

	ErrUnsupportedGateway = errors.New("unsupported payment gateway")

	// ErrCodeSpaceExhausted means the bounded retry loop ran out of attempts
	// in both code spaces. Treated as a fatal configuration problem.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique ticket code")
)
