package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const ticketCodeBytes = 6

// GenerateTicketCode returns an uppercase hex code drawn from a 48-bit space.
// Uniqueness against persisted tickets is still re-checked by the checkout
// transaction before a code is accepted.
func GenerateTicketCode() (string, error) {
	return generateCode(ticketCodeBytes)
}

// GenerateLongTicketCode is the fallback space used when the short space
// keeps colliding.
func GenerateLongTicketCode() (string, error) {
	return generateCode(ticketCodeBytes * 2)
}

func generateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}
