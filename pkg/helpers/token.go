package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenResetToken returns n random bytes hex encoded, suitable for reset links.
func GenResetToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
