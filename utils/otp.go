package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var otpMax = big.NewInt(1000000)

// GenerateOTPCode returns a uniform 6-digit numeric code as text, keeping
// leading zeros. Codes may repeat across issuances; each new issuance
// invalidates the previous challenge anyway.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("otp generation failed: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
