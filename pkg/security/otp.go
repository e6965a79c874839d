package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// GenerateOTP returns a zero-padded numeric one-time code of the given length.
func GenerateOTP(digits int) (string, error) {
	if digits < 4 || digits > 10 {
		return "", fmt.Errorf("otp digits must be between 4 and 10, got %d", digits)
	}

	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

// HashOTP returns a hex-encoded SHA-256 digest of the code, bound to the
// identifier so a stolen digest cannot be replayed for another account.
func HashOTP(code, identifier string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(identifier) + ":" + strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

// VerifyOTP compares a submitted code against a stored digest in constant time.
func VerifyOTP(code, identifier, storedDigest string) bool {
	return hmac.Equal([]byte(HashOTP(code, identifier)), []byte(storedDigest))
}
