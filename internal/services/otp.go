package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// otpPolicy generates fixed-width numeric codes and checks them against
// their bcrypt hash.
type otpPolicy struct {
	digits int
	ttl    time.Duration
}

// generate returns a code in [10^(digits-1), 10^digits - 1] with its hash.
func (p otpPolicy) generate() (code string, hash string, err error) {
	low := pow10(p.digits - 1)
	span := pow10(p.digits) - low

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", "", fmt.Errorf("generate otp: %w", err)
	}
	code = strconv.FormatInt(low+n.Int64(), 10)

	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash otp: %w", err)
	}
	return code, string(h), nil
}

// check validates a submitted code. Expiry is reported before a mismatch.
func (p otpPolicy) check(hash *string, expiresAt *time.Time, code string, now time.Time) error {
	if hash == nil || *hash == "" {
		return ErrOTPInvalid
	}
	if expiresAt == nil || now.After(*expiresAt) {
		return ErrOTPExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(*hash), []byte(code)) != nil {
		return ErrOTPInvalid
	}
	return nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func passwordMatches(hash *string, password string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
}
