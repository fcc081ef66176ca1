package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers every failed unlock attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMethodDisabled is returned when an unlock method is not configured.
	ErrMethodDisabled = errors.New("unlock method not configured")
)

// HashPasscode uses bcrypt.
func HashPasscode(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPasscode compares passcode against a bcrypt hash.
func CheckPasscode(hash, passcode string) error {
	if hash == "" {
		return ErrMethodDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
