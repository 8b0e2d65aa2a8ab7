package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// VerifyCredential compares a configured secret against a submitted
// one. The configured value may be a bcrypt hash; plaintext values are
// compared in constant time.
func VerifyCredential(configured, submitted string) bool {
	if strings.HasPrefix(configured, "$2") {
		return CheckPassword(configured, submitted)
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(submitted)) == 1
}
