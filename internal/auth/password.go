package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	keyLength      = 32
	hashIterations = 100000
)

// HashPassword derives a PBKDF2-SHA256 key from the password under a fresh
// random salt and returns base64(salt || key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha256.New)

	combined := make([]byte, 0, saltLength+keyLength)
	combined = append(combined, salt...)
	combined = append(combined, key...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// VerifyPassword splits the stored salt || key, re-derives the key from the
// candidate password and compares in constant time. Malformed stored values
// verify as false rather than erroring.
func VerifyPassword(password, stored string) bool {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(raw) != saltLength+keyLength {
		return false
	}

	salt, want := raw[:saltLength], raw[saltLength:]
	got := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(want, got) == 1
}
