// Package auth hashes and verifies user passwords. Parameters match the
// scheme the reservation data was created with: PBKDF2-HMAC-SHA1, 65536
// rounds, 128-bit keys, 16-byte random salts.
package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	iterations = 65536
	keyLength  = 16
)

// Service generates and verifies password hashes.
type Service struct{}

// NewService creates a credential service.
func NewService() Service {
	return Service{}
}

// Generate derives a hash for password under a fresh random salt.
func (Service) Generate(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return derive(password, salt), salt, nil
}

// Verify reports whether password hashes to hash under salt.
func (Service) Verify(password string, salt, hash []byte) bool {
	return subtle.ConstantTimeCompare(derive(password, salt), hash) == 1
}

func derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha1.New)
}
