package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken returns the hex SHA-256 of a token for at-rest storage.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash compares a stored hash with a token in constant time.
func CompareTokenHash(hash, token string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(computed)) == 1
}
