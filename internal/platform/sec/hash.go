// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the number of password bytes bcrypt actually reads.
// Longer passwords are cut to this prefix on both hash and check.
const MaxPasswordBytes = 72

// HashPassword returns the bcrypt hash of a plain-text password at the
// default cost. Equal passwords produce different hashes.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(passwordBytes(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether plainTextPassword matches existingHash.
// A malformed hash never matches.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), passwordBytes(plainTextPassword)) == nil
}

func passwordBytes(password string) []byte {
	raw := []byte(password)
	if len(raw) > MaxPasswordBytes {
		return raw[:MaxPasswordBytes]
	}
	return raw
}
