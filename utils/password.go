package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword -> bcrypt hash untuk password staff
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword -> bandingkan hash dengan password plain
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
