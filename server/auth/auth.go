package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way salted hash for storage. bcrypt embeds
// the salt in the returned digest.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash verifies password against a stored bcrypt hash
// in constant time.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
