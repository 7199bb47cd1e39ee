// ABOUTME: Password hashing for user accounts
// ABOUTME: Thin wrapper around bcrypt with the cost pinned

package password

import "golang.org/x/crypto/bcrypt"

const cost = 12

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
