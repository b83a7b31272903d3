// Package passpkg provides salted hashing for the bank operator secret.
package passpkg

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of the given secret with a random salt.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Check verifies the given secret against its reference hash.
func Check(secret, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
}
