package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain password with bcrypt at the given
// cost. The cost comes from configuration so tests can run at the
// minimum while production uses the default of 10.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt
// hash. Comparison time does not depend on where the inputs differ.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
