package hash

import "golang.org/x/crypto/bcrypt"

const cost = 10

// HashPassword derives a salted bcrypt digest from a plaintext password.
// Each call salts independently, so two digests of the same password differ.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches digest. A malformed digest
// counts as a mismatch.
func CheckPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
