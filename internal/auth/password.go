package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a throwaway bcrypt digest. Authenticate verifies against it
// when the username is unknown so that a lookup miss costs the same as a
// wrong password and usernames cannot be enumerated by timing.
const dummyHash = "$2b$12$mNFOzbWeA9EIrTK0um5K7OlxYnRQcrB.5EtrlPFLbcRrHnF1XhPv2"

// HashSecret hashes a plaintext secret with bcrypt.
func HashSecret(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret reports whether plaintext matches the stored bcrypt hash.
// The comparison inside bcrypt is constant-time on the derived key; a
// malformed stored hash verifies as false, never as an error.
func VerifySecret(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
