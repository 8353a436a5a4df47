package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when no account matches a login id, so
// the unknown-id path costs the same as a real verification.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-timing-pad"), bcrypt.MinCost)

// HashSecret derives the stored credential secret from a plaintext
// password using the configured bcrypt cost.
func HashSecret(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifySecret checks a plaintext password against the stored secret.
func VerifySecret(secret, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(secret), []byte(plain))
}

// BurnVerification performs a throwaway comparison for login ids that do
// not resolve to an account.
func BurnVerification(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
