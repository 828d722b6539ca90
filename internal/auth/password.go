package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// HashPIN hashes a kiosk PIN. PINs are short so they always get the
// configured bcrypt cost, never stored in the clear.
func HashPIN(pin string, cost int) (string, error) {
	return HashPassword(pin, cost)
}

// ComparePIN verifies a kiosk PIN against its hashed value.
func ComparePIN(hashed, pin string) error {
	return ComparePassword(hashed, pin)
}
