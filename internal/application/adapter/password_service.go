package adapter

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords outside the accepted length.
	ValidatePasswordStrength(password string) error
}
