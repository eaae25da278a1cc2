package adapters

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordServiceWithCost(bcrypt.MinCost)

	// Test a hash verifies against its password only.
	t.Run("hash and verify", func(t *testing.T) {
		hash, err := service.HashPassword("SecurePass123!")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if hash == "SecurePass123!" {
			t.Fatal("expected the hash to differ from the password")
		}
		if err := service.VerifyPassword(hash, "SecurePass123!"); err != nil {
			t.Errorf("expected the password to verify, got %v", err)
		}
		if err := service.VerifyPassword(hash, "WrongPass123!"); err == nil {
			t.Error("expected a wrong password to fail")
		}
	})

	tests := []struct {
		name      string
		password  string
		expectErr bool
	}{
		{name: "minimum length", password: "12345678", expectErr: false},
		{name: "too short", password: "1234567", expectErr: true},
		{name: "bcrypt limit", password: strings.Repeat("a", 72), expectErr: false},
		{name: "over bcrypt limit", password: strings.Repeat("a", 73), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.expectErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
