package creatoraccounts

import (
	"errors"
	"testing"
)

func TestHashAndCheckAccessCode(t *testing.T) {
	hash, err := HashAccessCode("citizens-first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("correct code passes", func(t *testing.T) {
		if err := CheckAccessCode(hash, "citizens-first"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong code fails", func(t *testing.T) {
		if err := CheckAccessCode(hash, "citizens-second"); !errors.Is(err, ErrWrongAccessCode) {
			t.Errorf("error = %v, want ErrWrongAccessCode", err)
		}
	})

	t.Run("hashes are salted", func(t *testing.T) {
		other, err := HashAccessCode("citizens-first")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if other == hash {
			t.Error("two hashes of the same code should differ")
		}
	})

	t.Run("malformed hash rejected", func(t *testing.T) {
		if err := CheckAccessCode("not-a-hash", "citizens-first"); err == nil {
			t.Error("malformed hash should be rejected")
		}
	})
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"010-1234-5678", "01012345678"},
		{"+82 10 1234 5678", "821012345678"},
		{"0101234", "0101234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	if err := ValidatePhone("010-1234-5678"); err != nil {
		t.Errorf("valid phone rejected: %v", err)
	}
	if err := ValidatePhone("123456789"); err == nil {
		t.Error("nine digits should be rejected")
	}
}

func TestPhoneLookupHash(t *testing.T) {
	a := PhoneLookupHash("secret", "010-1234-5678")
	b := PhoneLookupHash("secret", "01012345678")
	if a != b {
		t.Error("formatting differences should not change the lookup hash")
	}
	if PhoneLookupHash("other-secret", "01012345678") == a {
		t.Error("different secrets should produce different hashes")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"BUSINESS", "GOV", "CITIZEN"} {
		if !IsValidRole(role) {
			t.Errorf("role %s should be valid", role)
		}
	}
	if IsValidRole("ADMIN") {
		t.Error("unknown role should be invalid")
	}
}
