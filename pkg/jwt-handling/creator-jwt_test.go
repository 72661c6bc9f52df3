package jwthandling

import (
	"testing"
	"time"
)

func TestCreatorTokenRoundtrip(t *testing.T) {
	token, err := GenerateNewCreatorToken(time.Hour, "creator-1", "GOV", "test-sign-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		claims, valid, err := ValidateCreatorToken(token, "test-sign-key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !valid {
			t.Fatal("token should be valid")
		}
		if claims.ID != "creator-1" || claims.Role != "GOV" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		_, valid, _ := ValidateCreatorToken(token, "other-key")
		if valid {
			t.Error("token signed with another key should not validate")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := GenerateNewCreatorToken(-time.Minute, "creator-1", "GOV", "test-sign-key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, _ := ValidateCreatorToken(expired, "test-sign-key")
		if valid {
			t.Error("expired token should not validate")
		}
	})
}
