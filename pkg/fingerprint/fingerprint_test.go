package fingerprint

import "testing"

func TestDerive(t *testing.T) {
	attrs := ClientAttributes{
		UserAgent:    "Mozilla/5.0 (X11; Linux x86_64)",
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Locale:       "ko-KR",
	}

	t.Run("deterministic for same attributes", func(t *testing.T) {
		if Derive(attrs) != Derive(attrs) {
			t.Error("same attributes should yield the same token")
		}
	})

	t.Run("token length", func(t *testing.T) {
		token := Derive(attrs)
		if len(token) != tokenLength {
			t.Errorf("token length = %d, want %d", len(token), tokenLength)
		}
	})

	t.Run("different attributes yield different tokens", func(t *testing.T) {
		other := attrs
		other.ScreenWidth = 1280
		if Derive(attrs) == Derive(other) {
			t.Error("different attributes should yield different tokens")
		}
	})

	t.Run("empty attributes do not fail", func(t *testing.T) {
		token := Derive(ClientAttributes{})
		if token == "" {
			t.Error("empty attributes should still produce a token")
		}
	})
}
