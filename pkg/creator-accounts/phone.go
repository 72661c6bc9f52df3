package creatoraccounts

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/civicpulse/civicpulse-backend/pkg/utils"
)

const minPhoneDigits = 10

var validRoles = []string{
	surveyTypes.CREATOR_ROLE_BUSINESS,
	surveyTypes.CREATOR_ROLE_GOV,
	surveyTypes.CREATOR_ROLE_CITIZEN,
}

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidatePhone(phone string) error {
	if len(NormalizePhone(phone)) < minPhoneDigits {
		return errors.New("phone number too short")
	}
	return nil
}

// PhoneLookupHash derives the deterministic key a profile is stored under.
// Keyed with a server-side secret so the hash is not reversible by rainbow
// table over the small phone number space.
func PhoneLookupHash(secret string, phone string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(NormalizePhone(phone)))
	return hex.EncodeToString(mac.Sum(nil))
}

func IsValidRole(role string) bool {
	return utils.ContainsString(validRoles, role)
}
