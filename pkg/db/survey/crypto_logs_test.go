package survey

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

func TestCryptoLogUpdate(t *testing.T) {
	update := cryptoLogUpdate(surveyTypes.CryptoLog{
		SurveyKey: "s1",
		Address:   "T-addr",
		Amount:    "5",
		Network:   surveyTypes.CRYPTO_NETWORK_TRC20,
		TxHash:    "0xabc",
		Status:    surveyTypes.CRYPTO_LOG_STATUS_PENDING,
		CreatedAt: 1700000000,
	})

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("update = %v, want a $set document", update)
	}

	t.Run("resets verification timestamp", func(t *testing.T) {
		verifiedAt, present := set["verifiedAt"]
		if !present {
			t.Fatal("replacing a log must clear verifiedAt")
		}
		if verifiedAt != int64(0) {
			t.Errorf("verifiedAt = %v, want 0", verifiedAt)
		}
	})

	t.Run("carries the log fields", func(t *testing.T) {
		if set["surveyKey"] != "s1" || set["network"] != surveyTypes.CRYPTO_NETWORK_TRC20 {
			t.Errorf("unexpected fields: %v", set)
		}
		if set["status"] != surveyTypes.CRYPTO_LOG_STATUS_PENDING {
			t.Errorf("status = %v, want PENDING", set["status"])
		}
	})
}
