package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	CRYPTO_LOG_STATUS_SUCCESS   = "SUCCESS"
	CRYPTO_LOG_STATUS_FAILED    = "FAILED"
	CRYPTO_LOG_STATUS_PENDING   = "PENDING"
	CRYPTO_LOG_STATUS_NOT_FOUND = "NOT_FOUND"
)

// CryptoLog is the audit record of one crypto payout attempt. Logs are
// de-duplicated by txHash: inserting a log with an existing hash replaces the
// previous entry.
type CryptoLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey  string             `bson:"surveyKey" json:"surveyKey"`
	Address    string             `bson:"address" json:"address"`
	Amount     string             `bson:"amount" json:"amount"`
	Network    string             `bson:"network" json:"network"`
	TxHash     string             `bson:"txHash" json:"txHash"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
	VerifiedAt int64              `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
}
