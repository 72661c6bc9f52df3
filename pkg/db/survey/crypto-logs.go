package survey

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrCryptoLogNotFound = errors.New("crypto log not found")

// cryptoLogUpdate builds the replacement document. verifiedAt is reset so a
// re-used txHash starts from an unverified state instead of inheriting the
// replaced entry's verification.
func cryptoLogUpdate(log surveyTypes.CryptoLog) bson.M {
	return bson.M{"$set": bson.M{
		"surveyKey":  log.SurveyKey,
		"address":    log.Address,
		"amount":     log.Amount,
		"network":    log.Network,
		"status":     log.Status,
		"createdAt":  log.CreatedAt,
		"verifiedAt": int64(0),
	}}
}

// UpsertCryptoLog inserts the log, replacing any existing entry with the same
// txHash. Logs are keyed by hash, not appended.
func (dbService *SurveyDBService) UpsertCryptoLog(log surveyTypes.CryptoLog) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"txHash": log.TxHash}
	_, err := dbService.collectionCryptoLogs().UpdateOne(ctx, filter, cryptoLogUpdate(log), options.Update().SetUpsert(true))
	return err
}

func (dbService *SurveyDBService) GetCryptoLogsBySurvey(surveyKey string) (logs []surveyTypes.CryptoLog, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := dbService.collectionCryptoLogs().Find(ctx, bson.M{"surveyKey": surveyKey}, opts)
	if err != nil {
		return logs, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &logs)
	return logs, err
}

func (dbService *SurveyDBService) GetCryptoLogByTxHash(surveyKey string, txHash string) (log surveyTypes.CryptoLog, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey, "txHash": txHash}
	err = dbService.collectionCryptoLogs().FindOne(ctx, filter).Decode(&log)
	if err == mongo.ErrNoDocuments {
		return log, ErrCryptoLogNotFound
	}
	return log, err
}

func (dbService *SurveyDBService) UpdateCryptoLogVerification(surveyKey string, txHash string, status string, verifiedAt int64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionCryptoLogs().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey, "txHash": txHash},
		bson.M{"$set": bson.M{
			"status":     status,
			"verifiedAt": verifiedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCryptoLogNotFound
	}
	return nil
}

// GetPendingCryptoLogs returns logs still awaiting a conclusive verification,
// used by the payout re-verification job.
func (dbService *SurveyDBService) GetPendingCryptoLogs() (logs []surveyTypes.CryptoLog, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"status": surveyTypes.CRYPTO_LOG_STATUS_PENDING}
	cursor, err := dbService.collectionCryptoLogs().Find(ctx, filter)
	if err != nil {
		return logs, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &logs)
	return logs, err
}
