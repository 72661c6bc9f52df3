package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrWinnerNotFound = errors.New("winner not found")

func (dbService *SurveyDBService) GetWinnersBySurvey(surveyKey string) (winners []surveyTypes.Winner, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionWinners().Find(ctx, bson.M{"surveyKey": surveyKey})
	if err != nil {
		return winners, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &winners)
	return winners, err
}

func (dbService *SurveyDBService) GetWinner(surveyKey string, userID string) (winner surveyTypes.Winner, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey, "userID": userID}
	err = dbService.collectionWinners().FindOne(ctx, filter).Decode(&winner)
	if err == mongo.ErrNoDocuments {
		return winner, ErrWinnerNotFound
	}
	return winner, err
}

func (dbService *SurveyDBService) GetWinnerByTxHash(surveyKey string, txHash string) (winner surveyTypes.Winner, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey, "txHash": txHash}
	err = dbService.collectionWinners().FindOne(ctx, filter).Decode(&winner)
	if err == mongo.ErrNoDocuments {
		return winner, ErrWinnerNotFound
	}
	return winner, err
}

// ReplaceWinners swaps the survey's winner set. The previous set, if any, is
// archived first so a re-draw cannot silently erase payout progress. Winners
// of other surveys are untouched.
func (dbService *SurveyDBService) ReplaceWinners(surveyKey string, winners []surveyTypes.Winner) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	previous, err := dbService.GetWinnersBySurvey(surveyKey)
	if err != nil {
		return err
	}
	if len(previous) > 0 {
		archive := surveyTypes.ArchivedDraw{
			SurveyKey:  surveyKey,
			ArchivedAt: time.Now().Unix(),
			Winners:    previous,
		}
		if _, err := dbService.collectionWinnerArchive().InsertOne(ctx, archive); err != nil {
			return err
		}
	}

	if _, err := dbService.collectionWinners().DeleteMany(ctx, bson.M{"surveyKey": surveyKey}); err != nil {
		return err
	}

	if len(winners) == 0 {
		return nil
	}

	docs := make([]interface{}, len(winners))
	for i, w := range winners {
		docs[i] = w
	}
	_, err = dbService.collectionWinners().InsertMany(ctx, docs)
	return err
}

func (dbService *SurveyDBService) UpdateWinnerStatus(surveyKey string, userID string, status string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionWinners().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey, "userID": userID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

func (dbService *SurveyDBService) StampWinnerPayout(surveyKey string, userID string, txHash string, network string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionWinners().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey, "userID": userID},
		bson.M{"$set": bson.M{
			"status":  surveyTypes.WINNER_STATUS_SENT,
			"txHash":  txHash,
			"network": network,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

func (dbService *SurveyDBService) SetWinnerNotified(surveyKey string, userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionWinners().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey, "userID": userID},
		bson.M{"$set": bson.M{"notified": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

// GetSentWinnersWithTxHash returns winners awaiting ledger confirmation, used
// by the payout re-verification job.
func (dbService *SurveyDBService) GetSentWinnersWithTxHash() (winners []surveyTypes.Winner, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"status": surveyTypes.WINNER_STATUS_SENT,
		"txHash": bson.M{"$ne": ""},
	}
	cursor, err := dbService.collectionWinners().Find(ctx, filter)
	if err != nil {
		return winners, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &winners)
	return winners, err
}
