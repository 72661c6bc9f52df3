package survey

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type participationDoc struct {
	Identity   string   `bson:"identity"`
	SurveyKeys []string `bson:"surveyKeys"`
}

type blockedAttemptsDoc struct {
	SurveyKey string `bson:"surveyKey"`
	Count     int64  `bson:"count"`
}

// GetParticipatedSurveys returns the explicit completed-survey list for the
// identity. An unknown identity yields an empty list.
func (dbService *SurveyDBService) GetParticipatedSurveys(identity string) ([]string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var doc participationDoc
	err := dbService.collectionParticipation().FindOne(ctx, bson.M{"identity": identity}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.SurveyKeys, nil
}

// RecordParticipation adds the surveyKey to the identity's completed list.
// $addToSet makes re-recording a no-op.
func (dbService *SurveyDBService) RecordParticipation(identity string, surveyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionParticipation().UpdateOne(ctx,
		bson.M{"identity": identity},
		bson.M{"$addToSet": bson.M{"surveyKeys": surveyKey}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (dbService *SurveyDBService) IncrementBlockedAttempts(surveyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionBlockedAttempts().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey},
		bson.M{"$inc": bson.M{"count": 1}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (dbService *SurveyDBService) GetBlockedAttempts(surveyKey string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var doc blockedAttemptsDoc
	err := dbService.collectionBlockedAttempts().FindOne(ctx, bson.M{"surveyKey": surveyKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Count, nil
}
