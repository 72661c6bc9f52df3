package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrSurveyNotFound = errors.New("survey not found")

func (dbService *SurveyDBService) CreateSurvey(survey surveyTypes.Survey) (surveyTypes.Survey, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSurveys().InsertOne(ctx, survey)
	return survey, err
}

func (dbService *SurveyDBService) GetSurveyByKey(surveyKey string) (survey surveyTypes.Survey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey}
	err = dbService.collectionSurveys().FindOne(ctx, filter).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return survey, ErrSurveyNotFound
	}
	return survey, err
}

func (dbService *SurveyDBService) GetSurveys(statusFilter string) (surveys []surveyTypes.Survey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if statusFilter != "" {
		filter["status"] = statusFilter
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := dbService.collectionSurveys().Find(ctx, filter, opts)
	if err != nil {
		return surveys, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &surveys)
	return surveys, err
}

// GetActiveSurvey returns the currently published survey. Publishing demotes
// any previously published survey, so at most one document matches.
func (dbService *SurveyDBService) GetActiveSurvey() (survey surveyTypes.Survey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"status": surveyTypes.SURVEY_STATUS_PUBLISHED}
	opts := options.FindOne().SetSort(bson.M{"updatedAt": -1})

	err = dbService.collectionSurveys().FindOne(ctx, filter, opts).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return survey, ErrSurveyNotFound
	}
	return survey, err
}

// UpdateSurveyStatus sets the survey's status. When publishing, all other
// published surveys are demoted to DRAFT first so the active pointer stays
// unambiguous.
func (dbService *SurveyDBService) UpdateSurveyStatus(surveyKey string, status string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()

	if status == surveyTypes.SURVEY_STATUS_PUBLISHED {
		_, err := dbService.collectionSurveys().UpdateMany(ctx,
			bson.M{
				"status":    surveyTypes.SURVEY_STATUS_PUBLISHED,
				"surveyKey": bson.M{"$ne": surveyKey},
			},
			bson.M{"$set": bson.M{
				"status":    surveyTypes.SURVEY_STATUS_DRAFT,
				"updatedAt": now,
			}},
		)
		if err != nil {
			return err
		}
	}

	res, err := dbService.collectionSurveys().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (dbService *SurveyDBService) IncrementSurveyParticipants(surveyKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionSurveys().UpdateOne(ctx,
		bson.M{"surveyKey": surveyKey},
		bson.M{
			"$inc": bson.M{"totalParticipants": 1},
			"$set": bson.M{"updatedAt": time.Now().Unix()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}
