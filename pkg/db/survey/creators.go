package survey

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

var ErrCreatorNotFound = errors.New("creator not found")

func (dbService *SurveyDBService) CreateCreator(profile surveyTypes.CreatorProfile) (surveyTypes.CreatorProfile, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionCreators().InsertOne(ctx, profile)
	if err != nil {
		return profile, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid
	}
	return profile, nil
}

func (dbService *SurveyDBService) GetCreatorByPhoneHash(phoneHash string) (profile surveyTypes.CreatorProfile, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionCreators().FindOne(ctx, bson.M{"phoneHash": phoneHash}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return profile, ErrCreatorNotFound
	}
	return profile, err
}

func (dbService *SurveyDBService) GetCreatorByID(id string) (profile surveyTypes.CreatorProfile, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return profile, err
	}

	err = dbService.collectionCreators().FindOne(ctx, bson.M{"_id": oid}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return profile, ErrCreatorNotFound
	}
	return profile, err
}
