package survey

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

// AddResponse appends a response. Responses are immutable once created; there
// is deliberately no update operation on this collection.
func (dbService *SurveyDBService) AddResponse(response surveyTypes.SurveyResponse) (surveyTypes.SurveyResponse, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionResponses().InsertOne(ctx, response)
	return response, err
}

func (dbService *SurveyDBService) GetResponsesBySurvey(surveyKey string) (responses []surveyTypes.SurveyResponse, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey}
	opts := options.Find().SetSort(bson.M{"submittedAt": 1})

	cursor, err := dbService.collectionResponses().Find(ctx, filter, opts)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

// get paginated responses by query
func (dbService *SurveyDBService) GetPaginatedResponses(surveyKey string, filter bson.M, sort bson.M, page int64, limit int64) (responses []surveyTypes.SurveyResponse, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	query := bson.M{"surveyKey": surveyKey}
	for k, v := range filter {
		query[k] = v
	}
	if len(sort) == 0 {
		sort = bson.M{"submittedAt": 1}
	}

	totalCount, err := dbService.collectionResponses().CountDocuments(ctx, query)
	if err != nil {
		return responses, nil, err
	}

	paginationInfo = prepPaginationInfos(
		totalCount,
		page,
		limit,
	)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionResponses().Find(ctx, query, opts)
	if err != nil {
		return responses, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	if err != nil {
		return responses, nil, err
	}

	return responses, paginationInfo, nil
}

func (dbService *SurveyDBService) GetResponseCount(surveyKey string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{"surveyKey": surveyKey})
}

func (dbService *SurveyDBService) HasResponseWithFingerprint(surveyKey string, fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"surveyKey":            surveyKey,
		"metadata.fingerprint": fingerprint,
	}
	count, err := dbService.collectionResponses().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountDistinctFingerprints returns the number of unique respondents for the
// integrity report.
func (dbService *SurveyDBService) CountDistinctFingerprints(surveyKey string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	values, err := dbService.collectionResponses().Distinct(ctx, "metadata.fingerprint", bson.M{"surveyKey": surveyKey})
	if err != nil {
		return 0, err
	}
	return int64(len(values)), nil
}
