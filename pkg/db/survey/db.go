package survey

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicpulse/civicpulse-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_SURVEYS          = "surveys"
	COLLECTION_NAME_RESPONSES        = "responses"
	COLLECTION_NAME_PARTICIPATION    = "participation"
	COLLECTION_NAME_BLOCKED_ATTEMPTS = "blockedAttempts"
	COLLECTION_NAME_WINNERS          = "winners"
	COLLECTION_NAME_WINNER_ARCHIVE   = "winnerArchive"
	COLLECTION_NAME_CRYPTO_LOGS      = "cryptoLogs"
	COLLECTION_NAME_CREATORS         = "creators"
)

type SurveyDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewSurveyDBService(configs db.DBConfig) (*SurveyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	surveyDBSc := &SurveyDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := surveyDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for survey DB", slog.String("error", err.Error()))
		}
	}

	return surveyDBSc, nil
}

func (dbService *SurveyDBService) getDBName() string {
	return dbService.DBNamePrefix + "surveyDB"
}

func (dbService *SurveyDBService) collectionSurveys() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SURVEYS)
}

func (dbService *SurveyDBService) collectionResponses() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *SurveyDBService) collectionParticipation() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_PARTICIPATION)
}

func (dbService *SurveyDBService) collectionBlockedAttempts() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_BLOCKED_ATTEMPTS)
}

func (dbService *SurveyDBService) collectionWinners() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_WINNERS)
}

func (dbService *SurveyDBService) collectionWinnerArchive() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_WINNER_ARCHIVE)
}

func (dbService *SurveyDBService) collectionCryptoLogs() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_CRYPTO_LOGS)
}

func (dbService *SurveyDBService) collectionCreators() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_CREATORS)
}

func (dbService *SurveyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for survey DB")

	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSurveys().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "surveyKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for surveys", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionResponses().Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.D{{Key: "surveyKey", Value: 1}},
			},
			{
				Keys: bson.D{
					{Key: "surveyKey", Value: 1},
					{Key: "metadata.fingerprint", Value: 1},
				},
			},
			{
				Keys: bson.D{{Key: "submittedAt", Value: 1}},
			},
		},
	)
	if err != nil {
		slog.Error("Error creating index for responses", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionParticipation().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "identity", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for participation", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionWinners().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "surveyKey", Value: 1},
				{Key: "userID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for winners", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionCryptoLogs().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "txHash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for crypto logs", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionCreators().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "phoneHash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for creators", slog.String("error", err.Error()))
	}

	return nil
}
