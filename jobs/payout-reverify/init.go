package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/civicpulse/civicpulse-backend/pkg/db"
	"github.com/civicpulse/civicpulse-backend/pkg/utils"
	"gopkg.in/yaml.v2"

	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"

	ENV_ETHERSCAN_API_KEY = "ETHERSCAN_API_KEY"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Payout verification configs
	PayoutConfig struct {
		TronGridURL      string        `json:"trongrid_url" yaml:"trongrid_url"`
		EtherscanURL     string        `json:"etherscan_url" yaml:"etherscan_url"`
		EtherscanAPIKey  string        `json:"etherscan_api_key" yaml:"etherscan_api_key"`
		VerifyReqTimeout time.Duration `json:"verify_req_timeout" yaml:"verify_req_timeout"`
	} `json:"payout_config" yaml:"payout_config"`
}

var conf config

var (
	surveyDBService *surveyDB.SurveyDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}

	if apiKey := os.Getenv(ENV_ETHERSCAN_API_KEY); apiKey != "" {
		conf.PayoutConfig.EtherscanAPIKey = apiKey
	}
}

func initDBs() {
	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(db.DBConfigFromYamlObj(conf.DBConfigs.SurveyDB))
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}
