package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/civicpulse/civicpulse-backend/pkg/apihelpers"
	creatoraccounts "github.com/civicpulse/civicpulse-backend/pkg/creator-accounts"
	"github.com/civicpulse/civicpulse-backend/pkg/db"
	"github.com/civicpulse/civicpulse-backend/pkg/messaging/sms"
	smtp_client "github.com/civicpulse/civicpulse-backend/pkg/smtp-client"
	"github.com/civicpulse/civicpulse-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"

	ENV_CREATOR_JWT_SIGN_KEY   = "CREATOR_JWT_SIGN_KEY"
	ENV_CREATOR_JWT_EXPIRES_IN = "CREATOR_JWT_EXPIRES_IN"
	ENV_PHONE_HASH_SECRET      = "PHONE_HASH_SECRET"
	ENV_ETHERSCAN_API_KEY      = "ETHERSCAN_API_KEY"
	ENV_SMS_GATEWAY_API_KEY    = "SMS_GATEWAY_API_KEY"
	ENV_SMTP_SERVER_CONF_PATH  = "SMTP_SERVER_CONFIG_PATH"
)

type ManagementApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// creator account configs
	CreatorAuthConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		PhoneHashSecret  string `json:"phone_hash_secret" yaml:"phone_hash_secret"`
		CreatorJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"creator_jwt_config" yaml:"creator_jwt_config"`
	} `json:"creator_auth_config" yaml:"creator_auth_config"`

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

	// Winner notification configs
	NotificationConfig struct {
		SmtpServerConfigPath string            `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
		SMSGatewayConfig     sms.GatewayConfig `json:"sms_gateway_config" yaml:"sms_gateway_config"`
	} `json:"notification_config" yaml:"notification_config"`
}

var (
	surveyDBService *surveyDB.SurveyDBService
	smtpClients     *smtp_client.SmtpClients
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

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init argon2
	creatoraccounts.InitArgonParams(
		conf.CreatorAuthConfig.PWHashing.Argon2Memory,
		conf.CreatorAuthConfig.PWHashing.Argon2Iterations,
		conf.CreatorAuthConfig.PWHashing.Argon2Parallelism,
	)

	initSmtpClients()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_CREATOR_JWT_SIGN_KEY); signKey != "" {
		conf.CreatorAuthConfig.CreatorJWTConfig.SignKey = signKey
	}

	if expInVal := os.Getenv(ENV_CREATOR_JWT_EXPIRES_IN); expInVal != "" {
		var err error
		conf.CreatorAuthConfig.CreatorJWTConfig.ExpiresIn, err = utils.ParseDurationString(expInVal)
		if err != nil {
			panic(err)
		}
	}

	if phoneHashSecret := os.Getenv(ENV_PHONE_HASH_SECRET); phoneHashSecret != "" {
		conf.CreatorAuthConfig.PhoneHashSecret = phoneHashSecret
	}

	if apiKey := os.Getenv(ENV_ETHERSCAN_API_KEY); apiKey != "" {
		conf.PayoutConfig.EtherscanAPIKey = apiKey
	}

	if apiKey := os.Getenv(ENV_SMS_GATEWAY_API_KEY); apiKey != "" {
		conf.NotificationConfig.SMSGatewayConfig.APIKey = apiKey
	}

	if smtpConfPath := os.Getenv(ENV_SMTP_SERVER_CONF_PATH); smtpConfPath != "" {
		conf.NotificationConfig.SmtpServerConfigPath = smtpConfPath
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

func initSmtpClients() {
	if conf.NotificationConfig.SmtpServerConfigPath == "" {
		slog.Warn("no smtp server config path set, email notifications disabled")
		return
	}

	var serverList smtp_client.SmtpServerList
	if err := serverList.ReadFromFile(conf.NotificationConfig.SmtpServerConfigPath); err != nil {
		panic(err)
	}

	var err error
	smtpClients, err = smtp_client.NewSmtpClients(serverList)
	if err != nil {
		panic(err)
	}
}
