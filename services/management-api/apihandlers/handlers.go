package apihandlers

import (
	"net/http"
	"time"

	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	"github.com/civicpulse/civicpulse-backend/pkg/lottery"
	"github.com/civicpulse/civicpulse-backend/pkg/reward"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey    string
	tokenExpiresIn  time.Duration
	phoneHashSecret string
	surveyDBConn    *surveyDB.SurveyDBService
	lotteryEngine   *lottery.Engine
	rewardService   *reward.Service
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	phoneHashSecret string,
	surveyDBConn *surveyDB.SurveyDBService,
	rewardService *reward.Service,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:    tokenSignKey,
		tokenExpiresIn:  tokenExpiresIn,
		phoneHashSecret: phoneHashSecret,
		surveyDBConn:    surveyDBConn,
		lotteryEngine:   lottery.NewEngine(surveyDBConn),
		rewardService:   rewardService,
	}
}
