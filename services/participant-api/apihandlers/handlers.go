package apihandlers

import (
	"net/http"

	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	"github.com/civicpulse/civicpulse-backend/pkg/participation"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	surveyDBConn       *surveyDB.SurveyDBService
	participationGuard *participation.Guard
}

func NewHTTPHandler(
	surveyDBConn *surveyDB.SurveyDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		surveyDBConn:       surveyDBConn,
		participationGuard: participation.NewGuard(surveyDBConn),
	}
}
