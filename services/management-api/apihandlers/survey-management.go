package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/civicpulse/civicpulse-backend/pkg/apihelpers"
	mw "github.com/civicpulse/civicpulse-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	fairnesslog "github.com/civicpulse/civicpulse-backend/pkg/exporter/fairness-log"
	jwthandling "github.com/civicpulse/civicpulse-backend/pkg/jwt-handling"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/civicpulse/civicpulse-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddSurveyManagementAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")
	surveysGroup.Use(mw.GetAndValidateCreatorJWT(h.tokenSignKey))
	{
		surveysGroup.POST("", mw.RequirePayload(), h.createSurvey)
		surveysGroup.GET("", h.getSurveys) // ?status=DRAFT|PUBLISHED
		surveysGroup.GET("/:surveyKey", h.getSurvey)
		surveysGroup.PUT("/:surveyKey/status", mw.RequirePayload(), h.updateSurveyStatus)
		surveysGroup.GET("/:surveyKey/responses", h.getSurveyResponses) // ?page=1&limit=10
		surveysGroup.GET("/:surveyKey/export/fairness-log", h.exportFairnessLog)
		surveysGroup.GET("/:surveyKey/integrity", h.getSurveyIntegrity)
	}

	h.addWinnerManagementAPI(surveysGroup)
}

type createSurveyReq struct {
	SurveyKey string                    `json:"surveyKey"`
	Title     string                    `json:"title"`
	Region    string                    `json:"region"`
	Category  string                    `json:"category"`
	Goal      string                    `json:"goal"`
	IsPublic  bool                      `json:"isPublic"`
	Questions []surveyTypes.Question    `json:"questions"`
	Reward    *surveyTypes.RewardConfig `json:"reward"`
}

func (h *HttpEndpoints) createSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.CreatorClaims)

	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SurveyKey == "" || !utils.IsURLSafe(req.SurveyKey) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "surveyKey must be a non-empty URL safe string"})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if err := surveyTypes.ValidateQuestions(req.Questions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().Unix()
	survey := surveyTypes.Survey{
		SurveyKey: req.SurveyKey,
		Title:     req.Title,
		Region:    req.Region,
		Category:  req.Category,
		Goal:      req.Goal,
		Status:    surveyTypes.SURVEY_STATUS_DRAFT,
		IsPublic:  req.IsPublic,
		Questions: req.Questions,
		Reward:    req.Reward,
		CreatedBy: token.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	survey, err := h.surveyDBConn.CreateSurvey(survey)
	if err != nil {
		slog.Warn("failed to create survey", slog.String("surveyKey", req.SurveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "survey key already in use"})
		return
	}

	slog.Info("survey created", slog.String("surveyKey", survey.SurveyKey), slog.String("creatorID", token.ID))
	c.JSON(http.StatusCreated, gin.H{"survey": survey})
}

func (h *HttpEndpoints) getSurveys(c *gin.Context) {
	statusFilter := c.DefaultQuery("status", "")

	surveys, err := h.surveyDBConn.GetSurveys(statusFilter)
	if err != nil {
		slog.Error("failed to fetch surveys", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch surveys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

func (h *HttpEndpoints) getSurvey(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

func (h *HttpEndpoints) updateSurveyStatus(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != surveyTypes.SURVEY_STATUS_DRAFT && req.Status != surveyTypes.SURVEY_STATUS_PUBLISHED {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown survey status: " + req.Status})
		return
	}

	if _, err := h.surveyDBConn.GetSurveyByKey(surveyKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	if err := h.surveyDBConn.UpdateSurveyStatus(surveyKey, req.Status); err != nil {
		slog.Error("failed to update survey status", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update survey status"})
		return
	}

	slog.Info("survey status updated", slog.String("surveyKey", surveyKey), slog.String("status", req.Status))
	c.JSON(http.StatusOK, gin.H{"surveyKey": surveyKey, "status": req.Status})
}

func (h *HttpEndpoints) getSurveyResponses(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	if _, err := h.surveyDBConn.GetSurveyByKey(surveyKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses, paginationInfo, err := h.surveyDBConn.GetPaginatedResponses(surveyKey, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses, "pagination": paginationInfo})
}

func (h *HttpEndpoints) exportFairnessLog(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	if _, err := h.surveyDBConn.GetSurveyByKey(surveyKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	responses, err := h.surveyDBConn.GetResponsesBySurvey(surveyKey)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch responses"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+surveyKey+"-fairness-log.csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := fairnesslog.Export(c.Writer, responses); err != nil {
		slog.Error("failed to write fairness log", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
	}
}

func (h *HttpEndpoints) getSurveyIntegrity(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	responseCount, err := h.surveyDBConn.GetResponseCount(surveyKey)
	if err != nil {
		slog.Error("failed to count responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute integrity report"})
		return
	}

	distinctFingerprints, err := h.surveyDBConn.CountDistinctFingerprints(surveyKey)
	if err != nil {
		slog.Error("failed to count fingerprints", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute integrity report"})
		return
	}

	blockedAttempts, err := h.surveyDBConn.GetBlockedAttempts(surveyKey)
	if err != nil {
		slog.Error("failed to read blocked attempts", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute integrity report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"surveyKey":            surveyKey,
		"status":               survey.Status,
		"totalParticipants":    survey.TotalParticipants,
		"responses":            responseCount,
		"distinctFingerprints": distinctFingerprints,
		"blockedAttempts":      blockedAttempts,
	})
}

var errSurveyNotFound = errors.New("survey not found")

func (h *HttpEndpoints) requireSurvey(surveyKey string) (surveyTypes.Survey, error) {
	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			return survey, errSurveyNotFound
		}
		return survey, err
	}
	return survey, nil
}
