package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/civicpulse/civicpulse-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	"github.com/civicpulse/civicpulse-backend/pkg/fingerprint"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *HttpEndpoints) AddSurveyParticipationAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")
	{
		surveysGroup.GET("/active", h.getActiveSurvey)
		surveysGroup.GET("/:surveyKey", h.getSurvey)
		surveysGroup.POST("/:surveyKey/responses", mw.RequirePayload(), h.submitResponse)
		surveysGroup.GET("/:surveyKey/stats", h.getSurveyStats)
	}
}

func (h *HttpEndpoints) getActiveSurvey(c *gin.Context) {
	survey, err := h.surveyDBConn.GetActiveSurvey()
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active survey"})
			return
		}
		slog.Error("error fetching active survey", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching active survey"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

func (h *HttpEndpoints) getSurvey(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil || survey.Status != surveyTypes.SURVEY_STATUS_PUBLISHED {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

type submitResponseReq struct {
	Answers       map[string]surveyTypes.Answer `json:"answers"`
	RewardAddress string                        `json:"rewardAddress"`
	Metadata      struct {
		AgeGroup   string `json:"ageGroup"`
		Gender     string `json:"gender"`
		TimeBucket string `json:"timeBucket"`
	} `json:"metadata"`
	Client fingerprint.ClientAttributes `json:"client"`
}

func (h *HttpEndpoints) submitResponse(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil || survey.Status != surveyTypes.SURVEY_STATUS_PUBLISHED {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	knownQuestions := map[string]struct{}{}
	for _, q := range survey.Questions {
		knownQuestions[q.ID] = struct{}{}
	}
	for questionID := range req.Answers {
		if _, ok := knownQuestions[questionID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answer references unknown question: " + questionID})
			return
		}
	}

	identity := fingerprint.Derive(req.Client)

	decision, err := h.participationGuard.Check(surveyKey, identity)
	if err != nil {
		slog.Error("participation check failed", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "participation check failed"})
		return
	}
	if !decision.Allowed {
		slog.Warn("submission blocked", slog.String("surveyKey", surveyKey), slog.String("reason", decision.Reason))
		c.JSON(http.StatusForbidden, gin.H{"error": "already participated in this survey", "reason": decision.Reason})
		return
	}

	response := surveyTypes.SurveyResponse{
		ResponseID:    uuid.NewString(),
		SurveyKey:     surveyKey,
		SubmittedAt:   time.Now().Unix(),
		Answers:       req.Answers,
		RewardAddress: req.RewardAddress,
		Metadata: surveyTypes.ResponseMetadata{
			AgeGroup:    req.Metadata.AgeGroup,
			Gender:      req.Metadata.Gender,
			TimeBucket:  req.Metadata.TimeBucket,
			Fingerprint: identity,
		},
	}

	response, err = h.surveyDBConn.AddResponse(response)
	if err != nil {
		slog.Error("failed to save response", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save response"})
		return
	}

	if err := h.participationGuard.RecordCompletion(surveyKey, response.WinnerUserID()); err != nil {
		slog.Error("failed to record participation", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
	}

	if err := h.surveyDBConn.IncrementSurveyParticipants(surveyKey); err != nil {
		slog.Error("failed to update participant count", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusCreated, gin.H{"responseId": response.ResponseID})
}

func (h *HttpEndpoints) getSurveyStats(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	survey, err := h.surveyDBConn.GetSurveyByKey(surveyKey)
	if err != nil || !survey.IsPublic {
		c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		return
	}

	responses, err := h.surveyDBConn.GetResponsesBySurvey(surveyKey)
	if err != nil {
		slog.Error("failed to fetch responses", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	distinctFingerprints, err := h.surveyDBConn.CountDistinctFingerprints(surveyKey)
	if err != nil {
		slog.Error("failed to count fingerprints", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	blockedAttempts, err := h.surveyDBConn.GetBlockedAttempts(surveyKey)
	if err != nil {
		slog.Error("failed to read blocked attempts", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"surveyKey":         surveyKey,
		"status":            survey.Status,
		"totalParticipants": survey.TotalParticipants,
		"distributions":     answerDistributions(survey, responses),
		"integrity": gin.H{
			"responses":            int64(len(responses)),
			"distinctFingerprints": distinctFingerprints,
			"blockedAttempts":      blockedAttempts,
		},
	})
}

// answerDistributions counts how often each option was selected, per choice
// question. Free-text questions are excluded, only their answer count is
// reported.
func answerDistributions(survey surveyTypes.Survey, responses []surveyTypes.SurveyResponse) map[string]gin.H {
	distributions := map[string]gin.H{}
	for _, q := range survey.Questions {
		optionCounts := map[string]int64{}
		if q.IsChoiceType() {
			for _, option := range q.Options {
				optionCounts[option] = 0
			}
		}

		var answered int64
		for _, r := range responses {
			answer, ok := r.Answers[q.ID]
			if !ok {
				continue
			}
			answered++

			if !q.IsChoiceType() {
				continue
			}
			if answer.Option != "" {
				optionCounts[answer.Option]++
			}
			for _, option := range answer.Options {
				optionCounts[option]++
			}
		}

		entry := gin.H{"answered": answered}
		if q.IsChoiceType() {
			entry["options"] = optionCounts
		}
		distributions[q.ID] = entry
	}
	return distributions
}
