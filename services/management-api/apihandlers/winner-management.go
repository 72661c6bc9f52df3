package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/civicpulse/civicpulse-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	"github.com/civicpulse/civicpulse-backend/pkg/ledger"
	"github.com/civicpulse/civicpulse-backend/pkg/reward"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) addWinnerManagementAPI(surveysGroup *gin.RouterGroup) {
	winnersGroup := surveysGroup.Group("/:surveyKey/winners")
	{
		winnersGroup.POST("/draw", mw.RequirePayload(), h.drawWinners)
		winnersGroup.GET("", h.getWinners)
		winnersGroup.POST("/:userID/payout", h.executePayout)
		winnersGroup.POST("/:userID/notify", h.notifyWinner)
		winnersGroup.PUT("/:userID/status", mw.RequirePayload(), h.overrideWinnerStatus)
	}

	payoutsGroup := surveysGroup.Group("/:surveyKey/payouts")
	{
		payoutsGroup.POST("/:txHash/verify", h.verifyPayout)
	}

	surveysGroup.GET("/:surveyKey/crypto-logs", h.getCryptoLogs)
}

type drawWinnersReq struct {
	Count          int  `json:"count"`
	ConfirmReplace bool `json:"confirmReplace"`
}

func (h *HttpEndpoints) drawWinners(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	var req drawWinnersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be at least 1"})
		return
	}

	if _, err := h.requireSurvey(surveyKey); err != nil {
		if errors.Is(err, errSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("failed to fetch survey", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch survey"})
		return
	}

	existing, err := h.surveyDBConn.GetWinnersBySurvey(surveyKey)
	if err != nil {
		slog.Error("failed to fetch winners", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch winners"})
		return
	}
	if len(existing) > 0 && !req.ConfirmReplace {
		c.JSON(http.StatusConflict, gin.H{"error": "survey already has winners, set confirmReplace to re-draw"})
		return
	}

	winners, err := h.lotteryEngine.Draw(surveyKey, req.Count)
	if err != nil {
		slog.Error("draw failed", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "draw failed"})
		return
	}

	slog.Info("winners drawn", slog.String("surveyKey", surveyKey), slog.Int("count", len(winners)))
	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

func (h *HttpEndpoints) getWinners(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	winners, err := h.surveyDBConn.GetWinnersBySurvey(surveyKey)
	if err != nil {
		slog.Error("failed to fetch winners", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch winners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

func (h *HttpEndpoints) executePayout(c *gin.Context) {
	surveyKey := c.Param("surveyKey")
	userID := c.Param("userID")

	winner, err := h.rewardService.ExecutePayout(surveyKey, userID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrWinnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "winner not found"})
			return
		}
		if errors.Is(err, reward.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		slog.Error("payout failed", slog.String("surveyKey", surveyKey), slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winner": winner})
}

func (h *HttpEndpoints) notifyWinner(c *gin.Context) {
	surveyKey := c.Param("surveyKey")
	userID := c.Param("userID")

	if err := h.rewardService.NotifyWinner(surveyKey, userID); err != nil {
		if errors.Is(err, surveyDB.ErrWinnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "winner not found"})
			return
		}
		slog.Error("failed to notify winner", slog.String("surveyKey", surveyKey), slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to notify winner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveyKey": surveyKey, "userID": userID, "notified": true})
}

func (h *HttpEndpoints) overrideWinnerStatus(c *gin.Context) {
	surveyKey := c.Param("surveyKey")
	userID := c.Param("userID")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// FAILED is an operator decision the status machine scopes to PENDING and
	// SENT winners, so it goes through the machine; other values are plain
	// override writes.
	var err error
	if req.Status == surveyTypes.WINNER_STATUS_FAILED {
		err = h.rewardService.MarkFailed(surveyKey, userID)
	} else {
		err = h.rewardService.OverrideStatus(surveyKey, userID, req.Status)
	}
	if err != nil {
		if errors.Is(err, surveyDB.ErrWinnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "winner not found"})
			return
		}
		if errors.Is(err, reward.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveyKey": surveyKey, "userID": userID, "status": req.Status})
}

func (h *HttpEndpoints) verifyPayout(c *gin.Context) {
	surveyKey := c.Param("surveyKey")
	txHash := c.Param("txHash")

	network := c.DefaultQuery("network", "")
	if network == "" {
		log, err := h.surveyDBConn.GetCryptoLogByTxHash(surveyKey, txHash)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no payout record for this transaction"})
			return
		}
		network = log.Network
	}

	result, err := h.rewardService.VerifyPayout(surveyKey, txHash, network)
	if err != nil {
		slog.Error("verification failed", slog.String("surveyKey", surveyKey), slog.String("txHash", txHash), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result.Status == ledger.VERIFICATION_STATUS_ERROR {
		slog.Warn("verification could not reach the ledger", slog.String("surveyKey", surveyKey), slog.String("txHash", txHash))
	}

	c.JSON(http.StatusOK, gin.H{"txHash": txHash, "result": result})
}

func (h *HttpEndpoints) getCryptoLogs(c *gin.Context) {
	surveyKey := c.Param("surveyKey")

	logs, err := h.surveyDBConn.GetCryptoLogsBySurvey(surveyKey)
	if err != nil {
		slog.Error("failed to fetch crypto logs", slog.String("surveyKey", surveyKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch crypto logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cryptoLogs": logs})
}
