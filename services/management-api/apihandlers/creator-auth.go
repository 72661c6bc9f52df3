package apihandlers

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	mw "github.com/civicpulse/civicpulse-backend/pkg/apihelpers/middlewares"
	creatoraccounts "github.com/civicpulse/civicpulse-backend/pkg/creator-accounts"
	surveyDB "github.com/civicpulse/civicpulse-backend/pkg/db/survey"
	jwthandling "github.com/civicpulse/civicpulse-backend/pkg/jwt-handling"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddCreatorAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", mw.RequirePayload(), h.registerCreator)
		authGroup.POST("/login", mw.RequirePayload(), h.loginCreator)
	}
}

type creatorAuthReq struct {
	Phone      string `json:"phone"`
	AccessCode string `json:"accessCode"`
	Role       string `json:"role"`
}

func (h *HttpEndpoints) registerCreator(c *gin.Context) {
	var req creatorAuthReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := creatoraccounts.ValidatePhone(req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.AccessCode) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access code must have at least 6 characters"})
		return
	}

	if !creatoraccounts.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	accessCodeHash, err := creatoraccounts.HashAccessCode(req.AccessCode)
	if err != nil {
		slog.Error("failed to hash access code", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	profile := surveyTypes.CreatorProfile{
		PhoneHash:      creatoraccounts.PhoneLookupHash(h.phoneHashSecret, req.Phone),
		AccessCodeHash: accessCodeHash,
		Role:           req.Role,
		CreatedAt:      time.Now().Unix(),
	}

	profile, err = h.surveyDBConn.CreateCreator(profile)
	if err != nil {
		slog.Warn("failed to create creator account", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "account could not be created"})
		return
	}

	token, err := jwthandling.GenerateNewCreatorToken(h.tokenExpiresIn, profile.ID.Hex(), profile.Role, h.tokenSignKey)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	slog.Info("creator account created", slog.String("creatorID", profile.ID.Hex()), slog.String("role", profile.Role))
	c.JSON(http.StatusCreated, gin.H{"accessToken": token, "role": profile.Role})
}

func (h *HttpEndpoints) loginCreator(c *gin.Context) {
	var req creatorAuthReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.surveyDBConn.GetCreatorByPhoneHash(creatoraccounts.PhoneLookupHash(h.phoneHashSecret, req.Phone))
	if err != nil {
		if !errors.Is(err, surveyDB.ErrCreatorNotFound) {
			slog.Error("failed to look up creator", slog.String("error", err.Error()))
		}
		randomWait(2, 5)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid phone or access code"})
		return
	}

	if err := creatoraccounts.CheckAccessCode(profile.AccessCodeHash, req.AccessCode); err != nil {
		slog.Warn("login with wrong access code", slog.String("creatorID", profile.ID.Hex()))
		randomWait(2, 5)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid phone or access code"})
		return
	}

	token, err := jwthandling.GenerateNewCreatorToken(h.tokenExpiresIn, profile.ID.Hex(), profile.Role, h.tokenSignKey)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token, "role": profile.Role})
}

func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}
