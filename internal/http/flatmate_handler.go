package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flatscout/internal/domain"
	"flatscout/internal/service"
)

// FlatmateHandler expone perfiles y ranking de compatibilidad.
type FlatmateHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
	matches  *service.MatchService
}

func NewFlatmateHandler(logger *zap.Logger, profiles *service.ProfileService, matches *service.MatchService) *FlatmateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlatmateHandler{
		logger:   logger,
		profiles: profiles,
		matches:  matches,
	}
}

// GetProfile maneja GET /flatmates/profile/:userId.
func (h *FlatmateHandler) GetProfile(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile maneja PUT /flatmates/profile.
func (h *FlatmateHandler) SaveProfile(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	var req domain.FlatmateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.profiles.Save(c.Request.Context(), claims.UserID, claims.Email, req)
	if err != nil {
		writeError(c, h.logger, "save profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": saved})
}

// Matches maneja GET /flatmates/matches.
func (h *FlatmateHandler) Matches(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	ranked, err := h.matches.FindMatches(c.Request.Context(), claims.UserID, claims.Email)
	if err != nil {
		writeError(c, h.logger, "find matches", err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}
