package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flatscout/internal/matching"
	"flatscout/internal/service"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidProfile, http.StatusBadRequest},
	{service.ErrSelfConnection, http.StatusBadRequest},
	{service.ErrRequestProcessed, http.StatusBadRequest},
	{service.ErrNotRecipient, http.StatusForbidden},
	{service.ErrProfileNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrRequestNotFound, http.StatusNotFound},
	{service.ErrAlreadyConnected, http.StatusConflict},
	{service.ErrRequestAlreadySent, http.StatusConflict},
	{service.ErrRequestAlreadyReceived, http.StatusConflict},
	{matching.ErrMissingHabits, http.StatusUnprocessableEntity},
	{service.ErrRateLimited, http.StatusTooManyRequests},
}

// writeError traduce errores de servicio a status HTTP. Lo no reconocido es 500
// y no se expone al cliente.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	logger.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
