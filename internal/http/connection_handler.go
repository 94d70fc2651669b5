package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flatscout/internal/service"
)

// ConnectionHandler expone las solicitudes de conexion entre usuarios.
type ConnectionHandler struct {
	logger      *zap.Logger
	connections *service.ConnectionService
}

func NewConnectionHandler(logger *zap.Logger, connections *service.ConnectionService) *ConnectionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionHandler{logger: logger, connections: connections}
}

// SendRequest maneja POST /connections/requests.
func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	var req struct {
		ToUserID string `json:"to_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_user_id is required"})
		return
	}

	created, err := h.connections.Send(c.Request.Context(), claims.UserID, req.ToUserID)
	if err != nil {
		writeError(c, h.logger, "send connection request", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "connection request sent",
		"request": created,
	})
}

// AcceptRequest maneja POST /connections/requests/:id/accept.
func (h *ConnectionHandler) AcceptRequest(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	from, err := h.connections.Accept(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		writeError(c, h.logger, "accept connection request", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "connection request accepted",
		"connected_user": from,
	})
}

// DeclineRequest maneja POST /connections/requests/:id/decline.
func (h *ConnectionHandler) DeclineRequest(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	if err := h.connections.Decline(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		writeError(c, h.logger, "decline connection request", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "connection request declined"})
}

// PendingRequests maneja GET /connections/requests/pending.
func (h *ConnectionHandler) PendingRequests(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	requests, err := h.connections.Pending(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, h.logger, "list pending requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Status maneja GET /connections/status/:userId.
func (h *ConnectionHandler) Status(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	status, err := h.connections.Status(c.Request.Context(), claims.UserID, c.Param("userId"))
	if err != nil {
		writeError(c, h.logger, "connection status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListConnected maneja GET /connections.
func (h *ConnectionHandler) ListConnected(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	users, err := h.connections.Connected(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, h.logger, "list connections", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": users})
}
