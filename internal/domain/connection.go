package domain

import "time"

const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionDeclined = "declined"
)

// ConnectionStatus describe la relacion entre dos usuarios vista desde uno de ellos.
type ConnectionStatus string

const (
	StatusConnected       ConnectionStatus = "connected"
	StatusRequestSent     ConnectionStatus = "request_sent"
	StatusRequestReceived ConnectionStatus = "request_received"
	StatusNotConnected    ConnectionStatus = "not_connected"
)

type ConnectionRequest struct {
	ID          string     `json:"id"`
	FromUserID  string     `json:"from_user_id"`
	ToUserID    string     `json:"to_user_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	FromUser    *User      `json:"from_user,omitempty"`
}

// ConnectedUser es la vista publica de un usuario conectado.
type ConnectedUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}
