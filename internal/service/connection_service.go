package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flatscout/internal/domain"
	"flatscout/internal/repository"
)

const avatarFallbackURL = "https://ui-avatars.com/api/?name=%s&background=4f46e5&color=fff&size=128"

// ConnectionService aplica las reglas de solicitudes de conexion entre usuarios.
type ConnectionService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	connections repository.ConnectionRepository
	limiter     RateLimiter
	now         func() time.Time
}

func NewConnectionService(logger *zap.Logger, users repository.UserRepository, connections repository.ConnectionRepository, limiter RateLimiter) *ConnectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionService{
		logger:      logger,
		users:       users,
		connections: connections,
		limiter:     limiter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Send crea una solicitud de fromUserID hacia target (id o email).
func (s *ConnectionService) Send(ctx context.Context, fromUserID, target string) (domain.ConnectionRequest, error) {
	toUser, err := s.resolveUser(ctx, target)
	if err != nil {
		return domain.ConnectionRequest{}, err
	}
	if toUser.ID == fromUserID {
		return domain.ConnectionRequest{}, ErrSelfConnection
	}

	connected, err := s.connections.AreConnected(ctx, fromUserID, toUser.ID)
	if err != nil {
		return domain.ConnectionRequest{}, err
	}
	if connected {
		return domain.ConnectionRequest{}, ErrAlreadyConnected
	}
	if _, err := s.connections.FindPendingBetween(ctx, fromUserID, toUser.ID); err == nil {
		return domain.ConnectionRequest{}, ErrRequestAlreadySent
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.ConnectionRequest{}, err
	}
	if _, err := s.connections.FindPendingBetween(ctx, toUser.ID, fromUserID); err == nil {
		return domain.ConnectionRequest{}, ErrRequestAlreadyReceived
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.ConnectionRequest{}, err
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, "connect:"+fromUserID) {
		return domain.ConnectionRequest{}, ErrRateLimited
	}

	req, err := s.connections.Create(ctx, domain.ConnectionRequest{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUser.ID,
		Status:     domain.ConnectionPending,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return domain.ConnectionRequest{}, fmt.Errorf("create connection request: %w", err)
	}
	s.logger.Info("connection request sent",
		zap.String("request_id", req.ID),
		zap.String("from_user_id", fromUserID),
		zap.String("to_user_id", toUser.ID),
	)
	return req, nil
}

// Accept marca la solicitud como aceptada y devuelve al usuario que la envio.
func (s *ConnectionService) Accept(ctx context.Context, requestID, userID string) (domain.User, error) {
	req, err := s.respond(ctx, requestID, userID, domain.ConnectionAccepted)
	if err != nil {
		return domain.User{}, err
	}
	from, err := s.users.GetByID(ctx, req.FromUserID)
	if err != nil {
		return domain.User{}, err
	}
	return from, nil
}

func (s *ConnectionService) Decline(ctx context.Context, requestID, userID string) error {
	_, err := s.respond(ctx, requestID, userID, domain.ConnectionDeclined)
	return err
}

func (s *ConnectionService) respond(ctx context.Context, requestID, userID, status string) (domain.ConnectionRequest, error) {
	req, err := s.connections.GetByID(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ConnectionRequest{}, ErrRequestNotFound
	}
	if err != nil {
		return domain.ConnectionRequest{}, err
	}
	if req.ToUserID != userID {
		return domain.ConnectionRequest{}, ErrNotRecipient
	}
	if req.Status != domain.ConnectionPending {
		return domain.ConnectionRequest{}, ErrRequestProcessed
	}

	at := s.now()
	if err := s.connections.Respond(ctx, req.ID, status, at); err != nil {
		// otra respuesta concurrente gano la carrera
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ConnectionRequest{}, ErrRequestProcessed
		}
		return domain.ConnectionRequest{}, err
	}
	req.Status = status
	req.RespondedAt = &at
	s.logger.Info("connection request answered",
		zap.String("request_id", req.ID),
		zap.String("status", status),
	)
	return req, nil
}

// Pending lista las solicitudes entrantes pendientes, las mas recientes primero.
func (s *ConnectionService) Pending(ctx context.Context, userID string) ([]domain.ConnectionRequest, error) {
	requests, err := s.connections.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.ConnectionRequest{}
	}
	return requests, nil
}

// Status describe la relacion de userID con target visto desde userID.
func (s *ConnectionService) Status(ctx context.Context, userID, target string) (domain.ConnectionStatus, error) {
	targetUser, err := s.resolveUser(ctx, target)
	if err != nil {
		return "", err
	}
	connected, err := s.connections.AreConnected(ctx, userID, targetUser.ID)
	if err != nil {
		return "", err
	}
	if connected {
		return domain.StatusConnected, nil
	}
	if _, err := s.connections.FindPendingBetween(ctx, userID, targetUser.ID); err == nil {
		return domain.StatusRequestSent, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	if _, err := s.connections.FindPendingBetween(ctx, targetUser.ID, userID); err == nil {
		return domain.StatusRequestReceived, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	return domain.StatusNotConnected, nil
}

// Connected lista los usuarios con una solicitud aceptada en cualquier direccion.
func (s *ConnectionService) Connected(ctx context.Context, userID string) ([]domain.ConnectedUser, error) {
	users, err := s.connections.ListConnectedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ConnectedUser, 0, len(users))
	for _, u := range users {
		out = append(out, domain.ConnectedUser{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			ProfilePicture: avatarFor(u),
		})
	}
	return out, nil
}

// resolveUser acepta un id de usuario o, si contiene '@', un email.
func (s *ConnectionService) resolveUser(ctx context.Context, target string) (domain.User, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return domain.User{}, ErrUserNotFound
	}
	u, err := s.users.GetByID(ctx, target)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	if strings.Contains(target, "@") {
		u, err = s.users.GetByEmail(ctx, target)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
	}
	return domain.User{}, ErrUserNotFound
}

func avatarFor(u domain.User) string {
	if u.ProfileImage != "" {
		return u.ProfileImage
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	return fmt.Sprintf(avatarFallbackURL, url.QueryEscape(name))
}
