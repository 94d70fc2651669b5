package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flatscout/internal/domain"
)

// ConnectionRepository persiste solicitudes de conexion entre usuarios.
// Existe como mucho una fila por par (from, to).
type ConnectionRepository interface {
	Create(ctx context.Context, req domain.ConnectionRequest) (domain.ConnectionRequest, error)
	GetByID(ctx context.Context, id string) (domain.ConnectionRequest, error)
	FindPendingBetween(ctx context.Context, fromUserID, toUserID string) (domain.ConnectionRequest, error)
	Respond(ctx context.Context, id, status string, at time.Time) error
	ListPendingFor(ctx context.Context, toUserID string) ([]domain.ConnectionRequest, error)
	ListConnectedUserIDs(ctx context.Context, userID string) ([]string, error)
	ListConnectedUsers(ctx context.Context, userID string) ([]domain.User, error)
	AreConnected(ctx context.Context, a, b string) (bool, error)
}

type PgConnectionRepository struct {
	pool *pgxpool.Pool
}

func NewPgConnectionRepository(pool *pgxpool.Pool) *PgConnectionRepository {
	return &PgConnectionRepository{pool: pool}
}

// Create inserta la solicitud. Si el par ya tenia una fila (p.ej. rechazada),
// se reabre como pendiente conservando su id.
func (r *PgConnectionRepository) Create(ctx context.Context, req domain.ConnectionRequest) (domain.ConnectionRequest, error) {
	const query = `
		INSERT INTO connection_requests (id, from_user_id, to_user_id, status, created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
		ON CONFLICT (from_user_id, to_user_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			responded_at = NULL
		RETURNING id, from_user_id, to_user_id, status, created_at, responded_at
	`
	status := req.Status
	if status == "" {
		status = domain.ConnectionPending
	}
	row := r.pool.QueryRow(ctx, query, req.ID, req.FromUserID, req.ToUserID, status, req.CreatedAt)
	return scanConnection(row)
}

func (r *PgConnectionRepository) GetByID(ctx context.Context, id string) (domain.ConnectionRequest, error) {
	const query = `
		SELECT id, from_user_id, to_user_id, status, created_at, responded_at
		FROM connection_requests
		WHERE id = $1
	`
	return scanConnection(r.pool.QueryRow(ctx, query, id))
}

// FindPendingBetween busca una solicitud pendiente de fromUserID a toUserID.
// Devuelve pgx.ErrNoRows si no hay ninguna.
func (r *PgConnectionRepository) FindPendingBetween(ctx context.Context, fromUserID, toUserID string) (domain.ConnectionRequest, error) {
	const query = `
		SELECT id, from_user_id, to_user_id, status, created_at, responded_at
		FROM connection_requests
		WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
	`
	return scanConnection(r.pool.QueryRow(ctx, query, fromUserID, toUserID))
}

// Respond solo transiciona solicitudes pendientes; si no hay fila afectada devuelve pgx.ErrNoRows.
func (r *PgConnectionRepository) Respond(ctx context.Context, id, status string, at time.Time) error {
	const query = `
		UPDATE connection_requests
		SET status = $2, responded_at = $3
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := r.pool.Exec(ctx, query, id, status, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgConnectionRepository) ListPendingFor(ctx context.Context, toUserID string) ([]domain.ConnectionRequest, error) {
	const query = `
		SELECT c.id, c.from_user_id, c.to_user_id, c.status, c.created_at, c.responded_at,
		       u.id, u.email, u.name, u.profile_image, u.role, u.created_at
		FROM connection_requests c
		JOIN users u ON u.id = c.from_user_id
		WHERE c.to_user_id = $1 AND c.status = 'pending'
		ORDER BY c.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, toUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.ConnectionRequest
	for rows.Next() {
		var (
			c    domain.ConnectionRequest
			from domain.User
		)
		if err := rows.Scan(
			&c.ID,
			&c.FromUserID,
			&c.ToUserID,
			&c.Status,
			&c.CreatedAt,
			&c.RespondedAt,
			&from.ID,
			&from.Email,
			&from.Name,
			&from.ProfileImage,
			&from.Role,
			&from.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.FromUser = &from
		requests = append(requests, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PgConnectionRepository) ListConnectedUserIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT CASE WHEN from_user_id = $1 THEN to_user_id ELSE from_user_id END
		FROM connection_requests
		WHERE status = 'accepted' AND (from_user_id = $1 OR to_user_id = $1)
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PgConnectionRepository) ListConnectedUsers(ctx context.Context, userID string) ([]domain.User, error) {
	const query = `
		SELECT DISTINCT u.id, u.email, u.name, u.profile_image, u.role, u.created_at
		FROM connection_requests c
		JOIN users u ON u.id = CASE WHEN c.from_user_id = $1 THEN c.to_user_id ELSE c.from_user_id END
		WHERE c.status = 'accepted' AND (c.from_user_id = $1 OR c.to_user_id = $1)
		ORDER BY u.name
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Name,
			&u.ProfileImage,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PgConnectionRepository) AreConnected(ctx context.Context, a, b string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE status = 'accepted'
			  AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
		)
	`
	var ok bool
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&ok)
	return ok, err
}

func scanConnection(row pgx.Row) (domain.ConnectionRequest, error) {
	var c domain.ConnectionRequest
	err := row.Scan(
		&c.ID,
		&c.FromUserID,
		&c.ToUserID,
		&c.Status,
		&c.CreatedAt,
		&c.RespondedAt,
	)
	if err != nil {
		return domain.ConnectionRequest{}, err
	}
	return c, nil
}

var _ ConnectionRepository = (*PgConnectionRepository)(nil)
