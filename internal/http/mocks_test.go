package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"flatscout/internal/domain"
)

type mockUserRepo struct {
	users map[string]domain.User
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

type mockProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.FlatmateProfile
	order    []string
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.FlatmateProfile)}
}

func (m *mockProfileRepo) Upsert(_ context.Context, p domain.FlatmateProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.UserID]; !ok {
		m.order = append(m.order, p.UserID)
	}
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.FlatmateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return domain.FlatmateProfile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) ListCandidates(_ context.Context, excludeUserID, excludeEmail string, limit int) ([]domain.FlatmateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FlatmateProfile
	for _, id := range m.order {
		p := m.profiles[id]
		if p.UserID == excludeUserID || (excludeEmail != "" && p.UserEmail == excludeEmail) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProfileRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.profiles), nil
}

type mockConnectionRepo struct {
	mu       sync.Mutex
	requests []domain.ConnectionRequest
	users    *mockUserRepo
}

func (m *mockConnectionRepo) Create(_ context.Context, req domain.ConnectionRequest) (domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return req, nil
}

func (m *mockConnectionRepo) GetByID(_ context.Context, id string) (domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.ConnectionRequest{}, pgx.ErrNoRows
}

func (m *mockConnectionRepo) FindPendingBetween(_ context.Context, from, to string) (domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.FromUserID == from && r.ToUserID == to && r.Status == domain.ConnectionPending {
			return r, nil
		}
	}
	return domain.ConnectionRequest{}, pgx.ErrNoRows
}

func (m *mockConnectionRepo) Respond(_ context.Context, id, status string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.requests {
		if r.ID == id && r.Status == domain.ConnectionPending {
			m.requests[i].Status = status
			m.requests[i].RespondedAt = &at
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockConnectionRepo) ListPendingFor(_ context.Context, to string) ([]domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ConnectionRequest
	for i := len(m.requests) - 1; i >= 0; i-- {
		if r := m.requests[i]; r.ToUserID == to && r.Status == domain.ConnectionPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockConnectionRepo) ListConnectedUserIDs(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, r := range m.requests {
		if r.Status != domain.ConnectionAccepted {
			continue
		}
		if r.FromUserID == userID {
			ids = append(ids, r.ToUserID)
		} else if r.ToUserID == userID {
			ids = append(ids, r.FromUserID)
		}
	}
	return ids, nil
}

func (m *mockConnectionRepo) ListConnectedUsers(ctx context.Context, userID string) ([]domain.User, error) {
	ids, _ := m.ListConnectedUserIDs(ctx, userID)
	var out []domain.User
	for _, id := range ids {
		if u, err := m.users.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockConnectionRepo) AreConnected(ctx context.Context, a, b string) (bool, error) {
	ids, _ := m.ListConnectedUserIDs(ctx, a)
	for _, id := range ids {
		if id == b {
			return true, nil
		}
	}
	return false, nil
}

func performRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
