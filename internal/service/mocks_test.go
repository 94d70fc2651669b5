package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"flatscout/internal/domain"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo(users ...domain.User) *mockUserRepo {
	m := &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
	for _, u := range users {
		_ = m.Create(context.Background(), u)
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[strings.ToLower(user.Email)] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type mockProfileRepo struct {
	mu        sync.Mutex
	profiles  []domain.FlatmateProfile
	listErr   error
	upserts   int
	lastLimit int
}

func (m *mockProfileRepo) Upsert(_ context.Context, profile domain.FlatmateProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	for i, p := range m.profiles {
		if p.UserID == profile.UserID {
			m.profiles[i] = profile
			return nil
		}
	}
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.FlatmateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return domain.FlatmateProfile{}, pgx.ErrNoRows
}

func (m *mockProfileRepo) ListCandidates(_ context.Context, excludeUserID, excludeEmail string, limit int) ([]domain.FlatmateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.FlatmateProfile
	for _, p := range m.profiles {
		if p.UserID == excludeUserID {
			continue
		}
		if excludeEmail != "" && p.UserEmail == excludeEmail {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
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
	for i, r := range m.requests {
		if r.FromUserID == req.FromUserID && r.ToUserID == req.ToUserID {
			r.Status = req.Status
			r.CreatedAt = req.CreatedAt
			r.RespondedAt = nil
			m.requests[i] = r
			return r, nil
		}
	}
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
			r.Status = status
			r.RespondedAt = &at
			m.requests[i] = r
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockConnectionRepo) ListPendingFor(_ context.Context, to string) ([]domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ConnectionRequest
	for _, r := range m.requests {
		if r.ToUserID == to && r.Status == domain.ConnectionPending {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
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
		switch userID {
		case r.FromUserID:
			ids = append(ids, r.ToUserID)
		case r.ToUserID:
			ids = append(ids, r.FromUserID)
		}
	}
	return ids, nil
}

func (m *mockConnectionRepo) ListConnectedUsers(ctx context.Context, userID string) ([]domain.User, error) {
	ids, err := m.ListConnectedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m.users == nil {
		return nil, errors.New("mock users not configured")
	}
	var users []domain.User
	for _, id := range ids {
		u, err := m.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (m *mockConnectionRepo) AreConnected(ctx context.Context, a, b string) (bool, error) {
	ids, err := m.ListConnectedUserIDs(ctx, a)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == b {
			return true, nil
		}
	}
	return false, nil
}

type denyLimiter struct{ keys []string }

func (d *denyLimiter) Allow(_ context.Context, key string) bool {
	d.keys = append(d.keys, key)
	return false
}

func flatmate(userID, email string, budget float64) domain.FlatmateProfile {
	return domain.FlatmateProfile{
		UserID:          userID,
		UserEmail:       email,
		Name:            "Flatmate " + userID,
		Gender:          "Male",
		PreferredGender: "Female",
		Budget:          domain.NewBudget(budget),
		Habits: &domain.Habits{
			Smoking:     "No",
			Pets:        "No",
			SleepTime:   "Early",
			Cleanliness: "Medium",
		},
	}
}
