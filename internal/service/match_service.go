package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"flatscout/internal/domain"
	"flatscout/internal/matching"
	"flatscout/internal/repository"
)

const defaultCandidateLimit = 500

// RankingObserver recibe metricas de cada ranking.
type RankingObserver interface {
	ObserveRanking(duration time.Duration, candidates int)
	ObserveError(reason string)
}

type noopObserver struct{}

func (noopObserver) ObserveRanking(time.Duration, int) {}
func (noopObserver) ObserveError(string)               {}

// MatchService arma el ranking de companeros de piso para un usuario.
type MatchService struct {
	logger         *zap.Logger
	profiles       repository.FlatmateProfileRepository
	connections    repository.ConnectionRepository
	limiter        RateLimiter
	observer       RankingObserver
	candidateLimit int
}

func NewMatchService(
	logger *zap.Logger,
	profiles repository.FlatmateProfileRepository,
	connections repository.ConnectionRepository,
	limiter RateLimiter,
	observer RankingObserver,
	candidateLimit int,
) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if candidateLimit <= 0 {
		candidateLimit = defaultCandidateLimit
	}
	return &MatchService{
		logger:         logger,
		profiles:       profiles,
		connections:    connections,
		limiter:        limiter,
		observer:       observer,
		candidateLimit: candidateLimit,
	}
}

// FindMatches puntua todos los perfiles candidatos contra el perfil del usuario.
// Se excluyen el propio usuario (por id y email) y los usuarios ya conectados.
func (s *MatchService) FindMatches(ctx context.Context, userID, userEmail string) ([]domain.ScoredProfile, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, "match:"+userID) {
		return nil, ErrRateLimited
	}
	start := time.Now()

	var (
		reference  domain.FlatmateProfile
		connected  []string
		candidates []domain.FlatmateProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetByUserID(gctx, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("load reference profile: %w", err)
		}
		reference = p
		return nil
	})
	g.Go(func() error {
		ids, err := s.connections.ListConnectedUserIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("load connections: %w", err)
		}
		connected = ids
		return nil
	})
	g.Go(func() error {
		list, err := s.profiles.ListCandidates(gctx, userID, userEmail, s.candidateLimit)
		if err != nil {
			return fmt.Errorf("load candidates: %w", err)
		}
		candidates = list
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			s.observer.ObserveError("profile_not_found")
		} else {
			s.observer.ObserveError("storage")
			s.logger.Error("match fetch failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	candidates = excludeUsers(candidates, connected)

	ranked, err := matching.Rank(reference, candidates)
	if err != nil {
		s.observer.ObserveError("encode")
		s.logger.Warn("ranking failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	for i := range ranked {
		ranked[i].ActualUserID = ranked[i].UserID
	}

	s.observer.ObserveRanking(time.Since(start), len(candidates))
	s.logger.Debug("matches ranked",
		zap.String("user_id", userID),
		zap.Int("candidates", len(candidates)),
		zap.Int("excluded_connections", len(connected)),
	)
	return ranked, nil
}

func excludeUsers(profiles []domain.FlatmateProfile, userIDs []string) []domain.FlatmateProfile {
	if len(userIDs) == 0 {
		return profiles
	}
	skip := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		skip[id] = struct{}{}
	}
	kept := make([]domain.FlatmateProfile, 0, len(profiles))
	for _, p := range profiles {
		if _, ok := skip[p.UserID]; ok {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
