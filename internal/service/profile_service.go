package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flatscout/internal/domain"
	"flatscout/internal/repository"
)

// ProfileService gestiona el perfil de flatmate del usuario autenticado.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.FlatmateProfileRepository
}

func NewProfileService(logger *zap.Logger, profiles repository.FlatmateProfileRepository) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{logger: logger, profiles: profiles}
}

// Save guarda el perfil a nombre del usuario autenticado; userId y userEmail
// del cuerpo se ignoran.
func (s *ProfileService) Save(ctx context.Context, userID, userEmail string, profile domain.FlatmateProfile) (domain.FlatmateProfile, error) {
	profile.UserID = userID
	profile.UserEmail = strings.ToLower(strings.TrimSpace(userEmail))
	profile.Name = strings.TrimSpace(profile.Name)

	if err := validateProfile(profile); err != nil {
		return domain.FlatmateProfile{}, err
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.logger.Error("profile upsert failed", zap.String("user_id", userID), zap.Error(err))
		return domain.FlatmateProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.FlatmateProfile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.FlatmateProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.FlatmateProfile{}, err
	}
	return p, nil
}

func validateProfile(p domain.FlatmateProfile) error {
	switch {
	case p.UserID == "":
		return fmt.Errorf("%w: userId required", ErrInvalidProfile)
	case p.Name == "":
		return fmt.Errorf("%w: name required", ErrInvalidProfile)
	case p.Gender == "":
		return fmt.Errorf("%w: gender required", ErrInvalidProfile)
	case p.Habits == nil:
		return fmt.Errorf("%w: habits required", ErrInvalidProfile)
	case p.Budget.Float() < 0:
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidProfile)
	}
	return nil
}
