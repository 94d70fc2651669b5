package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"flatscout/internal/domain"
)

func TestProfileService_SaveUsesCaller(t *testing.T) {
	repo := &mockProfileRepo{}
	svc := NewProfileService(zap.NewNop(), repo)

	in := flatmate("spoofed", "spoofed@example.com", 700)
	saved, err := svc.Save(context.Background(), "u1", " U1@Example.com ", in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UserID != "u1" || saved.UserEmail != "u1@example.com" {
		t.Fatalf("expected caller identity, got %s / %s", saved.UserID, saved.UserEmail)
	}

	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Budget.Float() != 700 {
		t.Fatalf("unexpected budget %v", got.Budget.Float())
	}
}

func TestProfileService_SaveValidation(t *testing.T) {
	repo := &mockProfileRepo{}
	svc := NewProfileService(nil, repo)

	tests := []struct {
		name   string
		mutate func(p *domain.FlatmateProfile)
	}{
		{"missing habits", func(p *domain.FlatmateProfile) { p.Habits = nil }},
		{"missing name", func(p *domain.FlatmateProfile) { p.Name = "  " }},
		{"missing gender", func(p *domain.FlatmateProfile) { p.Gender = "" }},
		{"negative budget", func(p *domain.FlatmateProfile) { p.Budget = domain.NewBudget(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := flatmate("u1", "", 500)
			tt.mutate(&p)
			if _, err := svc.Save(context.Background(), "u1", "", p); !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
	if repo.upserts != 0 {
		t.Fatalf("expected no writes on invalid input, got %d", repo.upserts)
	}
}

func TestProfileService_GetNotFound(t *testing.T) {
	svc := NewProfileService(nil, &mockProfileRepo{})
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
