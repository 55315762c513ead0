package service

import (
	"context"
	"fmt"

	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"
)

type ClubService interface {
	Clubs(ctx context.Context) ([]*model.Club, error)
	// ClubByID returns (nil, nil) when no club has the id.
	ClubByID(ctx context.Context, id string) (*model.Club, error)
}

type clubServiceImpl struct {
	clubRepo repository.ClubRepository
}

func NewClubService(clubRepo repository.ClubRepository) ClubService {
	return &clubServiceImpl{clubRepo: clubRepo}
}

func (s *clubServiceImpl) Clubs(ctx context.Context) ([]*model.Club, error) {
	return s.clubRepo.Find(ctx)
}

func (s *clubServiceImpl) ClubByID(ctx context.Context, id string) (*model.Club, error) {
	if id == "" {
		return nil, fmt.Errorf("club id is required: %w", ErrInvalidInput)
	}
	return s.clubRepo.FindByID(ctx, id)
}
