package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Users(ctx context.Context) ([]*model.User, error)
	// UserByEmail returns (nil, nil) when no user has the email.
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) (primitive.ObjectID, error)
	UpdateUser(ctx context.Context, email string, fields map[string]any) (*dto.UpdateResult, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Users(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.Find(ctx)
}

func (s *userServiceImpl) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *userServiceImpl) CreateUser(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	if u.Email == "" {
		return primitive.NilObjectID, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByEmail(ctx, u.Email)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return primitive.NilObjectID, ErrUserExists
	}

	u.CreatedAt = time.Now().UTC()
	id, err := s.userRepo.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return primitive.NilObjectID, ErrUserExists
		}
		return primitive.NilObjectID, err
	}
	return id, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, email string, fields map[string]any) (*dto.UpdateResult, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", ErrInvalidInput)
	}
	matched, modified, err := s.userRepo.UpdateByEmail(ctx, email, fields)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}
