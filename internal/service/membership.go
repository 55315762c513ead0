package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/metrics"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MembershipService interface {
	AddMembership(ctx context.Context, req *dto.AddMembershipRequest) (primitive.ObjectID, error)
	MembershipsByMember(ctx context.Context, email string) ([]*model.Membership, error)
	// MembershipByClubAndMember returns (nil, nil) when no membership exists.
	MembershipByClubAndMember(ctx context.Context, clubID, email string) (*model.Membership, error)
}

type membershipServiceImpl struct {
	membershipRepo repository.MembershipRepository
	clubRepo       repository.ClubRepository
}

func NewMembershipService(membershipRepo repository.MembershipRepository, clubRepo repository.ClubRepository) MembershipService {
	return &membershipServiceImpl{
		membershipRepo: membershipRepo,
		clubRepo:       clubRepo,
	}
}

// AddMembership is the manual join path: free of charge, at most one
// membership per club and member. The counter increment comes strictly after
// a successful insert so a failed insert never inflates it.
func (s *membershipServiceImpl) AddMembership(ctx context.Context, req *dto.AddMembershipRequest) (primitive.ObjectID, error) {
	if req.ClubID == "" || req.MemberEmail == "" {
		return primitive.NilObjectID, fmt.Errorf("clubId and memberEmail are required: %w", ErrInvalidInput)
	}

	existing, err := s.membershipRepo.FindByClubAndEmail(ctx, req.ClubID, req.MemberEmail)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("look up membership: %w", err)
	}
	if existing != nil {
		return primitive.NilObjectID, ErrDuplicateMembership
	}

	id, err := s.membershipRepo.Insert(ctx, &model.Membership{
		ClubID:      req.ClubID,
		ClubName:    req.ClubName,
		MemberEmail: req.MemberEmail,
		MemberName:  req.MemberName,
		MemberPhoto: req.MemberPhoto,
		AmountCents: 0,
		Status:      model.PaymentStatusPending,
		JoinAt:      time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// concurrent duplicate caught by the unique index
			return primitive.NilObjectID, ErrDuplicateMembership
		}
		return primitive.NilObjectID, err
	}
	metrics.MembershipsCreated.WithLabelValues("manual").Inc()

	if err := s.clubRepo.IncrementMembersCount(ctx, req.ClubID, 1); err != nil {
		return id, fmt.Errorf("membership %s created but counter not bumped: %w", id.Hex(), err)
	}
	return id, nil
}

func (s *membershipServiceImpl) MembershipsByMember(ctx context.Context, email string) ([]*model.Membership, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	return s.membershipRepo.FindByMemberEmail(ctx, email)
}

func (s *membershipServiceImpl) MembershipByClubAndMember(ctx context.Context, clubID, email string) (*model.Membership, error) {
	if clubID == "" || email == "" {
		return nil, fmt.Errorf("clubId and email are required: %w", ErrInvalidInput)
	}
	return s.membershipRepo.FindByClubAndEmail(ctx, clubID, email)
}
