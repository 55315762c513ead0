package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ongoingWindow is the span after "now" within which an event counts as
// ongoing. Measured as a real-valued duration: an event exactly 5 days out is
// ongoing, one second later it is upcoming.
const ongoingWindow = 5 * 24 * time.Hour

// ClassifyEventStatus maps an event start instant to its lifecycle phase
// relative to now. Pure and deterministic for a fixed now.
func ClassifyEventStatus(eventAt, now time.Time) model.EventStatus {
	if eventAt.Before(now) {
		return model.EventStatusPast
	}
	if eventAt.Sub(now) <= ongoingWindow {
		return model.EventStatusOngoing
	}
	return model.EventStatusUpcoming
}

type EventService interface {
	Events(ctx context.Context) ([]*model.Event, error)
	// EventByID returns (nil, nil) when no event has the id.
	EventByID(ctx context.Context, id string) (*model.Event, error)
	Register(ctx context.Context, req *dto.RegisterEventRequest) (primitive.ObjectID, error)
	IsRegistered(ctx context.Context, eventID, email string) (bool, error)
}

type eventServiceImpl struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.EventRegistrationRepository
}

func NewEventService(eventRepo repository.EventRepository, registrationRepo repository.EventRegistrationRepository) EventService {
	return &eventServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *eventServiceImpl) Events(ctx context.Context) ([]*model.Event, error) {
	events, err := s.eventRepo.Find(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, e := range events {
		stampStatus(e, now)
	}
	return events, nil
}

func (s *eventServiceImpl) EventByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil || event == nil {
		return nil, err
	}
	stampStatus(event, time.Now().UTC())
	return event, nil
}

func stampStatus(e *model.Event, now time.Time) {
	at, err := e.StartsAt()
	if err != nil {
		slog.Warn("event has unparseable date-time", "eventId", e.ID.Hex(), "error", err)
		return
	}
	e.Status = ClassifyEventStatus(at, now)
}

func (s *eventServiceImpl) Register(ctx context.Context, req *dto.RegisterEventRequest) (primitive.ObjectID, error) {
	if req.EventID == "" || req.MemberEmail == "" {
		return primitive.NilObjectID, fmt.Errorf("eventId and memberEmail are required: %w", ErrInvalidInput)
	}

	existing, err := s.registrationRepo.FindByEventAndEmail(ctx, req.EventID, req.MemberEmail)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("look up registration: %w", err)
	}
	if existing != nil {
		return primitive.NilObjectID, ErrDuplicateRegistration
	}

	id, err := s.registrationRepo.Insert(ctx, &model.EventRegistration{
		EventID:      req.EventID,
		MemberEmail:  req.MemberEmail,
		MemberName:   req.MemberName,
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return primitive.NilObjectID, ErrDuplicateRegistration
		}
		return primitive.NilObjectID, err
	}
	return id, nil
}

func (s *eventServiceImpl) IsRegistered(ctx context.Context, eventID, email string) (bool, error) {
	if eventID == "" || email == "" {
		return false, fmt.Errorf("eventId and email are required: %w", ErrInvalidInput)
	}
	reg, err := s.registrationRepo.FindByEventAndEmail(ctx, eventID, email)
	if err != nil {
		return false, err
	}
	return reg != nil, nil
}
