package repository

import (
	"context"
	"errors"
	"fmt"

	"clubsphere-server/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository interface {
	Find(ctx context.Context) ([]*model.Event, error)
	// FindByID returns (nil, nil) when no event has the id.
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

type eventRepoImpl struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepoImpl{col: db.Collection("events")}
}

func (r *eventRepoImpl) Find(ctx context.Context) ([]*model.Event, error) {
	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "eventDate", Value: 1}, {Key: "eventTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	var events []*model.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (r *eventRepoImpl) FindByID(ctx context.Context, id string) (*model.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", id, err)
	}
	var event model.Event
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

type EventRegistrationRepository interface {
	// FindByEventAndEmail returns (nil, nil) when the member is not registered.
	FindByEventAndEmail(ctx context.Context, eventID, email string) (*model.EventRegistration, error)
	Insert(ctx context.Context, reg *model.EventRegistration) (primitive.ObjectID, error)
}

type eventRegistrationRepoImpl struct {
	col *mongo.Collection
}

func NewEventRegistrationRepository(db *mongo.Database) EventRegistrationRepository {
	return &eventRegistrationRepoImpl{col: db.Collection("eventRegistrations")}
}

func (r *eventRegistrationRepoImpl) FindByEventAndEmail(ctx context.Context, eventID, email string) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	err := r.col.FindOne(ctx, bson.M{"eventId": eventID, "memberEmail": email}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find event registration: %w", err)
	}
	return &reg, nil
}

func (r *eventRegistrationRepoImpl) Insert(ctx context.Context, reg *model.EventRegistration) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, reg)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("registration %s/%s: %w", reg.EventID, reg.MemberEmail, ErrDuplicate)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert event registration: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}
