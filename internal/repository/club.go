package repository

import (
	"context"
	"errors"
	"fmt"

	"clubsphere-server/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClubRepository interface {
	Find(ctx context.Context) ([]*model.Club, error)
	// FindByID returns (nil, nil) when no club has the id.
	FindByID(ctx context.Context, id string) (*model.Club, error)
	// IncrementMembersCount adds delta to the club's member counter. It is
	// only ever called with delta=1, once per newly created membership.
	IncrementMembersCount(ctx context.Context, clubID string, delta int64) error
}

type clubRepoImpl struct {
	col *mongo.Collection
}

func NewClubRepository(db *mongo.Database) ClubRepository {
	return &clubRepoImpl{col: db.Collection("clubs")}
}

func (r *clubRepoImpl) Find(ctx context.Context) ([]*model.Club, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find clubs: %w", err)
	}
	var clubs []*model.Club
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, fmt.Errorf("decode clubs: %w", err)
	}
	return clubs, nil
}

func (r *clubRepoImpl) FindByID(ctx context.Context, id string) (*model.Club, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid club id %q: %w", id, err)
	}
	var club model.Club
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&club)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find club by id: %w", err)
	}
	return &club, nil
}

func (r *clubRepoImpl) IncrementMembersCount(ctx context.Context, clubID string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(clubID)
	if err != nil {
		return fmt.Errorf("invalid club id %q: %w", clubID, err)
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"membersCount": delta}},
	)
	if err != nil {
		return fmt.Errorf("increment members count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("increment members count: no club with id %s", clubID)
	}
	return nil
}
