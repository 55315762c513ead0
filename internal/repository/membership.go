package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsphere-server/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MembershipRepository interface {
	// FindByClubAndEmail returns (nil, nil) when the member has no membership
	// in the club.
	FindByClubAndEmail(ctx context.Context, clubID, email string) (*model.Membership, error)
	FindByMemberEmail(ctx context.Context, email string) ([]*model.Membership, error)
	Insert(ctx context.Context, m *model.Membership) (primitive.ObjectID, error)
	// MarkPaid flips a membership to paid in place, recording the fee and the
	// provider transaction that settled it.
	MarkPaid(ctx context.Context, id primitive.ObjectID, amountCents int64, transactionID string) error
}

type membershipRepoImpl struct {
	col *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) MembershipRepository {
	return &membershipRepoImpl{col: db.Collection("memberships")}
}

func (r *membershipRepoImpl) FindByClubAndEmail(ctx context.Context, clubID, email string) (*model.Membership, error) {
	var m model.Membership
	err := r.col.FindOne(ctx, bson.M{"clubId": clubID, "memberEmail": email}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return &m, nil
}

func (r *membershipRepoImpl) FindByMemberEmail(ctx context.Context, email string) ([]*model.Membership, error) {
	cursor, err := r.col.Find(ctx, bson.M{"memberEmail": email},
		options.Find().SetSort(bson.D{{Key: "joinAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find memberships by member email: %w", err)
	}
	var memberships []*model.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("decode memberships: %w", err)
	}
	return memberships, nil
}

func (r *membershipRepoImpl) Insert(ctx context.Context, m *model.Membership) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("membership %s/%s: %w", m.ClubID, m.MemberEmail, ErrDuplicate)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert membership: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *membershipRepoImpl) MarkPaid(ctx context.Context, id primitive.ObjectID, amountCents int64, transactionID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":        model.PaymentStatusPaid,
			"amountCents":   amountCents,
			"transactionId": transactionID,
			"paidAt":        time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("mark membership paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mark membership paid: no membership with id %s", id.Hex())
	}
	return nil
}
