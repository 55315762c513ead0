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

type UserRepository interface {
	Find(ctx context.Context) ([]*model.User, error)
	// FindByEmail returns (nil, nil) when no user has the email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error)
	UpdateByEmail(ctx context.Context, email string, fields map[string]any) (matched, modified int64, err error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepoImpl{col: db.Collection("users")}
}

func (r *userRepoImpl) Find(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepoImpl) Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *userRepoImpl) UpdateByEmail(ctx context.Context, email string, fields map[string]any) (int64, int64, error) {
	// Client-supplied patch is applied as-is; email and _id stay immutable.
	delete(fields, "email")
	delete(fields, "_id")
	delete(fields, "id")
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return 0, 0, fmt.Errorf("update user by email: %w", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
