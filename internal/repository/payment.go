package repository

import (
	"context"
	"errors"
	"fmt"

	"clubsphere-server/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository interface {
	// FindByTransactionID returns (nil, nil) when no record exists for the id.
	FindByTransactionID(ctx context.Context, transactionID string) (*model.PaymentRecord, error)
	Insert(ctx context.Context, rec *model.PaymentRecord) error
	FindByMemberEmail(ctx context.Context, email string) ([]*model.PaymentRecord, error)
}

type paymentRepoImpl struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepoImpl{col: db.Collection("payments")}
}

func (r *paymentRepoImpl) FindByTransactionID(ctx context.Context, transactionID string) (*model.PaymentRecord, error) {
	var rec model.PaymentRecord
	err := r.col.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment by transaction id: %w", err)
	}
	return &rec, nil
}

func (r *paymentRepoImpl) Insert(ctx context.Context, rec *model.PaymentRecord) error {
	_, err := r.col.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("payment %s: %w", rec.TransactionID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *paymentRepoImpl) FindByMemberEmail(ctx context.Context, email string) ([]*model.PaymentRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"memberEmail": email},
		options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find payments by member email: %w", err)
	}
	var records []*model.PaymentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return records, nil
}
