package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubsphere-server/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongoClient connects, pings and creates the unique indexes the
// idempotency guards rely on. The check-then-act pattern in the services is
// only correct under concurrent duplicates because these indexes exist.
func InitMongoClient(ctx context.Context, cfg *config.Mongo) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, err
	}

	slog.Info("connected to mongodb", "database", cfg.Database)
	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexes := map[string]mongo.IndexModel{
		// dedup key for payment reconciliation
		"payments": unique(bson.D{{Key: "transactionId", Value: 1}}),
		// at most one membership per club and member
		"memberships": unique(bson.D{{Key: "clubId", Value: 1}, {Key: "memberEmail", Value: 1}}),
		// at most one registration per event and member
		"eventRegistrations": unique(bson.D{{Key: "eventId", Value: 1}, {Key: "memberEmail", Value: 1}}),
		"users":              unique(bson.D{{Key: "email", Value: 1}}),
	}

	for collection, idx := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("create index on %s: %w", collection, err)
		}
	}
	return nil
}

// TxnRunner runs a multi-write unit. The session-backed runner gives
// all-or-nothing semantics; the sequential runner applies writes in order and
// relies on every step being individually idempotent so a retry after partial
// failure converges.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewTxnRunner(client *mongo.Client, useTransactions bool) TxnRunner {
	if useTransactions {
		return &sessionTxnRunner{client: client}
	}
	return sequentialTxnRunner{}
}

type sessionTxnRunner struct {
	client *mongo.Client
}

func (r *sessionTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

type sequentialTxnRunner struct{}

func (sequentialTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
