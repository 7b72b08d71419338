package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionBlacklist = "blacklists"

// TokenBlacklist implements ports.TokenBlacklist. A TTL index on expires_at
// lets MongoDB drop entries once the token would have expired anyway.
type TokenBlacklist struct {
	coll *mongo.Collection
}

func NewTokenBlacklist(db *mongo.Database) *TokenBlacklist {
	return &TokenBlacklist{coll: db.Collection(collectionBlacklist)}
}

type blacklistEntry struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := b.coll.FindOne(ctx, bson.M{"token": token}, opts).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, fmt.Errorf("find blacklisted token: %w", err)
	}
}

// Revoke inserts token. The unique index turns a concurrent second revoke
// into alreadyRevoked rather than an error.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := b.coll.InsertOne(ctx, blacklistEntry{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, fmt.Errorf("insert blacklisted token: %w", err)
	}
	return false, nil
}

func (b *TokenBlacklist) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
	if _, err := b.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("blacklist indexes: %w", err)
	}
	return nil
}
