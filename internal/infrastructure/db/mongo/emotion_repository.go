package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

const collectionEmotions = "emotions"

// EmotionRepository implements ports.EmotionRepository using MongoDB.
type EmotionRepository struct {
	coll *mongo.Collection
}

func NewEmotionRepository(db *mongo.Database) *EmotionRepository {
	return &EmotionRepository{coll: db.Collection(collectionEmotions)}
}

type mongoEmotion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       primitive.ObjectID `bson:"user"`
	Mood       *string            `bson:"mood,omitempty"`
	UserPrompt string             `bson:"userprompt"`
	AIScore    float64            `bson:"aiscore"`
	AIAnalysis *string            `bson:"aianalysis,omitempty"`
	Date       time.Time          `bson:"date"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (e mongoEmotion) toDomain() *domain.EmotionRecord {
	return &domain.EmotionRecord{
		ID:         e.ID.Hex(),
		UserID:     e.User.Hex(),
		Mood:       e.Mood,
		UserPrompt: e.UserPrompt,
		Score:      domain.Score(e.AIScore),
		Analysis:   e.AIAnalysis,
		Date:       e.Date.UTC(),
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}

func (r *EmotionRepository) Create(ctx context.Context, rec *domain.EmotionRecord) (*domain.EmotionRecord, error) {
	userID, err := primitive.ObjectIDFromHex(rec.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert emotion: invalid user id %q", rec.UserID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmotion{
		ID:         primitive.NewObjectID(),
		User:       userID,
		Mood:       rec.Mood,
		UserPrompt: rec.UserPrompt,
		AIScore:    float64(rec.Score),
		AIAnalysis: rec.Analysis,
		Date:       rec.Date,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert emotion: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EmotionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.EmotionRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{"user": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find emotions: %w", err)
	}

	var docs []mongoEmotion
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode emotions: %w", err)
	}

	out := make([]*domain.EmotionRecord, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *EmotionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("emotions indexes: %w", err)
	}
	return nil
}
