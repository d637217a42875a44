package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"echo-journal/models"
)

type MoodHistoryRepository struct {
	col *mongo.Collection
}

func NewMoodHistoryRepository(db *mongo.Database) *MoodHistoryRepository {
	return &MoodHistoryRepository{col: db.Collection("mood_history")}
}

// Insert duplicates an entry's mood classification into the trend table.
func (r *MoodHistoryRepository) Insert(ctx context.Context, p *models.MoodPoint) error {
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// ListByUser returns mood points in chronological order, optionally bounded
// to points recorded at or after since (zero time means unbounded).
func (r *MoodHistoryRepository) ListByUser(ctx context.Context, userID string, since time.Time) ([]models.MoodPoint, error) {
	filter := bson.M{"user_id": userID}
	if !since.IsZero() {
		filter["recorded_at"] = bson.M{"$gte": since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []models.MoodPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// DeleteByEntry removes the mood point tied to a deleted entry.
func (r *MoodHistoryRepository) DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "entry_id": entryID})
	return err
}
