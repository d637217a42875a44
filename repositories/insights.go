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

type InsightRepository struct {
	col *mongo.Collection
}

func NewInsightRepository(db *mongo.Database) *InsightRepository {
	return &InsightRepository{col: db.Collection("insights")}
}

// InsertMany stores a batch of insights for one entry. An empty batch is a
// no-op, not an error.
func (r *InsightRepository) InsertMany(ctx context.Context, insights []models.Insight) ([]models.Insight, error) {
	if len(insights) == 0 {
		return []models.Insight{}, nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(insights))
	for i := range insights {
		if insights[i].CreatedAt.IsZero() {
			insights[i].CreatedAt = now
		}
		docs = append(docs, insights[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, id := range res.InsertedIDs {
		insights[i].ID = id.(primitive.ObjectID)
	}
	return insights, nil
}

// ListByEntry returns the insights belonging to one entry.
func (r *InsightRepository) ListByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) ([]models.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "entry_id": entryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	insights := []models.Insight{}
	if err := cur.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// CoveredEntryIDs returns the set of entry ids that already have at least
// one insight.
func (r *InsightRepository) CoveredEntryIDs(ctx context.Context, userID string) (map[primitive.ObjectID]struct{}, error) {
	raw, err := r.col.Distinct(ctx, "entry_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	covered := make(map[primitive.ObjectID]struct{}, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			covered[id] = struct{}{}
		}
	}
	return covered, nil
}

// DeleteByEntry removes the insights tied to a deleted entry.
func (r *InsightRepository) DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "entry_id": entryID})
	return err
}
