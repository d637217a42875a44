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

type IdeaRepository struct {
	col *mongo.Collection
}

func NewIdeaRepository(db *mongo.Database) *IdeaRepository {
	return &IdeaRepository{col: db.Collection("ideas")}
}

// InsertMany stores a batch of ideas for one entry. An empty batch is a
// no-op, not an error.
func (r *IdeaRepository) InsertMany(ctx context.Context, ideas []models.Idea) ([]models.Idea, error) {
	if len(ideas) == 0 {
		return []models.Idea{}, nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(ideas))
	for i := range ideas {
		if ideas[i].CreatedAt.IsZero() {
			ideas[i].CreatedAt = now
		}
		docs = append(docs, ideas[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, id := range res.InsertedIDs {
		ideas[i].ID = id.(primitive.ObjectID)
	}
	return ideas, nil
}

// ListByEntry returns the ideas belonging to one entry.
func (r *IdeaRepository) ListByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) ([]models.Idea, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "entry_id": entryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ideas := []models.Idea{}
	if err := cur.All(ctx, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// CoveredEntryIDs returns the set of entry ids that already have at least
// one idea. The backfill loop excludes these up front.
func (r *IdeaRepository) CoveredEntryIDs(ctx context.Context, userID string) (map[primitive.ObjectID]struct{}, error) {
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

// DeleteByEntry removes the ideas tied to a deleted entry.
func (r *IdeaRepository) DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "entry_id": entryID})
	return err
}
