package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"echo-journal/models"
)

type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection("journal_entries")}
}

// Insert stores a new entry and returns its generated id.
func (r *EntryRepository) Insert(ctx context.Context, e *models.JournalEntry) (primitive.ObjectID, error) {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if e.Themes == nil {
		e.Themes = []string{}
	}

	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	e.ID = id
	return id, nil
}

// CountRecordedSince counts one user's entries recorded at or after the
// given instant. The quota gate reads this fresh on every submission.
func (r *EntryRepository) CountRecordedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"user_id":     userID,
		"recorded_at": bson.M{"$gte": since},
	})
}

// FindByID returns an entry only when it belongs to the given user.
func (r *EntryRepository) FindByID(ctx context.Context, userID string, id primitive.ObjectID) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUser returns entries in reverse-chronological order with simple
// skip/limit pagination.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.JournalEntry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.JournalEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAllByUser returns every entry for one user, newest first. Used by the
// backfill loop, which needs the full history.
func (r *EntryRepository) ListAllByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.JournalEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateText edits the title/body of an entry without touching any derived
// data, recomputing the word count from the new body.
func (r *EntryRepository) UpdateText(ctx context.Context, userID string, id primitive.ObjectID, title, body string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{
			"entry_title":   title,
			"cleaned_entry": body,
			"word_count":    len(strings.Fields(body)),
			"updated_at":    time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes one entry owned by the user.
func (r *EntryRepository) Delete(ctx context.Context, userID string, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DistinctUserIDs lists every user id with at least one entry. Drives the
// administrative all-users backfill.
func (r *EntryRepository) DistinctUserIDs(ctx context.Context) ([]string, error) {
	raw, err := r.col.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
