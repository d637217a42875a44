package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"echo-journal/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// PlanForUser returns the user's plan tier, defaulting to free when no
// profile document exists yet.
func (r *UserRepository) PlanForUser(ctx context.Context, userID string) (string, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PlanFree, nil
	}
	if err != nil {
		return "", err
	}
	if u.Plan == "" {
		return models.PlanFree, nil
	}
	return u.Plan, nil
}

// UpsertPlan sets a user's plan tier, creating the profile when absent.
func (r *UserRepository) UpsertPlan(ctx context.Context, userID, plan string) error {
	now := time.Now()
	_, err := r.col.UpdateByID(ctx, userID, bson.M{
		"$set":         bson.M{"plan": plan, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}, options.Update().SetUpsert(true))
	return err
}
