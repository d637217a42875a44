package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"echo-journal/models"
)

// Narrow store interfaces over the Mongo repositories so the orchestration
// logic is testable with fakes.

type EntryStore interface {
	Insert(ctx context.Context, e *models.JournalEntry) (primitive.ObjectID, error)
	CountRecordedSince(ctx context.Context, userID string, since time.Time) (int64, error)
	FindByID(ctx context.Context, userID string, id primitive.ObjectID) (*models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.JournalEntry, error)
	ListAllByUser(ctx context.Context, userID string) ([]models.JournalEntry, error)
	UpdateText(ctx context.Context, userID string, id primitive.ObjectID, title, body string) error
	Delete(ctx context.Context, userID string, id primitive.ObjectID) error
	DistinctUserIDs(ctx context.Context) ([]string, error)
}

type MoodStore interface {
	Insert(ctx context.Context, p *models.MoodPoint) error
	ListByUser(ctx context.Context, userID string, since time.Time) ([]models.MoodPoint, error)
	DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error
}

type IdeaStore interface {
	InsertMany(ctx context.Context, ideas []models.Idea) ([]models.Idea, error)
	ListByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) ([]models.Idea, error)
	CoveredEntryIDs(ctx context.Context, userID string) (map[primitive.ObjectID]struct{}, error)
	DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error
}

type InsightStore interface {
	InsertMany(ctx context.Context, insights []models.Insight) ([]models.Insight, error)
	ListByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) ([]models.Insight, error)
	CoveredEntryIDs(ctx context.Context, userID string) (map[primitive.ObjectID]struct{}, error)
	DeleteByEntry(ctx context.Context, userID string, entryID primitive.ObjectID) error
}

type PlanStore interface {
	PlanForUser(ctx context.Context, userID string) (string, error)
}

// RateLimiter throttles bulk generation calls; see quota.LLMRateLimiter.
type RateLimiter interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}
