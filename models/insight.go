package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InsightPattern    = "pattern"
	InsightReflection = "reflection"
	InsightAdvice     = "advice"
	InsightGrowth     = "growth"
	InsightWarning    = "warning"
)

// Insight is a reflective observation generated from one entry.
// Collection: insights
type Insight struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	EntryID     primitive.ObjectID `bson:"entry_id" json:"entry_id"`
	Content     string             `bson:"content" json:"content"`
	InsightType string             `bson:"insight_type" json:"insight_type"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
