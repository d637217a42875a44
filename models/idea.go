package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Idea categories form a fixed enumeration; anything else is coerced to
// CategoryOther before insert.
const (
	CategoryBusiness = "business"
	CategoryCreative = "creative"
	CategoryGoal     = "goal"
	CategoryAction   = "action"
	CategoryOther    = "other"
)

// ValidIdeaCategory reports whether c is one of the fixed categories.
func ValidIdeaCategory(c string) bool {
	switch c {
	case CategoryBusiness, CategoryCreative, CategoryGoal, CategoryAction, CategoryOther:
		return true
	}
	return false
}

// Idea is an actionable idea extracted from one entry.
// Collection: ideas
type Idea struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	EntryID   primitive.ObjectID `bson:"entry_id" json:"entry_id"`
	Content   string             `bson:"content" json:"content"`
	Category  string             `bson:"category" json:"category"`
	IdeaType  string             `bson:"idea_type" json:"idea_type"`
	Details   string             `bson:"details" json:"details"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
