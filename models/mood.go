package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodLevel is one of five ordered bands derived from the numeric score.
type MoodLevel string

const (
	MoodExtremelyNegative MoodLevel = "Extremely Negative"
	MoodNegative          MoodLevel = "Negative"
	MoodNeutral           MoodLevel = "Neutral"
	MoodPositive          MoodLevel = "Positive"
	MoodExtremelyPositive MoodLevel = "Extremely Positive"
)

// LevelForScore maps a score in [-1.0, 1.0] to its band. Band edges resolve
// upward: exactly 0.7 is Extremely Positive, exactly -0.1 is Neutral.
func LevelForScore(score float64) MoodLevel {
	switch {
	case score >= 0.7:
		return MoodExtremelyPositive
	case score >= 0.1:
		return MoodPositive
	case score >= -0.1:
		return MoodNeutral
	case score >= -0.7:
		return MoodNegative
	default:
		return MoodExtremelyNegative
	}
}

// MoodClassification is embedded in a JournalEntry and duplicated into
// mood_history; the two copies must agree.
type MoodClassification struct {
	Primary   string    `bson:"primary" json:"mood_primary"`
	Score     float64   `bson:"score" json:"mood_score"`
	Tags      []string  `bson:"tags" json:"mood_tags"`
	Level     MoodLevel `bson:"level" json:"mood_level"`
	Reasoning string    `bson:"reasoning,omitempty" json:"reasoning,omitempty"`
}

// Normalize fills the level from the score when the classifier omitted it
// and guarantees a non-nil tags slice.
func (m *MoodClassification) Normalize() {
	if m.Level == "" {
		m.Level = LevelForScore(m.Score)
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
}

// MoodPoint is the duplicate mood record kept for trend queries.
// Collection: mood_history
type MoodPoint struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	EntryID    primitive.ObjectID `bson:"entry_id" json:"entry_id"`
	Mood       MoodClassification `bson:"mood" json:"mood"`
	RecordedAt time.Time          `bson:"recorded_at" json:"recorded_at"`
}
