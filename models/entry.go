package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is one processed voice recording.
// Collection: journal_entries
type JournalEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	AudioPath       string             `bson:"audio_path" json:"audio_path"`
	RawTranscript   string             `bson:"raw_transcript" json:"raw_transcript"`
	EntryTitle      string             `bson:"entry_title" json:"entry_title"`
	CleanedEntry    string             `bson:"cleaned_entry" json:"cleaned_entry"`
	Mood            MoodClassification `bson:"mood" json:"mood"`
	Themes          []string           `bson:"themes" json:"themes"`
	DurationSeconds int                `bson:"duration_seconds" json:"duration_seconds"`
	WordCount       int                `bson:"word_count" json:"word_count"`
	RecordedAt      time.Time          `bson:"recorded_at" json:"recorded_at"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
