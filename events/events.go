package events

import (
	"time"

	"github.com/google/uuid"
)

// Entry lifecycle topics. Downstream jobs (streak tracking, pattern
// recognition) consume these; the pipeline only produces.
const (
	TopicEntryCreated = "journal.entry.created"
	TopicEntryDeleted = "journal.entry.deleted"
)

// Event is the payload envelope published to Kafka.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func New(eventType string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// EntryCreatedPayload carries the minimum a consumer needs to look the
// entry up; full documents stay in Mongo.
type EntryCreatedPayload struct {
	EntryID    string    `json:"entry_id"`
	UserID     string    `json:"user_id"`
	MoodLevel  string    `json:"mood_level"`
	RecordedAt time.Time `json:"recorded_at"`
}

type EntryDeletedPayload struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
}
