package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"echo-journal/eventbus"
	"echo-journal/events"
	"echo-journal/logger"
	"echo-journal/models"
	"echo-journal/storage"
)

// EntryService serves reads and edits of stored entries. Edits never re-run
// analysis; the derived ideas/insights/mood rows stay as generated.
type EntryService struct {
	entries  EntryStore
	moods    MoodStore
	ideas    IdeaStore
	insights InsightStore
	audio    storage.AudioStore
	signer   *storage.AudioURLSigner
	bus      eventbus.Publisher
}

func NewEntryService(
	entries EntryStore,
	moods MoodStore,
	ideas IdeaStore,
	insights InsightStore,
	audio storage.AudioStore,
	signer *storage.AudioURLSigner,
	bus eventbus.Publisher,
) *EntryService {
	if bus == nil {
		bus = eventbus.NopPublisher{}
	}
	return &EntryService{
		entries:  entries,
		moods:    moods,
		ideas:    ideas,
		insights: insights,
		audio:    audio,
		signer:   signer,
		bus:      bus,
	}
}

// EntryDetail is an entry with its derived rows attached.
type EntryDetail struct {
	models.JournalEntry
	Ideas    []models.Idea    `json:"ideas"`
	Insights []models.Insight `json:"insights"`
}

func (s *EntryService) Get(ctx context.Context, userID, idHex string) (*EntryDetail, error) {
	id, err := parseEntryID(idHex)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	ideas, err := s.ideas.ListByEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	insights, err := s.insights.ListByEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return &EntryDetail{JournalEntry: *entry, Ideas: ideas, Insights: insights}, nil
}

func (s *EntryService) List(ctx context.Context, userID string, page, pageSize int) ([]models.JournalEntry, error) {
	return s.entries.ListByUser(ctx, userID, page, pageSize)
}

// UpdateText edits the title and/or body; blank arguments keep the stored
// value.
func (s *EntryService) UpdateText(ctx context.Context, userID, idHex, title, body string) (*models.JournalEntry, error) {
	id, err := parseEntryID(idHex)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if strings.TrimSpace(title) == "" {
		title = entry.EntryTitle
	}
	if strings.TrimSpace(body) == "" {
		body = entry.CleanedEntry
	}

	if err := s.entries.UpdateText(ctx, userID, id, title, body); err != nil {
		return nil, mapNotFound(err)
	}

	entry.EntryTitle = title
	entry.CleanedEntry = body
	entry.WordCount = len(strings.Fields(body))
	return entry, nil
}

// Delete removes the entry with its derived rows and audio object. The
// derived rows go first so an interrupted delete never leaves orphans
// referencing a missing entry.
func (s *EntryService) Delete(ctx context.Context, userID, idHex string) error {
	id, err := parseEntryID(idHex)
	if err != nil {
		return err
	}

	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return mapNotFound(err)
	}

	if err := s.ideas.DeleteByEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete ideas: %w", err)
	}
	if err := s.insights.DeleteByEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete insights: %w", err)
	}
	if err := s.moods.DeleteByEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete mood history: %w", err)
	}
	if err := s.entries.Delete(ctx, userID, id); err != nil {
		return mapNotFound(err)
	}

	// best effort; an orphaned audio object is a cleanup concern, not a
	// failed delete
	if entry.AudioPath != "" {
		if err := s.audio.Delete(ctx, entry.AudioPath); err != nil {
			logger.Log.Warnf("audio object %s not removed: %v", entry.AudioPath, err)
		}
	}

	if err := s.bus.Publish(ctx, events.TopicEntryDeleted, events.New(events.TopicEntryDeleted, events.EntryDeletedPayload{
		EntryID: idHex,
		UserID:  userID,
	})); err != nil {
		logger.Log.Warnf("entry.deleted event not published: %v", err)
	}
	return nil
}

// AudioURL mints a signed, time-limited playback URL for the entry's audio.
func (s *EntryService) AudioURL(ctx context.Context, userID, idHex string) (string, error) {
	id, err := parseEntryID(idHex)
	if err != nil {
		return "", err
	}

	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return "", mapNotFound(err)
	}
	if entry.AudioPath == "" {
		return "", ErrNotFound
	}

	token, err := s.signer.Sign(entry.AudioPath)
	if err != nil {
		return "", fmt.Errorf("failed to sign audio url: %w", err)
	}
	return "/api/v1/audio/stream?token=" + token, nil
}

// MoodHistory returns the user's mood trend points recorded since the given
// instant (zero time means the full history).
func (s *EntryService) MoodHistory(ctx context.Context, userID string, since time.Time) ([]models.MoodPoint, error) {
	return s.moods.ListByUser(ctx, userID, since)
}

func parseEntryID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return id, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
