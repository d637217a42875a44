package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"echo-journal/ai"
	"echo-journal/eventbus"
	"echo-journal/events"
	"echo-journal/logger"
	"echo-journal/models"
	"echo-journal/quota"
	"echo-journal/storage"
)

// RecordingService runs the live submission pipeline:
// quota gate → audio upload → transcription → four-way analysis fan-out →
// lenient parse → ordered persistence.
type RecordingService struct {
	gate     *quota.MonthlyGate
	plans    PlanStore
	audio    storage.AudioStore
	stt      ai.SpeechToText
	gen      ai.TextGenerator
	entries  EntryStore
	moods    MoodStore
	ideas    IdeaStore
	insights InsightStore
	bus      eventbus.Publisher
	now      func() time.Time
}

func NewRecordingService(
	gate *quota.MonthlyGate,
	plans PlanStore,
	audio storage.AudioStore,
	stt ai.SpeechToText,
	gen ai.TextGenerator,
	entries EntryStore,
	moods MoodStore,
	ideas IdeaStore,
	insights InsightStore,
	bus eventbus.Publisher,
) *RecordingService {
	if bus == nil {
		bus = eventbus.NopPublisher{}
	}
	return &RecordingService{
		gate:     gate,
		plans:    plans,
		audio:    audio,
		stt:      stt,
		gen:      gen,
		entries:  entries,
		moods:    moods,
		ideas:    ideas,
		insights: insights,
		bus:      bus,
		now:      time.Now,
	}
}

type ProcessInput struct {
	UserID      string
	Audio       []byte
	ContentType string
	// DurationSeconds comes from the client when known; 0 means estimate
	// from the payload size.
	DurationSeconds int
}

// ProcessResult is the submission response body.
type ProcessResult struct {
	ID              string             `json:"id"`
	EntryTitle      string             `json:"entry_title"`
	CleanedEntry    string             `json:"cleaned_entry"`
	MoodPrimary     string             `json:"mood_primary"`
	MoodScore       float64            `json:"mood_score"`
	MoodTags        []string           `json:"mood_tags"`
	MoodLevel       models.MoodLevel   `json:"mood_level"`
	Themes          []string           `json:"themes"`
	Ideas           []models.Idea      `json:"ideas"`
	Insights        []models.Insight   `json:"insights"`
	DurationSeconds int                `json:"duration_seconds"`
	RecordedAt      time.Time          `json:"recorded_at"`
}

// Process runs one submission end to end. It returns ErrQuotaExceeded
// before any side effect when the gate rejects, and otherwise runs to a
// fatal abort or full completion.
func (s *RecordingService) Process(ctx context.Context, in ProcessInput) (*ProcessResult, error) {
	plan, err := s.plans.PlanForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("unable to verify subscription plan: %w", err)
	}
	if err := s.gate.Allow(ctx, in.UserID, plan); err != nil {
		if errors.Is(err, quota.ErrMonthlyLimitReached) {
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("unable to check monthly recording limit: %w", err)
	}

	audioPath := storage.NewAudioKey(in.UserID, in.ContentType)
	if err := s.audio.Save(ctx, audioPath, in.ContentType, in.Audio); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	transcript, err := s.stt.Transcribe(ctx, in.Audio, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	journalRaw, moodRaw, ideasRaw, insightsRaw, err := s.fanOut(ctx, transcript)
	if err != nil {
		return nil, err
	}

	journal := parseJournal(journalRaw, transcript)
	mood := parseMood(moodRaw)
	ideaItems := parseIdeas(ideasRaw)
	insightItems := parseInsights(insightsRaw)

	recordedAt := s.now().UTC()
	duration := in.DurationSeconds
	if duration <= 0 {
		duration = estimateDurationSeconds(len(in.Audio))
	}

	entry := &models.JournalEntry{
		UserID:          in.UserID,
		AudioPath:       audioPath,
		RawTranscript:   transcript,
		EntryTitle:      journal.Title,
		CleanedEntry:    journal.Entry,
		Mood:            mood,
		Themes:          journal.Themes,
		DurationSeconds: duration,
		WordCount:       len(strings.Fields(journal.Entry)),
		RecordedAt:      recordedAt,
	}

	entryID, err := s.entries.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	if err := s.moods.Insert(ctx, &models.MoodPoint{
		UserID:     in.UserID,
		EntryID:    entryID,
		Mood:       mood,
		RecordedAt: recordedAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to save mood history: %w", err)
	}

	savedIdeas, err := s.ideas.InsertMany(ctx, toIdeaModels(ideaItems, in.UserID, entryID))
	if err != nil {
		return nil, fmt.Errorf("failed to save extracted ideas: %w", err)
	}

	// Insight persistence is non-fatal: the entry and ideas are already
	// saved, so the submission still succeeds with an empty insights list.
	savedInsights, err := s.insights.InsertMany(ctx, toInsightModels(insightItems, in.UserID, entryID))
	if err != nil {
		logger.ErrorWithFields("failed to save insights", logger.Fields{
			"user_id":  in.UserID,
			"entry_id": entryID.Hex(),
			"error":    err.Error(),
		})
		savedInsights = []models.Insight{}
	}

	s.publishCreated(ctx, entry, entryID.Hex())

	return &ProcessResult{
		ID:              entryID.Hex(),
		EntryTitle:      entry.EntryTitle,
		CleanedEntry:    entry.CleanedEntry,
		MoodPrimary:     mood.Primary,
		MoodScore:       mood.Score,
		MoodTags:        mood.Tags,
		MoodLevel:       mood.Level,
		Themes:          entry.Themes,
		Ideas:           savedIdeas,
		Insights:        savedInsights,
		DurationSeconds: entry.DurationSeconds,
		RecordedAt:      recordedAt,
	}, nil
}

// fanOut issues the four extraction requests concurrently and waits for the
// whole set to settle. A failing task does not cancel its siblings, but any
// transport failure fails the submission once all have finished.
func (s *RecordingService) fanOut(ctx context.Context, transcript string) (journal, mood, ideas, insights string, err error) {
	var g errgroup.Group

	g.Go(func() error {
		var err error
		journal, err = s.gen.Generate(ctx, ai.JournalTask, transcript)
		return err
	})
	g.Go(func() error {
		var err error
		mood, err = s.gen.Generate(ctx, ai.MoodTask, transcript)
		return err
	})
	g.Go(func() error {
		var err error
		ideas, err = s.gen.Generate(ctx, ai.IdeasTask, transcript)
		return err
	})
	g.Go(func() error {
		var err error
		insights, err = s.gen.Generate(ctx, ai.InsightsTask, transcript)
		return err
	})

	if werr := g.Wait(); werr != nil {
		return "", "", "", "", fmt.Errorf("analysis failed: %w", werr)
	}
	return journal, mood, ideas, insights, nil
}

func (s *RecordingService) publishCreated(ctx context.Context, entry *models.JournalEntry, entryID string) {
	err := s.bus.Publish(ctx, events.TopicEntryCreated, events.New(events.TopicEntryCreated, events.EntryCreatedPayload{
		EntryID:    entryID,
		UserID:     entry.UserID,
		MoodLevel:  string(entry.Mood.Level),
		RecordedAt: entry.RecordedAt,
	}))
	if err != nil {
		logger.Log.Warnf("entry.created event not published: %v", err)
	}
}

// estimateDurationSeconds approximates playback length from the compressed
// payload size (~12KB/s for webm voice recordings).
func estimateDurationSeconds(sizeBytes int) int {
	d := (sizeBytes + 6000) / 12000
	if d < 1 {
		return 1
	}
	return d
}
