package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"echo-journal/ai"
	"echo-journal/logger"
	"echo-journal/models"
)

// BackfillService retroactively runs idea or insight extraction over a
// user's existing entries. Entries are processed strictly sequentially to
// bound external API load, and a failure on one entry never aborts the
// batch.
type BackfillService struct {
	entries  EntryStore
	ideas    IdeaStore
	insights InsightStore
	gen      ai.TextGenerator
	limiter  RateLimiter
}

func NewBackfillService(entries EntryStore, ideas IdeaStore, insights InsightStore, gen ai.TextGenerator, limiter RateLimiter) *BackfillService {
	return &BackfillService{
		entries:  entries,
		ideas:    ideas,
		insights: insights,
		gen:      gen,
		limiter:  limiter,
	}
}

// BackfillSummary is the batch response: failures are embedded in the
// counts, not surfaced as errors.
type BackfillSummary struct {
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Message   string `json:"message"`
}

// BackfillIdeas extracts ideas for every entry of the user that has none.
func (s *BackfillService) BackfillIdeas(ctx context.Context, userID string) (BackfillSummary, error) {
	return s.run(ctx, userID, backfillIdeas)
}

// BackfillInsights generates insights for every entry of the user that has
// none.
func (s *BackfillService) BackfillInsights(ctx context.Context, userID string) (BackfillSummary, error) {
	return s.run(ctx, userID, backfillInsights)
}

// BackfillAllUsers runs one kind of backfill for every user with at least
// one entry. Administrative use only.
func (s *BackfillService) BackfillAllUsers(ctx context.Context, kind string) (BackfillSummary, error) {
	userIDs, err := s.entries.DistinctUserIDs(ctx)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("failed to enumerate users: %w", err)
	}

	total := BackfillSummary{}
	for _, userID := range userIDs {
		var summary BackfillSummary
		var err error
		switch kind {
		case backfillIdeas:
			summary, err = s.BackfillIdeas(ctx, userID)
		case backfillInsights:
			summary, err = s.BackfillInsights(ctx, userID)
		default:
			return BackfillSummary{}, fmt.Errorf("unknown backfill kind %q", kind)
		}
		if err != nil {
			logger.ErrorWithFields("backfill failed for user", logger.Fields{
				"user_id": userID,
				"kind":    kind,
				"error":   err.Error(),
			})
			continue
		}
		total.Processed += summary.Processed
		total.Created += summary.Created
	}
	total.Message = fmt.Sprintf("Processed %d entries and created %d new %s across %d users.", total.Processed, total.Created, kind, len(userIDs))
	return total, nil
}

const (
	backfillIdeas    = "ideas"
	backfillInsights = "insights"
)

func (s *BackfillService) run(ctx context.Context, userID, kind string) (BackfillSummary, error) {
	entries, err := s.entries.ListAllByUser(ctx, userID)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("failed to fetch journal entries: %w", err)
	}
	if len(entries) == 0 {
		return BackfillSummary{Message: "No journal entries found."}, nil
	}

	// Dedup is always on: entries that already have derived rows of this
	// kind are excluded before the loop starts.
	covered, err := s.coveredEntryIDs(ctx, userID, kind)
	if err != nil {
		return BackfillSummary{}, fmt.Errorf("failed to check existing %s: %w", kind, err)
	}

	uncovered := entries[:0:0]
	for _, e := range entries {
		if _, ok := covered[e.ID]; !ok {
			uncovered = append(uncovered, e)
		}
	}
	if len(uncovered) == 0 {
		return BackfillSummary{Message: fmt.Sprintf("All entries already have %s.", kind)}, nil
	}

	logger.InfoWithFields("backfill starting", logger.Fields{
		"user_id":    userID,
		"kind":       kind,
		"total":      len(entries),
		"covered":    len(covered),
		"to_process": len(uncovered),
	})

	summary := BackfillSummary{}
	for _, entry := range uncovered {
		entryText := entry.CleanedEntry
		if strings.TrimSpace(entryText) == "" {
			entryText = entry.RawTranscript
		}
		if strings.TrimSpace(entryText) == "" {
			logger.Log.Debugf("skipping empty entry %s", entry.ID.Hex())
			continue
		}

		if s.limiter != nil {
			ok, err := s.limiter.WaitAndReserve(ctx)
			if err != nil {
				return summary, err
			}
			if !ok {
				summary.Message = fmt.Sprintf("Stopped at the daily AI call limit after processing %d entries.", summary.Processed)
				return summary, nil
			}
		}

		created, err := s.processOne(ctx, userID, entry, kind)
		if err != nil {
			// AI call failed for this entry; move on to the next one.
			logger.ErrorWithFields("backfill entry failed", logger.Fields{
				"user_id":  userID,
				"entry_id": entry.ID.Hex(),
				"kind":     kind,
				"error":    err.Error(),
			})
			continue
		}
		summary.Processed++
		summary.Created += created
	}

	summary.Message = fmt.Sprintf("Processed %d entries and created %d new %s.", summary.Processed, summary.Created, kind)
	return summary, nil
}

// processOne runs the single-task extraction for one entry and persists the
// rows. An insert failure is logged and reported as zero rows created; the
// entry still counts as processed.
func (s *BackfillService) processOne(ctx context.Context, userID string, entry models.JournalEntry, kind string) (int, error) {
	entryText := entry.CleanedEntry
	if strings.TrimSpace(entryText) == "" {
		entryText = entry.RawTranscript
	}

	switch kind {
	case backfillIdeas:
		raw, err := s.gen.Generate(ctx, ai.IdeasTask, entryText)
		if err != nil {
			return 0, err
		}
		rows := toIdeaModels(parseIdeas(raw), userID, entry.ID)
		if len(rows) == 0 {
			return 0, nil
		}
		saved, err := s.ideas.InsertMany(ctx, rows)
		if err != nil {
			logger.Log.Errorf("idea insert failed for entry %s: %v", entry.ID.Hex(), err)
			return 0, nil
		}
		return len(saved), nil

	case backfillInsights:
		raw, err := s.gen.Generate(ctx, ai.InsightsTask, entryText)
		if err != nil {
			return 0, err
		}
		rows := toInsightModels(parseInsights(raw), userID, entry.ID)
		if len(rows) == 0 {
			return 0, nil
		}
		saved, err := s.insights.InsertMany(ctx, rows)
		if err != nil {
			logger.Log.Errorf("insight insert failed for entry %s: %v", entry.ID.Hex(), err)
			return 0, nil
		}
		return len(saved), nil
	}

	return 0, fmt.Errorf("unknown backfill kind %q", kind)
}

func (s *BackfillService) coveredEntryIDs(ctx context.Context, userID, kind string) (map[primitive.ObjectID]struct{}, error) {
	if kind == backfillIdeas {
		return s.ideas.CoveredEntryIDs(ctx, userID)
	}
	return s.insights.CoveredEntryIDs(ctx, userID)
}
