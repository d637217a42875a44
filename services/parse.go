package services

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"echo-journal/aijson"
	"echo-journal/models"
)

// Typed shapes for each analysis task's output, with the task-specific
// defaults substituted when the lenient decode exhausts its tiers.

type journalPayload struct {
	Title  string   `json:"title"`
	Entry  string   `json:"entry"`
	Themes []string `json:"themes"`
}

type moodPayload struct {
	Primary   string   `json:"mood_primary"`
	Score     float64  `json:"mood_score"`
	Tags      []string `json:"mood_tags"`
	Level     string   `json:"mood_level"`
	Reasoning string   `json:"reasoning"`
}

type ideaItem struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	IdeaType string `json:"idea_type"`
	Details  string `json:"details"`
}

type ideasPayload struct {
	Ideas []ideaItem `json:"ideas"`
}

type insightItem struct {
	Content     string `json:"content"`
	InsightType string `json:"insight_type"`
}

type insightsPayload struct {
	Insights []insightItem `json:"insights"`
}

// parseJournal falls back to the raw transcript verbatim so a formatting
// slip never loses the user's words.
func parseJournal(raw, transcript string) journalPayload {
	fallback := journalPayload{Title: "Untitled Entry", Entry: transcript, Themes: []string{}}
	p := aijson.Decode(raw, fallback, func(p journalPayload) bool {
		return strings.TrimSpace(p.Entry) != ""
	})
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Untitled Entry"
	}
	if p.Themes == nil {
		p.Themes = []string{}
	}
	return p
}

func parseMood(raw string) models.MoodClassification {
	fallback := moodPayload{Primary: "reflective", Score: 0, Tags: []string{"reflective"}}
	p := aijson.Decode(raw, fallback, func(p moodPayload) bool {
		return p.Primary != ""
	})

	mood := models.MoodClassification{
		Primary:   p.Primary,
		Score:     clampScore(p.Score),
		Tags:      p.Tags,
		Level:     models.MoodLevel(p.Level),
		Reasoning: p.Reasoning,
	}
	if !validMoodLevel(mood.Level) {
		mood.Level = ""
	}
	mood.Normalize()
	return mood
}

func parseIdeas(raw string) []ideaItem {
	p := aijson.Decode(raw, ideasPayload{Ideas: []ideaItem{}}, func(p ideasPayload) bool {
		return p.Ideas != nil
	})
	return p.Ideas
}

func parseInsights(raw string) []insightItem {
	p := aijson.Decode(raw, insightsPayload{Insights: []insightItem{}}, func(p insightsPayload) bool {
		return p.Insights != nil
	})
	return p.Insights
}

func clampScore(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}

func validMoodLevel(l models.MoodLevel) bool {
	switch l {
	case models.MoodExtremelyNegative, models.MoodNegative, models.MoodNeutral,
		models.MoodPositive, models.MoodExtremelyPositive:
		return true
	}
	return false
}

// toIdeaModels converts parsed items into insertable rows, coercing unknown
// categories to "other" and defaulting the finer-grained type.
func toIdeaModels(items []ideaItem, userID string, entryID primitive.ObjectID) []models.Idea {
	ideas := make([]models.Idea, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Content) == "" {
			continue
		}
		category := it.Category
		if !models.ValidIdeaCategory(category) {
			category = models.CategoryOther
		}
		ideaType := it.IdeaType
		if ideaType == "" {
			ideaType = "concept"
		}
		ideas = append(ideas, models.Idea{
			UserID:   userID,
			EntryID:  entryID,
			Content:  it.Content,
			Category: category,
			IdeaType: ideaType,
			Details:  it.Details,
		})
	}
	return ideas
}

func toInsightModels(items []insightItem, userID string, entryID primitive.ObjectID) []models.Insight {
	insights := make([]models.Insight, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Content) == "" {
			continue
		}
		insightType := it.InsightType
		if insightType == "" {
			insightType = models.InsightReflection
		}
		insights = append(insights, models.Insight{
			UserID:      userID,
			EntryID:     entryID,
			Content:     it.Content,
			InsightType: insightType,
		})
	}
	return insights
}
