package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo-journal/models"
	"echo-journal/quota"
)

const testTranscript = "Today was a good day but stressful at work."

func validResponses() map[string]string {
	return map[string]string{
		"journal":  `{"title":"A Good but Stressful Day","entry":"Today was a good day, but work was stressful.","themes":["work","stress"]}`,
		"mood":     `{"mood_primary":"stressed","mood_score":-0.3,"mood_tags":["stressed","tired"],"mood_level":"Negative","reasoning":"Stress at work dominates the positive framing."}`,
		"ideas":    `{"ideas":[{"content":"Block out one deep-work hour","category":"action","idea_type":"action_step","details":"A protected hour each morning would cut the stress described."}]}`,
		"insights": `{"insights":[{"content":"Work stress keeps overshadowing otherwise good days.","insight_type":"pattern"}]}`,
	}
}

type pipelineFixture struct {
	svc      *RecordingService
	plans    *fakePlans
	audio    *fakeAudioStore
	stt      *fakeSTT
	gen      *fakeGen
	entries  *fakeEntryStore
	moods    *fakeMoodStore
	ideas    *fakeIdeaStore
	insights *fakeInsightStore
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		plans:    &fakePlans{},
		audio:    newFakeAudioStore(),
		stt:      &fakeSTT{transcript: testTranscript},
		gen:      newFakeGen(),
		entries:  &fakeEntryStore{},
		moods:    &fakeMoodStore{},
		ideas:    &fakeIdeaStore{},
		insights: &fakeInsightStore{},
	}
	f.gen.responses = validResponses()
	f.svc = NewRecordingService(
		quota.NewMonthlyGate(f.entries, 5),
		f.plans, f.audio, f.stt, f.gen,
		f.entries, f.moods, f.ideas, f.insights, nil,
	)
	return f
}

func (f *pipelineFixture) process(t *testing.T) (*ProcessResult, error) {
	t.Helper()
	return f.svc.Process(context.Background(), ProcessInput{
		UserID:      "user-1",
		Audio:       make([]byte, 36000),
		ContentType: "audio/webm",
	})
}

func TestProcessHappyPath(t *testing.T) {
	f := newPipelineFixture()

	res, err := f.process(t)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "A Good but Stressful Day", res.EntryTitle)
	assert.Equal(t, "stressed", res.MoodPrimary)
	assert.Equal(t, models.MoodNegative, res.MoodLevel)
	assert.Len(t, res.Ideas, 1)
	assert.Len(t, res.Insights, 1)
	assert.Equal(t, []string{"work", "stress"}, res.Themes)
	assert.Equal(t, 3, res.DurationSeconds)

	// all four tasks ran, and all stores were written
	assert.Equal(t, 4, f.gen.callCount())
	assert.Len(t, f.entries.entries, 1)
	assert.Len(t, f.moods.points, 1)
	assert.Len(t, f.ideas.rows, 1)
	assert.Len(t, f.insights.rows, 1)

	// embedded mood and the mood-history duplicate must agree
	assert.Equal(t, f.entries.entries[0].Mood, f.moods.points[0].Mood)
}

func TestProcessQuotaRejectsAtCeiling(t *testing.T) {
	f := newPipelineFixture()
	f.entries.count = 5

	_, err := f.process(t)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// no side effects: nothing stored, no external calls
	assert.Empty(t, f.audio.saved)
	assert.Equal(t, 0, f.gen.callCount())
	assert.Empty(t, f.entries.entries)
}

func TestProcessQuotaAllowsBelowCeiling(t *testing.T) {
	f := newPipelineFixture()
	f.entries.count = 4

	_, err := f.process(t)
	assert.NoError(t, err)
}

func TestProcessQuotaIgnoresPaidPlan(t *testing.T) {
	f := newPipelineFixture()
	f.entries.count = 500
	f.plans.plan = models.PlanCore

	_, err := f.process(t)
	assert.NoError(t, err)
}

func TestProcessUploadFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()
	f.audio.saveErr = errors.New("bucket unavailable")

	_, err := f.process(t)
	assert.ErrorIs(t, err, ErrUploadFailed)

	assert.Equal(t, 0, f.gen.callCount())
	assert.Empty(t, f.entries.entries)
}

func TestProcessTranscriptionFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()
	f.stt.err = errors.New("speech service down")

	_, err := f.process(t)
	assert.Error(t, err)
	assert.Equal(t, 0, f.gen.callCount())
}

func TestProcessEmptyTranscriptIsFatal(t *testing.T) {
	f := newPipelineFixture()
	f.stt.transcript = "   "

	_, err := f.process(t)
	assert.ErrorIs(t, err, ErrEmptyTranscript)
	assert.Equal(t, 0, f.gen.callCount())
}

func TestProcessAnalysisCallFailureSettlesSiblingsThenAborts(t *testing.T) {
	f := newPipelineFixture()
	f.gen.errs["mood"] = errors.New("rate limited")

	_, err := f.process(t)
	assert.Error(t, err)

	// await-all: the failing task did not cancel its three siblings
	assert.Equal(t, 4, f.gen.callCount())
	assert.Empty(t, f.entries.entries)
}

func TestProcessMalformedTaskOutputFallsBackToDefaults(t *testing.T) {
	f := newPipelineFixture()
	f.gen.responses["journal"] = "Sorry, I can't produce JSON today."
	f.gen.responses["mood"] = "```json\nnot json\n```"
	f.gen.responses["ideas"] = `{"wrong_key":[]}`
	f.gen.responses["insights"] = ""

	res, err := f.process(t)
	require.NoError(t, err)

	// journal default: transcript verbatim under a placeholder title
	assert.Equal(t, "Untitled Entry", res.EntryTitle)
	assert.Equal(t, testTranscript, res.CleanedEntry)
	// mood default: neutral zero-score "reflective"
	assert.Equal(t, "reflective", res.MoodPrimary)
	assert.Equal(t, 0.0, res.MoodScore)
	assert.Equal(t, models.MoodNeutral, res.MoodLevel)
	// ideas/insights default: empty, never nil
	assert.NotNil(t, res.Ideas)
	assert.Empty(t, res.Ideas)
	assert.NotNil(t, res.Insights)
	assert.Empty(t, res.Insights)
}

func TestProcessDerivesLevelWhenClassifierOmitsIt(t *testing.T) {
	f := newPipelineFixture()
	f.gen.responses["mood"] = `{"mood_primary":"elated","mood_score":0.8,"mood_tags":["elated","proud"]}`

	res, err := f.process(t)
	require.NoError(t, err)
	assert.Equal(t, models.MoodExtremelyPositive, res.MoodLevel)
}

func TestProcessEntryInsertFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()
	f.entries.insertErr = errors.New("write concern failed")

	_, err := f.process(t)
	assert.Error(t, err)
	assert.Empty(t, f.moods.points)
	assert.Empty(t, f.ideas.rows)
	assert.False(t, f.insights.attempted)
}

func TestProcessMoodHistoryFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()
	f.moods.insertErr = errors.New("write concern failed")

	_, err := f.process(t)
	assert.Error(t, err)
	assert.Empty(t, f.ideas.rows)
	assert.False(t, f.insights.attempted)
}

func TestProcessIdeasInsertFailureIsFatalAndSkipsInsights(t *testing.T) {
	f := newPipelineFixture()
	f.ideas.insertErr = errors.New("write concern failed")

	_, err := f.process(t)
	assert.Error(t, err)

	// the insights write must not even be attempted
	assert.False(t, f.insights.attempted)
}

func TestProcessInsightsInsertFailureIsNonFatal(t *testing.T) {
	f := newPipelineFixture()
	f.insights.insertErr = errors.New("write concern failed")

	res, err := f.process(t)
	require.NoError(t, err)

	assert.Len(t, res.Ideas, 1)
	assert.NotNil(t, res.Insights)
	assert.Empty(t, res.Insights)
	assert.Len(t, f.entries.entries, 1)
}

func TestProcessUsesClientDurationWhenProvided(t *testing.T) {
	f := newPipelineFixture()

	res, err := f.svc.Process(context.Background(), ProcessInput{
		UserID:          "user-1",
		Audio:           make([]byte, 36000),
		ContentType:     "audio/webm",
		DurationSeconds: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res.DurationSeconds)
}

func TestEstimateDurationSecondsFloor(t *testing.T) {
	assert.Equal(t, 1, estimateDurationSeconds(100))
	assert.Equal(t, 1, estimateDurationSeconds(0))
	assert.Equal(t, 3, estimateDurationSeconds(36000))
}
