package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"echo-journal/models"
	"echo-journal/storage"
)

type entryFixture struct {
	svc      *EntryService
	entries  *fakeEntryStore
	moods    *fakeMoodStore
	ideas    *fakeIdeaStore
	insights *fakeInsightStore
	audio    *fakeAudioStore
	signer   *storage.AudioURLSigner
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "entry-test-secret")
	signer, err := storage.NewAudioURLSignerFromEnv(time.Minute)
	require.NoError(t, err)

	f := &entryFixture{
		entries:  &fakeEntryStore{},
		moods:    &fakeMoodStore{},
		ideas:    &fakeIdeaStore{},
		insights: &fakeInsightStore{},
		audio:    newFakeAudioStore(),
		signer:   signer,
	}
	f.svc = NewEntryService(f.entries, f.moods, f.ideas, f.insights, f.audio, f.signer, nil)
	return f
}

func (f *entryFixture) seed(userID string) models.JournalEntry {
	e := models.JournalEntry{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		AudioPath:    userID + "/recording.webm",
		EntryTitle:   "A Walk in the Rain",
		CleanedEntry: "I walked through the rain and felt lighter afterwards.",
		WordCount:    9,
	}
	f.entries.entries = append(f.entries.entries, e)
	return e
}

func TestEntryGetAttachesDerivedRows(t *testing.T) {
	f := newEntryFixture(t)
	e := f.seed("user-1")
	f.ideas.rows = []models.Idea{{EntryID: e.ID, UserID: "user-1", Content: "Walk more often"}}
	f.insights.rows = []models.Insight{{EntryID: e.ID, UserID: "user-1", Content: "Weather shifts your mood."}}

	detail, err := f.svc.Get(context.Background(), "user-1", e.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, e.EntryTitle, detail.EntryTitle)
	assert.Len(t, detail.Ideas, 1)
	assert.Len(t, detail.Insights, 1)
}

func TestEntryGetScopedToOwner(t *testing.T) {
	f := newEntryFixture(t)
	e := f.seed("user-1")

	_, err := f.svc.Get(context.Background(), "user-2", e.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryGetRejectsMalformedID(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.svc.Get(context.Background(), "user-1", "not-a-hex-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryUpdateTextKeepsBlankFields(t *testing.T) {
	f := newEntryFixture(t)
	e := f.seed("user-1")

	updated, err := f.svc.UpdateText(context.Background(), "user-1", e.ID.Hex(), "", "A much shorter entry.")
	require.NoError(t, err)

	assert.Equal(t, "A Walk in the Rain", updated.EntryTitle)
	assert.Equal(t, "A much shorter entry.", updated.CleanedEntry)
	assert.Equal(t, len(strings.Fields(updated.CleanedEntry)), updated.WordCount)
}

func TestEntryDeleteRemovesEverything(t *testing.T) {
	f := newEntryFixture(t)
	e := f.seed("user-1")

	err := f.svc.Delete(context.Background(), "user-1", e.ID.Hex())
	require.NoError(t, err)

	assert.Empty(t, f.entries.entries)
	assert.Contains(t, f.audio.deleted, e.AudioPath)
}

func TestEntryAudioURLRoundTrip(t *testing.T) {
	f := newEntryFixture(t)
	e := f.seed("user-1")

	url, err := f.svc.AudioURL(context.Background(), "user-1", e.ID.Hex())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/api/v1/audio/stream?token="))
	token := strings.TrimPrefix(url, "/api/v1/audio/stream?token=")

	key, err := f.signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, e.AudioPath, key)
}

func TestEntryAudioURLWithoutAudio(t *testing.T) {
	f := newEntryFixture(t)
	e := models.JournalEntry{ID: primitive.NewObjectID(), UserID: "user-1"}
	f.entries.entries = append(f.entries.entries, e)

	_, err := f.svc.AudioURL(context.Background(), "user-1", e.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
