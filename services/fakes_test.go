package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"echo-journal/ai"
	"echo-journal/models"
)

type fakePlans struct {
	plan string
}

func (f *fakePlans) PlanForUser(context.Context, string) (string, error) {
	if f.plan == "" {
		return models.PlanFree, nil
	}
	return f.plan, nil
}

type fakeAudioStore struct {
	saved     map[string][]byte
	saveErr   error
	deleted   []string
	deleteErr error
}

func newFakeAudioStore() *fakeAudioStore {
	return &fakeAudioStore{saved: map[string][]byte{}}
}

func (f *fakeAudioStore) Save(_ context.Context, key, _ string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, exists := f.saved[key]; exists {
		return errors.New("duplicate key")
	}
	f.saved[key] = data
	return nil
}

func (f *fakeAudioStore) Download(context.Context, string, io.Writer) (int64, error) {
	return 0, nil
}

func (f *fakeAudioStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeSTT struct {
	transcript string
	err        error
}

func (f *fakeSTT) Transcribe(context.Context, []byte, string) (string, error) {
	return f.transcript, f.err
}

// fakeGen answers each task from a canned map and records the order tasks
// settled in.
type fakeGen struct {
	mu         sync.Mutex
	responses  map[string]string
	errs       map[string]error
	failOnCall int // 1-based call index that fails; 0 disables
	callErr    error
	calls      []string
}

func newFakeGen() *fakeGen {
	return &fakeGen{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeGen) Generate(_ context.Context, task ai.Task, _ string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, task.Name)
	n := len(f.calls)
	f.mu.Unlock()
	if f.failOnCall != 0 && n == f.failOnCall {
		return "", f.callErr
	}
	if err := f.errs[task.Name]; err != nil {
		return "", err
	}
	return f.responses[task.Name], nil
}

func (f *fakeGen) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeLimiter allows a fixed number of reservations and then reports the
// daily budget as exhausted.
type fakeLimiter struct {
	remaining int
	unlimited bool
}

func (f *fakeLimiter) WaitAndReserve(context.Context) (bool, error) {
	if f.unlimited {
		return true, nil
	}
	if f.remaining <= 0 {
		return false, nil
	}
	f.remaining--
	return true, nil
}

type fakeEntryStore struct {
	count     int64
	countErr  error
	insertErr error
	entries   []models.JournalEntry
	userIDs   []string
}

func (f *fakeEntryStore) Insert(_ context.Context, e *models.JournalEntry) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	id := primitive.NewObjectID()
	e.ID = id
	f.entries = append(f.entries, *e)
	return id, nil
}

func (f *fakeEntryStore) CountRecordedSince(context.Context, string, time.Time) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeEntryStore) FindByID(_ context.Context, userID string, id primitive.ObjectID) (*models.JournalEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == userID {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeEntryStore) ListByUser(_ context.Context, userID string, _, _ int) ([]models.JournalEntry, error) {
	out := []models.JournalEntry{}
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) ListAllByUser(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return f.ListByUser(ctx, userID, 1, 0)
}

func (f *fakeEntryStore) UpdateText(_ context.Context, userID string, id primitive.ObjectID, title, body string) error {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == userID {
			f.entries[i].EntryTitle = title
			f.entries[i].CleanedEntry = body
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeEntryStore) Delete(_ context.Context, userID string, id primitive.ObjectID) error {
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeEntryStore) DistinctUserIDs(context.Context) ([]string, error) {
	return f.userIDs, nil
}

type fakeMoodStore struct {
	insertErr error
	points    []models.MoodPoint
}

func (f *fakeMoodStore) Insert(_ context.Context, p *models.MoodPoint) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.points = append(f.points, *p)
	return nil
}

func (f *fakeMoodStore) ListByUser(context.Context, string, time.Time) ([]models.MoodPoint, error) {
	return f.points, nil
}

func (f *fakeMoodStore) DeleteByEntry(context.Context, string, primitive.ObjectID) error {
	return nil
}

type fakeIdeaStore struct {
	insertErr  error
	failOnCall int // 1-based call index that fails; 0 means use insertErr for all
	callN      int
	rows       []models.Idea
	covered    map[primitive.ObjectID]struct{}
}

func (f *fakeIdeaStore) InsertMany(_ context.Context, ideas []models.Idea) ([]models.Idea, error) {
	f.callN++
	if f.insertErr != nil && (f.failOnCall == 0 || f.failOnCall == f.callN) {
		return nil, f.insertErr
	}
	for i := range ideas {
		ideas[i].ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, ideas...)
	return ideas, nil
}

func (f *fakeIdeaStore) ListByEntry(_ context.Context, _ string, entryID primitive.ObjectID) ([]models.Idea, error) {
	out := []models.Idea{}
	for _, r := range f.rows {
		if r.EntryID == entryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeIdeaStore) CoveredEntryIDs(context.Context, string) (map[primitive.ObjectID]struct{}, error) {
	if f.covered == nil {
		return map[primitive.ObjectID]struct{}{}, nil
	}
	return f.covered, nil
}

func (f *fakeIdeaStore) DeleteByEntry(context.Context, string, primitive.ObjectID) error {
	return nil
}

type fakeInsightStore struct {
	insertErr error
	attempted bool
	rows      []models.Insight
	covered   map[primitive.ObjectID]struct{}
}

func (f *fakeInsightStore) InsertMany(_ context.Context, insights []models.Insight) ([]models.Insight, error) {
	f.attempted = true
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	for i := range insights {
		insights[i].ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, insights...)
	return insights, nil
}

func (f *fakeInsightStore) ListByEntry(_ context.Context, _ string, entryID primitive.ObjectID) ([]models.Insight, error) {
	out := []models.Insight{}
	for _, r := range f.rows {
		if r.EntryID == entryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeInsightStore) CoveredEntryIDs(context.Context, string) (map[primitive.ObjectID]struct{}, error) {
	if f.covered == nil {
		return map[primitive.ObjectID]struct{}{}, nil
	}
	return f.covered, nil
}

func (f *fakeInsightStore) DeleteByEntry(context.Context, string, primitive.ObjectID) error {
	return nil
}
