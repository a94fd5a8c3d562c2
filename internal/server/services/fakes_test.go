package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/dbx"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/users"
	"github.com/dmitrijs2005/voicenotes/internal/server/storage"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore is an in-memory stand-in for the users/notes/user_notes tables.
type memStore struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	users map[string]*models.User
	notes map[string]*models.Note
	links map[string][]string

	getUserErr    error
	createUserErr error
	createNoteErr error
	appendErr     error
	updateNoteErr error
	removeErr     error
}

func newMemStore() *memStore {
	return &memStore{
		clock: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		users: map[string]*models.User{},
		notes: map[string]*models.Note{},
		links: map[string][]string{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) addUser(id, email, hash string) {
	s.users[id] = &models.User{ID: id, Email: email, PasswordHash: hash}
}

func copyNote(n *models.Note) *models.Note {
	c := *n
	c.Images = append([]string{}, n.Images...)
	return &c
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createUserErr != nil {
		return nil, r.s.createUserErr
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = r.s.nextID("u")
	u.CreatedAt = r.s.clock
	c := *u
	r.s.users[u.ID] = &c
	return u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getUserErr != nil {
		return nil, r.s.getUserErr
	}
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getUserErr != nil {
		return nil, r.s.getUserErr
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r memUsers) AppendNote(ctx context.Context, userID, noteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.appendErr != nil {
		return r.s.appendErr
	}
	r.s.links[userID] = append(r.s.links[userID], noteID)
	return nil
}

func (r memUsers) RemoveNote(ctx context.Context, userID, noteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.removeErr != nil {
		return r.s.removeErr
	}
	ids := r.s.links[userID][:0]
	for _, id := range r.s.links[userID] {
		if id != noteID {
			ids = append(ids, id)
		}
	}
	r.s.links[userID] = ids
	return nil
}

type memNotes struct{ s *memStore }

func (r memNotes) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createNoteErr != nil {
		return nil, r.s.createNoteErr
	}
	n.ID = r.s.nextID("n")
	r.s.clock = r.s.clock.Add(time.Minute)
	n.CreatedAt = r.s.clock
	r.s.notes[n.ID] = copyNote(n)
	return n, nil
}

func (r memNotes) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyNote(n), nil
}

func (r memNotes) Patch(ctx context.Context, id string, p models.NotePatch, images []string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateNoteErr != nil {
		return nil, r.s.updateNoteErr
	}
	n, ok := r.s.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.Title != "" {
		n.Title = p.Title
	}
	if p.Content != "" {
		n.Content = p.Content
	}
	if p.TranscribedText != "" {
		n.TranscribedText = p.TranscribedText
	}
	n.Images = append(n.Images, images...)
	return copyNote(n), nil
}

func (r memNotes) ToggleFavourite(ctx context.Context, id string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateNoteErr != nil {
		return nil, r.s.updateNoteErr
	}
	n, ok := r.s.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	n.IsFavourite = !n.IsFavourite
	return copyNote(n), nil
}

func (r memNotes) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r memNotes) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Note{}
	for _, id := range r.s.links[userID] {
		if n, ok := r.s.notes[id]; ok {
			out = append(out, copyNote(n))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return memUsers{m.s} }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository           { return memNotes{m.s} }

type fakeStorage struct {
	mu        sync.Mutex
	seq       int
	uploaded  map[string]string
	types     map[string]string
	deleted   []string
	failAfter int
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string]string{}, types: map[string]string{}, failAfter: -1}
}

func (f *fakeStorage) Upload(ctx context.Context, name, contentType string, r io.Reader) (*storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter == 0 {
		return nil, errBoom{}
	}
	if f.failAfter > 0 {
		f.failAfter--
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.seq++
	key := fmt.Sprintf("voicenotes/%d-%s", f.seq, name)
	f.uploaded[key] = string(b)
	f.types[key] = contentType
	return &storage.Object{Key: key, URL: "https://cdn.example.com/" + key}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}
