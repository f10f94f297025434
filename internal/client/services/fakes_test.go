package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

type credCall struct {
	email, password string
}

// fakeAuth emits events synchronously, like the local provider.
type fakeAuth struct {
	mu          sync.Mutex
	listeners   map[int]func(models.AuthEvent)
	nextID      int
	session     *models.Session
	signInCalls []credCall
	signUpCalls []credCall
	signOuts    int

	getSessionErr error
	signInErr     error
	signUpErr     error
	signOutErr    error
	userID        string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{listeners: map[int]func(models.AuthEvent){}, userID: "user-1"}
}

func (f *fakeAuth) newSession(email string) *models.Session {
	return &models.Session{
		AccessToken: "token-" + f.userID,
		User:        models.User{ID: f.userID, Email: email},
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password string, opts client.SignUpOptions) (*models.Session, error) {
	f.mu.Lock()
	f.signUpCalls = append(f.signUpCalls, credCall{email, password})
	if f.signUpErr != nil {
		f.mu.Unlock()
		return nil, f.signUpErr
	}
	f.session = f.newSession(email)
	s := *f.session
	f.mu.Unlock()
	f.emit(models.AuthEvent{Type: models.AuthEventSignedIn, Session: &s})
	return &s, nil
}

func (f *fakeAuth) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	f.signInCalls = append(f.signInCalls, credCall{email, password})
	if f.signInErr != nil {
		f.mu.Unlock()
		return nil, f.signInErr
	}
	f.session = f.newSession(email)
	s := *f.session
	f.mu.Unlock()
	f.emit(models.AuthEvent{Type: models.AuthEventSignedIn, Session: &s})
	return &s, nil
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOuts++
	if f.signOutErr != nil {
		f.mu.Unlock()
		return f.signOutErr
	}
	had := f.session != nil
	f.session = nil
	f.mu.Unlock()
	if had {
		f.emit(models.AuthEvent{Type: models.AuthEventSignedOut})
	}
	return nil
}

func (f *fakeAuth) GetSession(ctx context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	if f.session == nil {
		return nil, nil
	}
	s := *f.session
	return &s, nil
}

type fakeSub struct{ fn func() }

func (s fakeSub) Unsubscribe() { s.fn() }

func (f *fakeAuth) OnAuthStateChange(fn func(models.AuthEvent)) client.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return fakeSub{fn: func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}}
}

func (f *fakeAuth) emit(ev models.AuthEvent) {
	f.mu.Lock()
	var fns []func(models.AuthEvent)
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (f *fakeAuth) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// fakeProfiles is an in-memory profile table. When gate is set, GetByUserID
// blocks until it is closed.
type fakeProfiles struct {
	mu        sync.Mutex
	rows      map[string]models.Profile
	gate      chan struct{}
	getErr    error
	updateErr error
	deleteErr error
	gets      int
	updates   []models.ProfileUpdate
	deletes   []string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: map[string]models.Profile{}}
}

func (f *fakeProfiles) put(p models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[p.UserID] = p
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	gate := f.gate
	f.gets++
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) UpdateByUserID(ctx context.Context, userID string, u models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
	if f.updateErr != nil {
		return f.updateErr
	}
	if p, ok := f.rows[userID]; ok {
		f.rows[userID] = u.Apply(p)
	}
	return nil
}

func (f *fakeProfiles) DeleteByUserID(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, userID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, userID)
	return nil
}

func (f *fakeProfiles) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

type uploadCall struct {
	path        string
	size        int64
	contentType string
	upsert      bool
}

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   []uploadCall
	listed    []string
	removed   [][]string
	uploadErr error
	listErr   error
	removeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, upsert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadCall{path, size, contentType, upsert})
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, _ := io.ReadAll(r)
	f.objects[path] = b
	return nil
}

func (f *fakeStorage) List(ctx context.Context, prefix string) ([]client.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, prefix)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []client.StorageObject
	for k, v := range f.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, client.StorageObject{Name: k, Size: int64(len(v))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStorage) Remove(ctx context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, paths)
	if f.removeErr != nil {
		return f.removeErr
	}
	for _, p := range paths {
		delete(f.objects, p)
	}
	return nil
}

func (f *fakeStorage) PublicURL(path string) string {
	return "https://cdn.test/avatars/" + path
}

// fakeThumbs keeps records in insertion order and lists them newest first.
// Each list call takes the next channel from gates, if any, and blocks on
// it after reading the rows.
type fakeThumbs struct {
	mu        sync.Mutex
	rows      []models.ThumbnailRecord
	seq       int
	insertErr error
	listErr   error
	deleteErr error
	lists     int
	deletes   []string
	gates     []chan struct{}
}

func (f *fakeThumbs) Insert(ctx context.Context, t models.NewThumbnail) (*models.ThumbnailRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.seq++
	rec := models.ThumbnailRecord{
		ID:        fmt.Sprintf("thumb-%d", f.seq),
		UserID:    t.UserID,
		ImageURL:  t.ImageURL,
		Topic:     t.Topic,
		Context:   t.Context,
		Style:     t.Style,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC),
	}
	f.rows = append(f.rows, rec)
	return &rec, nil
}

func (f *fakeThumbs) ListByUserID(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error) {
	f.mu.Lock()
	f.lists++
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, 0, f.listErr
	}
	out := []models.ThumbnailRecord{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, f.rows[i])
		}
	}
	var gate chan struct{}
	if len(f.gates) > 0 {
		gate, f.gates = f.gates[0], f.gates[1:]
	}
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return out, len(out), nil
}

func (f *fakeThumbs) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, userID)
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	kept := f.rows[:0]
	var n int64
	for _, r := range f.rows {
		if r.UserID == userID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeThumbs) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

type fakeRemote struct {
	mu    sync.Mutex
	calls []shared.GenerateRequest
	resp  *shared.GenerateResponse
	err   error
}

func (f *fakeRemote) Generate(ctx context.Context, req shared.GenerateRequest) (*shared.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

type saveCall struct {
	imageURL, topic, topicContext string
	style                         models.Style
}

type fakeSaver struct {
	mu    sync.Mutex
	calls []saveCall
	err   error
}

func (f *fakeSaver) Save(ctx context.Context, imageURL, topic, topicContext string, style models.Style) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, saveCall{imageURL, topic, topicContext, style})
	return f.err
}

type fixture struct {
	auth     *fakeAuth
	profiles *fakeProfiles
	storage  *fakeStorage
	thumbs   *fakeThumbs
	store    *SessionStore
}

func newFixture() *fixture {
	f := &fixture{
		auth:     newFakeAuth(),
		profiles: newFakeProfiles(),
		storage:  newFakeStorage(),
		thumbs:   &fakeThumbs{},
	}
	f.store = NewSessionStore(Deps{
		Auth:       f.auth,
		Profiles:   f.profiles,
		Storage:    f.storage,
		Thumbnails: f.thumbs,
	})
	return f
}
