package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
)

// Status is the session store lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Account deletion steps reported in common.PartialDeletionError.
const (
	StepStorage    = "storage"
	StepThumbnails = "thumbnails"
	StepProfile    = "profile"
	StepSignOut    = "sign-out"
)

// State is a read-only snapshot of the store. Profile is nil whenever
// Session is nil.
type State struct {
	Status  Status
	Loading bool
	Session *models.Session
	User    *models.User
	Profile *models.Profile
}

// Deps are the backend collaborators of the session model.
type Deps struct {
	Auth       client.AuthProvider
	Profiles   client.ProfileTable
	Storage    client.ObjectStorage
	Thumbnails client.ThumbnailTable
	Logger     logging.Logger
}

// SessionStore holds the current session and profile and propagates
// changes to subscribers.
type SessionStore struct {
	auth       client.AuthProvider
	storage    client.ObjectStorage
	thumbnails client.ThumbnailTable
	profiles   *ProfileSync
	logger     logging.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	deleting atomic.Bool

	mu         sync.Mutex
	status     Status
	session    *models.Session
	profile    *models.Profile
	profileGen uint64
	pending    []models.ProfileUpdate
	sawEvent   bool
	sub        client.Subscription
	listeners  map[int]func(State)
	nextID     int
	stateSeq   uint64

	// notifyMu serializes deliveries; delivered is the last sent stateSeq.
	notifyMu  sync.Mutex
	delivered uint64
}

func NewSessionStore(deps Deps) *SessionStore {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &SessionStore{
		auth:       deps.Auth,
		storage:    deps.Storage,
		thumbnails: deps.Thumbnails,
		logger:     logger,
		baseCtx:    ctx,
		cancel:     cancel,
		listeners:  make(map[int]func(State)),
	}
	s.profiles = &ProfileSync{store: s, table: deps.Profiles, storage: deps.Storage, logger: logger}
	return s
}

// Profiles returns the profile synchronizer bound to this store.
func (s *SessionStore) Profiles() *ProfileSync {
	return s.profiles
}

// Initialize subscribes to the provider and loads the current session once.
// A failed load leaves the store anonymous and is returned. Later calls do
// nothing.
func (s *SessionStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusUninitialized {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusLoading
	state, seq := s.captureLocked()
	s.mu.Unlock()
	s.notify(state, seq)

	sub := s.auth.OnAuthStateChange(s.HandleAuthEvent)
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	sess, err := s.auth.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load session", "error", err)
		sess = nil
	}
	if sess != nil && sess.Expired(time.Now()) {
		s.logger.Debug(ctx, "restored session already expired", "user_id", sess.User.ID)
		sess = nil
	}

	// an event seen since subscribing is newer than sess
	s.mu.Lock()
	if s.sawEvent {
		s.mu.Unlock()
		return err
	}
	after := s.applySessionLocked(sess)
	s.mu.Unlock()
	after()
	return err
}

// HandleAuthEvent applies a provider auth-state change. It never blocks on
// the profile fetch it schedules. Events before Initialize are ignored.
func (s *SessionStore) HandleAuthEvent(ev models.AuthEvent) {
	s.mu.Lock()
	if s.status == StatusUninitialized {
		s.mu.Unlock()
		return
	}
	s.sawEvent = true
	after := s.applySessionLocked(ev.Session)
	s.mu.Unlock()
	after()
}

// applySessionLocked replaces the session and returns the work to run once
// s.mu is released: the profile fetch and the notification.
func (s *SessionStore) applySessionLocked(sess *models.Session) func() {
	if sess == nil {
		s.session = nil
		s.dropProfileLocked()
		s.status = StatusAnonymous
	} else {
		c := *sess
		s.session = &c
		if s.profile != nil && s.profile.UserID != c.User.ID {
			s.dropProfileLocked()
		}
		s.status = StatusAuthenticated
	}
	state, seq := s.captureLocked()
	userID := sess.UserID()
	if userID != "" {
		s.wg.Add(1)
	}

	return func() {
		if userID != "" {
			go func() {
				defer s.wg.Done()
				_, _ = s.profiles.FetchProfile(s.baseCtx, userID)
			}()
		}
		s.notify(state, seq)
	}
}

// SignIn validates the form and makes exactly one provider call with the
// given values. Failures are *common.ValidationError or *common.AuthError.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if _, err := s.auth.SignInWithPassword(ctx, email, password); err != nil {
		return MapAuthError(err)
	}
	return nil
}

// SignUp creates the account. A supplied avatar is uploaded afterwards on a
// best-effort basis: a failed upload is logged and sign-up still succeeds.
func (s *SessionStore) SignUp(ctx context.Context, email, password string, avatar *models.AvatarFile) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if avatar != nil {
		if err := ValidateAvatar(avatar); err != nil {
			return err
		}
	}

	sess, err := s.auth.SignUp(ctx, email, password, client.SignUpOptions{})
	if err != nil {
		return MapAuthError(err)
	}
	if avatar == nil || sess == nil {
		return nil
	}

	if err := s.profiles.attachAvatar(ctx, sess.User.ID, avatar); err != nil {
		s.logger.Warn(ctx, "avatar upload after sign-up failed", "user_id", sess.User.ID, "error", err)
	}
	return nil
}

// SignOut signs out at the provider and clears local state even when the
// provider call fails. It is safe without a session.
func (s *SessionStore) SignOut(ctx context.Context) error {
	err := s.auth.SignOut(ctx)
	s.clearLocal()
	return err
}

// DeleteAccount removes the user's stored objects, history and profile, in
// that order, then signs out. The first failing step aborts the sequence
// and is returned as *common.PartialDeletionError; earlier steps are not
// rolled back.
func (s *SessionStore) DeleteAccount(ctx context.Context) error {
	userID := s.currentUserID()
	if userID == "" {
		return common.ErrNotAuthenticated
	}

	s.deleting.Store(true)
	defer s.deleting.Store(false)

	objects, err := s.storage.List(ctx, userID+"/")
	if err != nil {
		return &common.PartialDeletionError{Step: StepStorage, Err: err}
	}
	if len(objects) > 0 {
		paths := make([]string, 0, len(objects))
		for _, o := range objects {
			paths = append(paths, o.Name)
		}
		if err := s.storage.Remove(ctx, paths); err != nil {
			return &common.PartialDeletionError{Step: StepStorage, Err: err}
		}
	}

	if _, err := s.thumbnails.DeleteByUserID(ctx, userID); err != nil {
		return &common.PartialDeletionError{Step: StepThumbnails, Err: err}
	}

	if err := s.profiles.table.DeleteByUserID(ctx, userID); err != nil {
		return &common.PartialDeletionError{Step: StepProfile, Err: err}
	}

	if err := s.SignOut(ctx); err != nil {
		return &common.PartialDeletionError{Step: StepSignOut, Err: err}
	}
	return nil
}

// IsDeleting reports whether DeleteAccount is running.
func (s *SessionStore) IsDeleting() bool {
	return s.deleting.Load()
}

// State returns a snapshot of the store.
func (s *SessionStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn for state changes and returns its cancel func.
// Listeners are called one at a time, outside the store lock, with states
// in the order they were produced; a state superseded before delivery is
// skipped. fn must not call methods that change the store.
func (s *SessionStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close detaches from the provider and waits for in-flight profile
// fetches.
func (s *SessionStore) Close() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	s.cancel()
	s.wg.Wait()
}

func (s *SessionStore) clearLocal() {
	s.mu.Lock()
	s.session = nil
	s.dropProfileLocked()
	if s.status != StatusUninitialized {
		s.status = StatusAnonymous
	}
	state, seq := s.captureLocked()
	s.mu.Unlock()

	s.notify(state, seq)
}

func (s *SessionStore) dropProfileLocked() {
	s.profile = nil
	s.pending = nil
	s.profileGen++
}

func (s *SessionStore) currentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.UserID()
}

// AccessToken returns the current session's bearer token, or "".
func (s *SessionStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *SessionStore) profileGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileGen
}

// setProfile stores p for userID when userID is still the session user and
// no other profile write happened since gen was read. Updates merged while
// no profile was loaded are applied on top of p.
func (s *SessionStore) setProfile(userID string, p *models.Profile, gen uint64) bool {
	s.mu.Lock()
	if s.session.UserID() != userID || s.profileGen != gen {
		s.mu.Unlock()
		return false
	}
	if p != nil {
		c := *p
		for _, u := range s.pending {
			c = u.Apply(c)
		}
		p = &c
	}
	s.pending = nil
	s.profile = p
	s.profileGen++
	state, seq := s.captureLocked()
	s.mu.Unlock()

	s.notify(state, seq)
	return true
}

// mergeProfile applies u to the in-memory profile of userID. While no
// profile is loaded, u is kept for the fetch in flight instead.
func (s *SessionStore) mergeProfile(userID string, u models.ProfileUpdate) {
	s.mu.Lock()
	if s.session.UserID() != userID {
		s.mu.Unlock()
		return
	}
	if s.profile == nil {
		s.pending = append(s.pending, u)
		s.mu.Unlock()
		return
	}
	merged := u.Apply(*s.profile)
	s.profile = &merged
	s.profileGen++
	state, seq := s.captureLocked()
	s.mu.Unlock()

	s.notify(state, seq)
}

func (s *SessionStore) stateLocked() State {
	st := State{
		Status:  s.status,
		Loading: s.status == StatusUninitialized || s.status == StatusLoading,
	}
	if s.session != nil {
		sess := *s.session
		user := sess.User
		st.Session = &sess
		st.User = &user
		if s.profile != nil && s.profile.UserID == user.ID {
			p := *s.profile
			st.Profile = &p
		}
	}
	return st
}

// captureLocked snapshots the state for delivery under a fresh sequence
// number.
func (s *SessionStore) captureLocked() (State, uint64) {
	s.stateSeq++
	return s.stateLocked(), s.stateSeq
}

// notify delivers st unless a later capture was already delivered.
func (s *SessionStore) notify(st State, seq uint64) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq

	s.mu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
