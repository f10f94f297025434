package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/cryptox"
	"github.com/dmitrijs2005/thumbkeeper/internal/dbx"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

// LocalAuthConfig tunes LocalAuthProvider.
type LocalAuthConfig struct {
	SecretKey         []byte
	SessionValidity   time.Duration
	MinPasswordLength int
}

// LocalAuthProvider is an AuthProvider backed by the local database. The
// profile row is created in the same transaction as the account.
type LocalAuthProvider struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	cfg    LocalAuthConfig
	logger logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	session   *models.Session
	expiry    *time.Timer
	listeners map[int]func(models.AuthEvent)
	nextID    int
}

func NewLocalAuthProvider(db *sql.DB, repos repomanager.RepositoryManager, cfg LocalAuthConfig, logger logging.Logger) *LocalAuthProvider {
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = common.MinPasswordLength
	}
	if cfg.SessionValidity <= 0 {
		cfg.SessionValidity = time.Hour
	}
	return &LocalAuthProvider{
		db:        db,
		repos:     repos,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]func(models.AuthEvent)),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalAuthProvider) SignUp(ctx context.Context, email, password string, _ SignUpOptions) (*models.Session, error) {
	if len(password) < p.cfg.MinPasswordLength {
		return nil, &common.AuthError{
			Code:    CodeWeakPassword,
			Message: fmt.Sprintf("Password should be at least %d characters.", p.cfg.MinPasswordLength),
		}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Email: normalizeEmail(email), PasswordHash: hash}
	err = dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := p.repos.Users(tx).Create(ctx, account); err != nil {
			return err
		}
		return p.repos.Profiles(tx).Create(ctx, &models.Profile{UserID: account.ID, Email: account.Email})
	})
	if errors.Is(err, common.ErrAlreadyExists) {
		return nil, &common.AuthError{Code: CodeUserAlreadyExists, Message: "User already registered", Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return p.startSession(ctx, account)
}

func (p *LocalAuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	invalid := &common.AuthError{Code: CodeInvalidCredentials, Message: "Invalid login credentials"}

	account, err := p.repos.Users(p.db).GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, common.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	ok, err := cryptox.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if !ok {
		return nil, invalid
	}

	return p.startSession(ctx, account)
}

// SignOut drops the session and its persisted token. Without a session it
// does nothing and emits no event.
func (p *LocalAuthProvider) SignOut(ctx context.Context) error {
	if err := p.repos.Metadata(p.db).Delete(ctx, metadata.KeySessionToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	p.mu.Lock()
	had := p.session != nil
	p.clearLocked()
	p.mu.Unlock()

	if had {
		p.emit(models.AuthEvent{Type: models.AuthEventSignedOut})
	}
	return nil
}

// GetSession returns the live session, restoring it from the persisted
// token on first use. An expired or invalid token is discarded and yields
// a nil session.
func (p *LocalAuthProvider) GetSession(ctx context.Context) (*models.Session, error) {
	p.mu.Lock()
	if p.session != nil {
		s := *p.session
		p.mu.Unlock()
		return &s, nil
	}
	p.mu.Unlock()

	meta := p.repos.Metadata(p.db)
	raw, err := meta.Get(ctx, metadata.KeySessionToken)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	claims, err := shared.ParseToken(string(raw), p.cfg.SecretKey, p.now)
	if err != nil {
		p.logger.Debug(ctx, "discarding stored session", "error", err)
		return nil, meta.Delete(ctx, metadata.KeySessionToken)
	}

	account, err := p.repos.Users(p.db).GetByID(ctx, claims.Subject)
	if errors.Is(err, common.ErrNotFound) {
		return nil, meta.Delete(ctx, metadata.KeySessionToken)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	s := &models.Session{
		AccessToken: string(raw),
		User:        models.User{ID: account.ID, Email: account.Email},
		ExpiresAt:   claims.ExpiresAt.Time,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		p.setLocked(s)
	}
	out := *p.session
	return &out, nil
}

type subscription struct {
	once sync.Once
	fn   func()
}

func (s *subscription) Unsubscribe() { s.once.Do(s.fn) }

func (p *LocalAuthProvider) OnAuthStateChange(fn func(models.AuthEvent)) Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return &subscription{fn: func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}}
}

// AccessToken returns the current bearer token or "".
func (p *LocalAuthProvider) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return ""
	}
	return p.session.AccessToken
}

// Close stops the expiry timer.
func (p *LocalAuthProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.expiry != nil {
		p.expiry.Stop()
		p.expiry = nil
	}
}

func (p *LocalAuthProvider) startSession(ctx context.Context, account *models.Account) (*models.Session, error) {
	token, expiresAt, err := shared.IssueToken(account.ID, account.Email, p.cfg.SecretKey, p.now(), p.cfg.SessionValidity)
	if err != nil {
		return nil, err
	}

	if err := p.repos.Metadata(p.db).Set(ctx, metadata.KeySessionToken, []byte(token)); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s := &models.Session{
		AccessToken: token,
		User:        models.User{ID: account.ID, Email: account.Email},
		ExpiresAt:   expiresAt,
	}

	p.mu.Lock()
	p.setLocked(s)
	p.mu.Unlock()

	out := *s
	p.emit(models.AuthEvent{Type: models.AuthEventSignedIn, Session: &out})
	return s, nil
}

func (p *LocalAuthProvider) setLocked(s *models.Session) {
	p.clearLocked()
	p.session = s

	token := s.AccessToken
	p.expiry = time.AfterFunc(s.ExpiresAt.Sub(p.now()), func() { p.expire(token) })
}

func (p *LocalAuthProvider) clearLocked() {
	if p.expiry != nil {
		p.expiry.Stop()
		p.expiry = nil
	}
	p.session = nil
}

// expire ends the session issued with token, unless it was replaced.
func (p *LocalAuthProvider) expire(token string) {
	p.mu.Lock()
	if p.session == nil || p.session.AccessToken != token {
		p.mu.Unlock()
		return
	}
	p.session = nil
	p.expiry = nil
	p.mu.Unlock()

	ctx := context.Background()
	if err := p.repos.Metadata(p.db).Delete(ctx, metadata.KeySessionToken); err != nil {
		p.logger.Warn(ctx, "failed to drop expired session token", "error", err)
	}
	p.emit(models.AuthEvent{Type: models.AuthEventTokenExpired})
}

func (p *LocalAuthProvider) emit(ev models.AuthEvent) {
	p.mu.Lock()
	fns := make([]func(models.AuthEvent), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
