package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/s3x"
	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

// Subscription detaches an auth-state listener.
type Subscription interface {
	Unsubscribe()
}

// SignUpOptions carries provider-specific sign-up settings. The local
// provider accepts none; the avatar is attached after sign-up because its
// storage path needs the new user id.
type SignUpOptions struct{}

// AuthProvider owns credentials and the current session. Listeners
// registered with OnAuthStateChange are called synchronously after the
// provider's state changed, outside its locks.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*models.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	OnAuthStateChange(fn func(models.AuthEvent)) Subscription
}

// ProfileTable is the profile row keyed by user id. GetByUserID returns
// common.ErrNotFound when the row does not exist.
type ProfileTable interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateByUserID(ctx context.Context, userID string, u models.ProfileUpdate) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// StorageObject is an entry returned by ObjectStorage.List. Name is the
// full object path.
type StorageObject = s3x.Object

type ObjectStorage interface {
	// Upload writes r to path. Without upsert an existing object is an error.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, upsert bool) error
	List(ctx context.Context, prefix string) ([]StorageObject, error)
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
}

// ThumbnailTable stores generation history. ListByUserID returns records
// by created_at descending with the exact count.
type ThumbnailTable interface {
	Insert(ctx context.Context, t models.NewThumbnail) (*models.ThumbnailRecord, error)
	ListByUserID(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

// Generator calls the remote generation endpoint. A decoded error payload
// is returned in the response, not as an error.
type Generator interface {
	Generate(ctx context.Context, req shared.GenerateRequest) (*shared.GenerateResponse, error)
}
