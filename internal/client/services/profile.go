package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
	"github.com/oklog/ulid/v2"
)

// ProfileSync loads and edits the signed-in user's profile. The profile
// itself lives in the owning SessionStore.
type ProfileSync struct {
	store   *SessionStore
	table   client.ProfileTable
	storage client.ObjectStorage
	logger  logging.Logger

	uploading atomic.Int32
}

// FetchProfile loads the profile of userID into the store. A missing row
// leaves the profile nil and is not an error. Other failures leave the
// profile unchanged and are logged and returned. The result is dropped if
// the session changed users meanwhile.
func (p *ProfileSync) FetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	gen := p.store.profileGeneration()

	profile, err := p.table.GetByUserID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		p.store.setProfile(userID, nil, gen)
		return nil, nil
	}
	if err != nil {
		p.logger.Error(ctx, "failed to fetch profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	if !p.store.setProfile(userID, profile, gen) {
		p.logger.Debug(ctx, "dropping stale profile", "user_id", userID)
	}
	return profile, nil
}

// UpdateProfile writes the non-nil fields of u and merges them into the
// in-memory profile without re-reading it.
func (p *ProfileSync) UpdateProfile(ctx context.Context, u models.ProfileUpdate) error {
	userID := p.store.currentUserID()
	if userID == "" {
		return common.ErrNotAuthenticated
	}
	if u.IsEmpty() {
		return nil
	}

	if err := p.table.UpdateByUserID(ctx, userID, u); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	p.store.mergeProfile(userID, u)
	return nil
}

// UploadAvatar stores f under the user's namespace and returns its public
// URL. Every upload gets a fresh path; the upload itself overwrites.
func (p *ProfileSync) UploadAvatar(ctx context.Context, f *models.AvatarFile) (string, error) {
	userID := p.store.currentUserID()
	if userID == "" {
		return "", common.ErrNotAuthenticated
	}
	return p.upload(ctx, userID, f)
}

// ChangeAvatar uploads f and points the profile at it.
func (p *ProfileSync) ChangeAvatar(ctx context.Context, f *models.AvatarFile) (string, error) {
	url, err := p.UploadAvatar(ctx, f)
	if err != nil {
		return "", err
	}
	if err := p.UpdateProfile(ctx, models.ProfileUpdate{AvatarURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}

// IsUploading reports whether an avatar upload is in flight.
func (p *ProfileSync) IsUploading() bool {
	return p.uploading.Load() > 0
}

// AvatarPath is <userID>/<ULID>.<ext>. ULIDs are millisecond timestamps
// with monotonic entropy, so paths never repeat within a process.
func AvatarPath(userID string, f *models.AvatarFile) string {
	return fmt.Sprintf("%s/%s.%s", userID, ulid.Make().String(), f.Ext())
}

func (p *ProfileSync) upload(ctx context.Context, userID string, f *models.AvatarFile) (string, error) {
	if err := ValidateAvatar(f); err != nil {
		return "", err
	}

	p.uploading.Add(1)
	defer p.uploading.Add(-1)

	path := AvatarPath(userID, f)
	if err := p.storage.Upload(ctx, path, bytes.NewReader(f.Data), f.Size(), f.ContentType, true); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return p.storage.PublicURL(path), nil
}

// attachAvatar is the sign-up follow-up: upload, point the profile row at
// the file, then re-read the profile so a fetch that raced the update
// cannot leave the old row in memory.
func (p *ProfileSync) attachAvatar(ctx context.Context, userID string, f *models.AvatarFile) error {
	url, err := p.upload(ctx, userID, f)
	if err != nil {
		return err
	}

	u := models.ProfileUpdate{AvatarURL: &url}
	if err := p.table.UpdateByUserID(ctx, userID, u); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	p.store.mergeProfile(userID, u)

	_, err = p.FetchProfile(ctx, userID)
	return err
}
