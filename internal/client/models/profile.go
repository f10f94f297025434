package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Profile is the mutable user-owned metadata record. There is exactly one per
// user, created by the backend at sign-up.
type Profile struct {
	ID        string
	UserID    string
	Email     string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Email     *string
	AvatarURL *string
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.AvatarURL == nil
}

// Apply returns a copy of p with the non-nil fields of u merged in.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.AvatarURL != nil {
		v := *u.AvatarURL
		p.AvatarURL = &v
	}
	return p
}

// AvatarFile is an image picked by the user for upload.
type AvatarFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (f *AvatarFile) Size() int64 {
	return int64(len(f.Data))
}

// Ext returns the file extension without the dot, lower-cased. Files
// without one get "bin".
func (f *AvatarFile) Ext() string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}

// IsImage reports whether the declared content type is an image type.
func (f *AvatarFile) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}
