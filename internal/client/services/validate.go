package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// ValidateCredentials checks the sign-in and sign-up form. The email is
// checked after trimming; the password must be at least
// common.MinPasswordLength bytes.
func ValidateCredentials(email, password string) error {
	trimmed := strings.TrimSpace(email)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return &common.ValidationError{Field: "email", Message: "Invalid email address"}
	}
	if len(password) < common.MinPasswordLength {
		return &common.ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// ValidateAvatar accepts images up to common.AvatarMaxSize.
func ValidateAvatar(f *models.AvatarFile) error {
	if f == nil || !f.IsImage() {
		return &common.ValidationError{Field: "avatar", Message: "Please select an image file"}
	}
	if f.Size() > common.AvatarMaxSize {
		return &common.ValidationError{Field: "avatar", Message: "Image must be less than 5MB"}
	}
	return nil
}

// ValidateTopic requires a topic that is not blank.
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return &common.ValidationError{Field: "topic", Message: "Please enter a video topic"}
	}
	return nil
}
